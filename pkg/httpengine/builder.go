package httpengine

import (
	"context"
	"fmt"

	"github.com/slumberhq/slumber/pkg/collection"
	"github.com/slumberhq/slumber/pkg/template"
)

// Builder is the default template.RequestBuilder. It renders a
// recipe's templated URL, headers, query parameters, and body using
// the same TemplateContext as the chain that triggered it, so
// profile fields, environment variables, and nested chains all
// resolve consistently.
//
// Every header and query parameter is rendered and included
// regardless of its Enabled flag: a triggered request always uses
// the recipe's full default options, since there is no interactive
// surface to have disabled any of them in the first place.
type Builder struct {
	Store *collection.Store
}

func (b *Builder) Build(ctx context.Context, recipeID string, tctx *template.TemplateContext) (template.BuiltRequest, error) {
	recipe, ok := b.Store.GetRecipe(recipeID)
	if !ok {
		return template.BuiltRequest{}, fmt.Errorf("httpengine: recipe %q not found", recipeID)
	}

	url, err := template.Render(ctx, recipe.URL, tctx)
	if err != nil {
		return template.BuiltRequest{}, fmt.Errorf("httpengine: rendering url: %w", err)
	}

	headers := map[string][]string{}
	for _, h := range recipe.Headers {
		v, err := template.Render(ctx, h.Value, tctx)
		if err != nil {
			return template.BuiltRequest{}, fmt.Errorf("httpengine: rendering header %q: %w", h.Name, err)
		}
		headers[h.Name] = append(headers[h.Name], v)
	}

	if len(recipe.QueryParams) > 0 {
		query := ""
		for i, qp := range recipe.QueryParams {
			v, err := template.Render(ctx, qp.Value, tctx)
			if err != nil {
				return template.BuiltRequest{}, fmt.Errorf("httpengine: rendering query param %q: %w", qp.Name, err)
			}
			if i == 0 {
				query += "?"
			} else {
				query += "&"
			}
			query += qp.Name + "=" + v
		}
		url += query
	}

	var body []byte
	bodyStr, err := template.RenderOpt(ctx, recipe.Body, tctx)
	if err != nil {
		return template.BuiltRequest{}, fmt.Errorf("httpengine: rendering body: %w", err)
	}
	if bodyStr != nil {
		body = []byte(*bodyStr)
	}

	return template.BuiltRequest{
		Method:  recipe.Method,
		URL:     url,
		Headers: headers,
		Body:    body,
	}, nil
}
