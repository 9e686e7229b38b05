package template

import "context"

// renderField resolves a profile-field key, recursively rendering the
// field's own template. The recursion counter is checked before, not
// after, dispatching the recursive render, and is never decremented:
// it bounds the total recursive work of one top-level render, not the
// depth of any single branch.
func renderField(ctx context.Context, name string, tctx *TemplateContext) (RenderedChunk, error) {
	if tctx.ProfileID == nil {
		return RenderedChunk{}, &TemplateError{Kind: ErrNoProfileSelected}
	}

	profile, ok := tctx.Collection.Profile(*tctx.ProfileID)
	if !ok {
		return RenderedChunk{}, &TemplateError{Kind: ErrProfileUnknown, ProfileID: *tctx.ProfileID}
	}

	inner, ok := profile.Data[name]
	if !ok {
		return RenderedChunk{}, &TemplateError{Kind: ErrFieldUnknown, Field: name}
	}

	if tctx.recursion.Load() >= RecursionLimit {
		return RenderedChunk{}, &TemplateError{Kind: ErrRecursionLimit}
	}
	tctx.recursion.Add(1)

	value, err := Render(ctx, inner, tctx)
	if err != nil {
		return RenderedChunk{}, &TemplateError{Kind: ErrNested, NestedTemplate: inner.Source, Inner: err}
	}

	return RenderedChunk{Value: value, Sensitive: false}, nil
}
