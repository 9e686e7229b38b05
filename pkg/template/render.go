package template

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/slumberhq/slumber/pkg/telemetry"
)

// Render resolves every chunk of tmpl and stitches the results into a
// single string, failing on the first error encountered in chunk
// order. This is the entry point used recursively for profile fields
// and triggered-request bodies, where a partial value is useless.
func Render(ctx context.Context, tmpl *Template, tctx *TemplateContext) (string, error) {
	if tctx.Telemetry == nil || !tctx.Telemetry.IsEnabled {
		chunks := RenderChunks(ctx, tmpl, tctx)
		return Stitch(chunks)
	}

	tracer := telemetry.GetTracer(tctx.Telemetry)
	opts := telemetry.SpanOptions{
		Name:        "template.render",
		Attributes:  append(telemetry.BaseAttributes(profileIDOf(tctx), tctx.Telemetry), attribute.Int("slumber.template.chunks", len(tmpl.Chunks))),
		EndWhenDone: true,
	}

	return telemetry.RecordSpan(ctx, tracer, opts, func(ctx context.Context, span trace.Span) (string, error) {
		chunks := RenderChunks(ctx, tmpl, tctx)
		out, err := Stitch(chunks)
		if err == nil && tctx.Telemetry.RecordOutputs && !Sensitive(chunks) {
			span.SetAttributes(attribute.String("slumber.template.output", out))
		}
		return out, err
	})
}

// RenderOpt renders tmpl if it is non-nil, and passes a nil template
// through as a nil result. This is the entry point for optional
// templated fields (e.g. a recipe's body), where "not present" and
// "renders to an empty string" are distinct outcomes.
func RenderOpt(ctx context.Context, tmpl *Template, tctx *TemplateContext) (*string, error) {
	if tmpl == nil {
		return nil, nil
	}
	out, err := Render(ctx, tmpl, tctx)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RenderPreview resolves every chunk of tmpl without failing as a
// whole, returning one OutputChunk per input chunk so a caller (such
// as an interactive preview) can show the chunks that rendered
// successfully alongside the ones that didn't.
func RenderPreview(ctx context.Context, tmpl *Template, tctx *TemplateContext) []OutputChunk {
	return RenderChunks(ctx, tmpl, tctx)
}

func profileIDOf(tctx *TemplateContext) string {
	if tctx.ProfileID == nil {
		return ""
	}
	return *tctx.ProfileID
}
