package template

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// OutputChunk is the public preview form of a rendered chunk: either a
// literal span of source, or the outcome (value or error) of
// resolving a key, tagged with whether that outcome is sensitive.
type OutputChunk struct {
	Text      string
	Sensitive bool
	Err       error
}

// RenderChunks resolves every key chunk of tmpl concurrently, one
// goroutine per key, and returns one OutputChunk per input chunk in
// the original order. It never fails as a whole: a failing key
// produces an OutputChunk with Err set in its own slot, and every
// other chunk still resolves. Concurrency is bounded only by the
// number of key chunks in the template; ordering is restored by
// writing each goroutine's result directly into its input index.
func RenderChunks(ctx context.Context, tmpl *Template, tctx *TemplateContext) []OutputChunk {
	out := make([]OutputChunk, len(tmpl.Chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range tmpl.Chunks {
		i, chunk := i, chunk

		if chunk.Kind == ChunkRaw {
			out[i] = OutputChunk{Text: chunk.Raw.slice(tmpl.Source)}
			continue
		}

		if override, ok := tctx.Overrides[tmpl.keyText(chunk)]; ok {
			out[i] = OutputChunk{Text: override}
			continue
		}

		g.Go(func() error {
			rendered, err := dispatchSource(gctx, chunk.Key, tctx)
			if err != nil {
				out[i] = OutputChunk{Text: chunk.KeySpan.slice(tmpl.Source), Err: err}
				return nil
			}
			out[i] = OutputChunk{Text: rendered.Value, Sensitive: rendered.Sensitive}
			return nil
		})
	}

	// g.Wait() can only return an error if a goroutine returned one,
	// which never happens here: every failure is absorbed into the
	// corresponding OutputChunk instead of propagated through the group.
	_ = g.Wait()

	return out
}
