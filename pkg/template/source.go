package template

import (
	"context"
	"fmt"
)

// RenderedChunk is the internal result of resolving a single key
// chunk: a value plus whether it originated from a sensitive chain.
type RenderedChunk struct {
	Value     string
	Sensitive bool
}

// dispatchSource resolves a classified key to a RenderedChunk by
// routing it to the renderer for its variant. This is the one place
// that switches on ParsedKeyKind; callers never need a type switch of
// their own.
func dispatchSource(ctx context.Context, key ParsedKey, tctx *TemplateContext) (RenderedChunk, error) {
	switch key.Kind {
	case KeyField:
		return renderField(ctx, key.Name, tctx)
	case KeyEnvironment:
		return renderEnvironment(key.Name)
	case KeyChain:
		return renderChain(ctx, key.ChainID, tctx)
	default:
		return RenderedChunk{}, fmt.Errorf("template: unknown key kind %d", key.Kind)
	}
}
