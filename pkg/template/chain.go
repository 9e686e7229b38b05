package template

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"unicode/utf8"
)

// renderChain resolves a Chain(id) key: look up the chain definition,
// compute its bytes and content-type hint, optionally apply a
// selector, and wrap any failure as TemplateError{Kind: ErrChain} so
// the caller can always attribute failure to a chain id.
func renderChain(ctx context.Context, chainID string, tctx *TemplateContext) (RenderedChunk, error) {
	chain, ok := tctx.Collection.Chain(chainID)
	if !ok {
		return RenderedChunk{}, &TemplateError{
			Kind:    ErrChain,
			ChainID: chainID,
			Inner:   &ChainError{Kind: ChainErrChainUnknown},
		}
	}

	value, err := renderChainValue(ctx, chain, tctx)
	if err != nil {
		var ce *ChainError
		if !errors.As(err, &ce) {
			ce = &ChainError{Kind: ChainErrSelector, Cause: err}
		}
		return RenderedChunk{}, &TemplateError{Kind: ErrChain, ChainID: chainID, Inner: ce}
	}

	return RenderedChunk{Value: value, Sensitive: chain.Sensitive}, nil
}

// renderChainValue computes (bytes, content-type hint) from the
// chain's source variant, then applies the selector (or plain UTF-8
// decoding) to produce the final string.
func renderChainValue(ctx context.Context, chain *Chain, tctx *TemplateContext) (string, error) {
	data, hint, hintOK, err := fetchChainBytes(ctx, chain, tctx)
	if err != nil {
		return "", err
	}

	if chain.ContentType != "" {
		hint, hintOK = chain.ContentType, true
	}

	if chain.Selector != "" {
		if !hintOK {
			return "", &ChainError{Kind: ChainErrUnknownContentType}
		}
		parsed, err := tctx.ContentType.ParseContent(data, hint)
		if err != nil {
			return "", &ChainError{Kind: ChainErrParseResponse, Cause: err}
		}
		out, err := tctx.Selector.QueryToString(chain.Selector, parsed)
		if err != nil {
			return "", &ChainError{Kind: ChainErrSelector, Cause: err}
		}
		return out, nil
	}

	if !utf8.Valid(data) {
		return "", &ChainError{Kind: ChainErrInvalidUtf8, Cause: errors.New("content is not valid UTF-8")}
	}
	return string(data), nil
}

// fetchChainBytes dispatches on the chain's source variant. The Prompt
// variant converts its reply string to bytes and reports no
// content-type hint; the caller then applies the same selector or UTF-8
// step to it as to every other variant.
func fetchChainBytes(ctx context.Context, chain *Chain, tctx *TemplateContext) (data []byte, hint string, hintOK bool, err error) {
	switch chain.Source {
	case ChainSourceRequest:
		resp, err := resolveTrigger(ctx, chain, tctx)
		if err != nil {
			return nil, "", false, err
		}
		hint, hintOK = tctx.ContentType.FromResponse(resp.Headers)
		return resp.Body, hint, hintOK, nil

	case ChainSourceFile:
		b, err := os.ReadFile(chain.Path)
		if err != nil {
			return nil, "", false, &ChainError{Kind: ChainErrFile, Path: chain.Path, Cause: err}
		}
		hint, hintOK = tctx.ContentType.FromExtension(chain.Path)
		return b, hint, hintOK, nil

	case ChainSourceCommand:
		return runCommand(ctx, chain, tctx)

	case ChainSourcePrompt:
		v, err := awaitPrompt(ctx, chain, tctx)
		if err != nil {
			return nil, "", false, err
		}
		return []byte(v), "", false, nil

	default:
		return nil, "", false, &ChainError{Kind: ChainErrChainUnknown}
	}
}

func runCommand(ctx context.Context, chain *Chain, tctx *TemplateContext) ([]byte, string, bool, error) {
	if len(chain.Argv) == 0 {
		return nil, "", false, &ChainError{Kind: ChainErrCommandMissing}
	}

	cmd := exec.CommandContext(ctx, chain.Argv[0], chain.Argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, "", false, &ChainError{Kind: ChainErrCommand, Argv: chain.Argv, Cause: err}
	}

	if stderr.Len() > 0 {
		tctx.Logger.Warn("command chain wrote to stderr",
			"chain", chain.ID, "argv", chain.Argv, "stderr", stderr.String())
	}

	return stdout.Bytes(), "", false, nil
}

func awaitPrompt(ctx context.Context, chain *Chain, tctx *TemplateContext) (string, error) {
	label := chain.Message
	if label == "" {
		label = chain.ID
	}

	ch, err := tctx.Prompter.Prompt(ctx, Prompt{Label: label, Sensitive: chain.Sensitive})
	if err != nil {
		return "", &ChainError{Kind: ChainErrPromptNoResponse, Cause: err}
	}

	select {
	case v, ok := <-ch:
		if !ok {
			return "", &ChainError{Kind: ChainErrPromptNoResponse}
		}
		return v, nil
	case <-ctx.Done():
		return "", &ChainError{Kind: ChainErrPromptNoResponse, Cause: ctx.Err()}
	}
}
