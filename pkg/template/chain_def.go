package template

import "time"

// ChainSourceKind discriminates the four variants a Chain's data source
// can take.
type ChainSourceKind int

const (
	ChainSourceRequest ChainSourceKind = iota
	ChainSourceFile
	ChainSourceCommand
	ChainSourcePrompt
)

// TriggerKind is the reuse-vs-resend policy for a Request-variant chain.
type TriggerKind int

const (
	TriggerNever TriggerKind = iota
	TriggerNoHistory
	TriggerExpire
	TriggerAlways
)

// Trigger pairs a policy with the expiry duration it needs (only
// meaningful when Kind == TriggerExpire).
type Trigger struct {
	Kind   TriggerKind
	Expire time.Duration
}

// Chain is the definition referenced by a Chain(id) key. Exactly one
// source-specific field group is meaningful, selected by Source.
type Chain struct {
	ID     string
	Source ChainSourceKind

	// Request
	RecipeID string
	TriggerOn Trigger

	// File
	Path string

	// Command
	Argv []string

	// Prompt
	Message string

	// ContentType overrides the hint derived from the source (response
	// header or file extension) when set.
	ContentType string

	// Selector, when non-empty, is applied to the parsed content to
	// produce the rendered string instead of raw UTF-8 decoding.
	Selector string

	// Sensitive marks values from this chain as secret; it is the only
	// source of RenderedChunk.Sensitive=true (see invariant 3).
	Sensitive bool
}
