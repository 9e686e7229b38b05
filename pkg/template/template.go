// Package template renders Slumber templates: strings with embedded
// interpolation keys that pull values from a profile, a chained data
// source (HTTP, file, command, prompt), or the process environment.
//
// The package owns rendering only. Parsing a raw string into a Template
// (producing the chunk/span table) and the collection data model it
// reads from are external collaborators consumed through the
// interfaces in context.go.
package template

import "fmt"

// Span is a half-open byte range [Start, End) into a Template's Source.
type Span struct {
	Start int
	End   int
}

func (s Span) slice(source string) string {
	return source[s.Start:s.End]
}

// ChunkKind discriminates the two forms a Chunk can take.
type ChunkKind int

const (
	// ChunkRaw is a literal byte span copied verbatim into the output.
	ChunkRaw ChunkKind = iota
	// ChunkKey is an interpolation key that must be resolved.
	ChunkKey
)

// Chunk is one element of a parsed Template: either a literal span or a
// key to resolve. KeySpan is the byte range of the key's original
// textual form (e.g. "{{chains.token}}") and is kept around so override
// matching can compare against exactly what the user typed.
type Chunk struct {
	Kind    ChunkKind
	Raw     Span
	Key     ParsedKey
	KeySpan Span
}

// ParsedKeyKind discriminates the three interpolation sources.
type ParsedKeyKind int

const (
	KeyField ParsedKeyKind = iota
	KeyChain
	KeyEnvironment
)

// ParsedKey is a classified interpolation expression.
type ParsedKey struct {
	Kind ParsedKeyKind
	// Name holds the field name (KeyField) or environment variable name
	// (KeyEnvironment).
	Name string
	// ChainID holds the chain identifier (KeyChain).
	ChainID string
}

// Template is an immutable parsed string: the original source plus an
// ordered sequence of chunks that tile it without gaps or overlap.
type Template struct {
	Source string
	Chunks []Chunk
}

// New builds a Template from its source and chunk list, validating that
// the chunks tile Source with no gaps or overlap (invariant 1 of the
// core data model).
func New(source string, chunks []Chunk) (*Template, error) {
	pos := 0
	for i, c := range chunks {
		var span Span
		if c.Kind == ChunkRaw {
			span = c.Raw
		} else {
			span = c.KeySpan
		}
		if span.Start != pos {
			return nil, fmt.Errorf("template: chunk %d starts at %d, expected %d", i, span.Start, pos)
		}
		if span.End < span.Start || span.End > len(source) {
			return nil, fmt.Errorf("template: chunk %d has invalid span [%d,%d)", i, span.Start, span.End)
		}
		pos = span.End
	}
	if pos != len(source) {
		return nil, fmt.Errorf("template: chunks cover %d of %d bytes", pos, len(source))
	}
	return &Template{Source: source, Chunks: chunks}, nil
}

// MustNew is New but panics on error; useful for literal templates built
// in tests and examples.
func MustNew(source string, chunks []Chunk) *Template {
	t, err := New(source, chunks)
	if err != nil {
		panic(err)
	}
	return t
}

// keyText re-derives the exact textual form of a key chunk from its
// span, so override lookups are lexically faithful to the source.
func (t *Template) keyText(c Chunk) string {
	return c.KeySpan.slice(t.Source)
}
