package template

import "testing"

func raw(start, end int) Chunk {
	return Chunk{Kind: ChunkRaw, Raw: Span{Start: start, End: end}}
}

func key(start, end int, k ParsedKey) Chunk {
	return Chunk{Kind: ChunkKey, Key: k, KeySpan: Span{Start: start, End: end}}
}

func TestNew_ValidTiling(t *testing.T) {
	t.Parallel()

	source := "hello {{name}}"
	tmpl, err := New(source, []Chunk{
		raw(0, 6),
		key(6, 14, ParsedKey{Kind: KeyField, Name: "name"}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Source != source {
		t.Errorf("source mismatch: %q", tmpl.Source)
	}
}

func TestNew_RejectsGap(t *testing.T) {
	t.Parallel()

	_, err := New("hello", []Chunk{raw(0, 3), raw(4, 5)})
	if err == nil {
		t.Fatal("expected an error for a gap between chunks")
	}
}

func TestNew_RejectsOverlap(t *testing.T) {
	t.Parallel()

	_, err := New("hello", []Chunk{raw(0, 3), raw(2, 5)})
	if err == nil {
		t.Fatal("expected an error for overlapping chunks")
	}
}

func TestNew_RejectsIncompleteCoverage(t *testing.T) {
	t.Parallel()

	_, err := New("hello", []Chunk{raw(0, 3)})
	if err == nil {
		t.Fatal("expected an error when chunks don't cover the whole source")
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustNew to panic on invalid chunks")
		}
	}()
	MustNew("hello", []Chunk{raw(0, 3)})
}
