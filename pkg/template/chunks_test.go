package template

import (
	"context"
	"testing"
)

func TestRenderChunks_NeverFailsAsAWhole(t *testing.T) {
	t.Parallel()

	coll := newFakeCollection()
	tmpl := MustNew("a{{missing}}b", []Chunk{
		raw(0, 1),
		key(1, 12, ParsedKey{Kind: KeyField, Name: "missing"}),
		raw(12, 13),
	})

	tctx := newTestContext(coll)
	out := RenderChunks(context.Background(), tmpl, tctx)

	if len(out) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(out))
	}
	if out[0].Err != nil || out[0].Text != "a" {
		t.Errorf("chunk 0: %+v", out[0])
	}
	if out[1].Err == nil {
		t.Error("chunk 1: expected an error for the unknown field")
	}
	if out[2].Err != nil || out[2].Text != "b" {
		t.Errorf("chunk 2: %+v", out[2])
	}
}

func TestRenderChunks_PreservesOrderConcurrently(t *testing.T) {
	t.Parallel()

	id := "dev"
	coll := newFakeCollection()
	coll.profiles[id] = &Profile{
		ID: id,
		Data: map[string]*Template{
			"a": MustNew("A", []Chunk{raw(0, 1)}),
			"b": MustNew("B", []Chunk{raw(0, 1)}),
			"c": MustNew("C", []Chunk{raw(0, 1)}),
		},
	}

	tmpl := MustNew("{{a}}{{b}}{{c}}", []Chunk{
		key(0, 5, ParsedKey{Kind: KeyField, Name: "a"}),
		key(5, 10, ParsedKey{Kind: KeyField, Name: "b"}),
		key(10, 15, ParsedKey{Kind: KeyField, Name: "c"}),
	})

	tctx := newTestContext(coll)
	tctx.ProfileID = &id

	out := RenderChunks(context.Background(), tmpl, tctx)
	got := []string{out[0].Text, out[1].Text, out[2].Text}
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
