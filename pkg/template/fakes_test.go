package template

import (
	"context"
	"sync"
)

type fakeCollection struct {
	profiles map[string]*Profile
	chains   map[string]*Chain
	recipes  map[string]bool
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{
		profiles: map[string]*Profile{},
		chains:   map[string]*Chain{},
		recipes:  map[string]bool{},
	}
}

func (f *fakeCollection) Profile(id string) (*Profile, bool) {
	p, ok := f.profiles[id]
	return p, ok
}

func (f *fakeCollection) Chain(id string) (*Chain, bool) {
	c, ok := f.chains[id]
	return c, ok
}

func (f *fakeCollection) RecipeExists(id string) bool {
	return f.recipes[id]
}

type fakeHTTP struct {
	mu    sync.Mutex
	calls int
	resp  Response
	err   error
}

func (f *fakeHTTP) Send(ctx context.Context, req BuiltRequest) (Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.resp, f.err
}

type fakeBuilder struct {
	req BuiltRequest
	err error
}

func (f *fakeBuilder) Build(ctx context.Context, recipeID string, tctx *TemplateContext) (BuiltRequest, error) {
	return f.req, f.err
}

type fakeDatabase struct {
	record *RequestRecord
	err    error
}

func (f *fakeDatabase) GetLastRequest(ctx context.Context, profileID *string, recipeID string) (*RequestRecord, error) {
	return f.record, f.err
}

type fakePrompter struct {
	value string
}

func (f *fakePrompter) Prompt(ctx context.Context, p Prompt) (<-chan string, error) {
	ch := make(chan string, 1)
	ch <- f.value
	close(ch)
	return ch, nil
}

type fakeContentType struct {
	respType string
	respOK   bool
	extType  string
	extOK    bool
	parsed   any
	parseErr error
}

func (f *fakeContentType) FromResponse(map[string][]string) (string, bool) { return f.respType, f.respOK }
func (f *fakeContentType) FromExtension(string) (string, bool)             { return f.extType, f.extOK }
func (f *fakeContentType) ParseContent(data []byte, contentType string) (any, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.parsed, nil
}

type fakeSelector struct {
	out string
	err error
}

func (f *fakeSelector) QueryToString(expr string, value any) (string, error) {
	return f.out, f.err
}

func newTestContext(coll Collection) *TemplateContext {
	tctx := NewContext(coll)
	return tctx
}
