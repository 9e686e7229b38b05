package template

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/slumberhq/slumber/pkg/telemetry"
)

// RecursionLimit bounds the number of profile-field renders in a single
// top-level render (and so also its nested-field depth): the counter is
// never decremented, so sibling fields count against it too. It is a
// hard stop, not a tuning knob: exceeding it reports
// TemplateError{Kind: ErrRecursionLimit} rather than blowing the stack.
const RecursionLimit = 64

// Profile is a named mapping from field name to the template that
// renders it. Only Data is read by the core; anything else about a
// profile (display name, default-ness, ...) belongs to the collection
// collaborator and is out of scope here.
type Profile struct {
	ID   string
	Data map[string]*Template
}

// Prompt describes a single interactive input request sent to the
// Prompter collaborator.
type Prompt struct {
	Label     string
	Sensitive bool
}

// BuiltRequest is a fully rendered, ready-to-send HTTP request produced
// by a RequestBuilder.
type BuiltRequest struct {
	Method  string
	URL     string
	Headers map[string][]string
	Body    []byte
}

// Response is the result of sending a BuiltRequest, or a historical
// response retrieved from the Database.
type Response struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
}

// RequestRecord is the most recent stored response for a (profile,
// recipe) pair, as returned by Database.GetLastRequest.
type RequestRecord struct {
	Response Response
	EndTime  time.Time
}

// Collection is the subset of the request-collection data model the
// core needs: profile lookup, chain lookup, and a recipe existence
// check. The full recipe shape (URL, headers, body templates) is only
// needed by the RequestBuilder collaborator, not by the core itself.
type Collection interface {
	Profile(id string) (*Profile, bool)
	Chain(id string) (*Chain, bool)
	RecipeExists(id string) bool
}

// HTTPEngine sends a built request and returns the response. A render
// with no Request-variant chains never calls Send; when it is nil, any
// request that would have to be sent fails with TriggerErrNotAllowed.
type HTTPEngine interface {
	Send(ctx context.Context, req BuiltRequest) (Response, error)
}

// RequestBuilder turns a recipe reference into a BuiltRequest. Building
// re-enters template rendering for the recipe's own templated fields,
// using the same TemplateContext and recursion counter as the caller.
type RequestBuilder interface {
	Build(ctx context.Context, recipeID string, tctx *TemplateContext) (BuiltRequest, error)
}

// Database looks up the most recent stored request record for a
// (profile, recipe) pair. profileID is nil when no profile is selected.
type Database interface {
	GetLastRequest(ctx context.Context, profileID *string, recipeID string) (*RequestRecord, error)
}

// Prompter asks the user for input out of band. The returned channel
// carries exactly one reply; the prompter closes it without sending a
// value to signal that the question was abandoned.
type Prompter interface {
	Prompt(ctx context.Context, p Prompt) (<-chan string, error)
}

// ContentTyper resolves and applies content-type hints for chain
// bytes: from an HTTP response, from a file extension, and by parsing
// raw bytes into a structured value a Selector can query.
type ContentTyper interface {
	FromResponse(headers map[string][]string) (string, bool)
	FromExtension(path string) (string, bool)
	ParseContent(data []byte, contentType string) (any, error)
}

// Selector evaluates a selector expression against a parsed content
// value, reducing it to a string.
type Selector interface {
	QueryToString(expr string, value any) (string, error)
}

// TemplateContext is shared, read-only state for one top-level render
// call, except for the recursion counter which only ever increases.
// It must not be mutated concurrently by chunk futures beyond that
// counter.
type TemplateContext struct {
	Collection Collection
	ProfileID  *string
	Overrides  map[string]string

	HTTP     HTTPEngine
	Builder  RequestBuilder
	DB       Database
	Prompter Prompter

	ContentType ContentTyper
	Selector    Selector

	Logger    hclog.Logger
	Telemetry *telemetry.Settings

	recursion *atomic.Int64
}

// NewContext constructs a TemplateContext for one top-level render. The
// recursion counter starts at zero and is shared by reference across
// every recursive entry reachable from this context.
func NewContext(coll Collection) *TemplateContext {
	return &TemplateContext{
		Collection:  coll,
		Overrides:   map[string]string{},
		ContentType: noopContentType{},
		Selector:    noopSelector{},
		Logger:      hclog.NewNullLogger(),
		recursion:   new(atomic.Int64),
	}
}

// noopContentType and noopSelector are safe zero-value defaults so a
// TemplateContext can be constructed without every collaborator wired.
// FromResponse and FromExtension are still consulted for every Request
// and File chain and report no hint; ParseContent and QueryToString are
// only reached by chains with a selector, where they fail.
type noopContentType struct{}

func (noopContentType) FromResponse(map[string][]string) (string, bool) { return "", false }
func (noopContentType) FromExtension(string) (string, bool)             { return "", false }
func (noopContentType) ParseContent(data []byte, contentType string) (any, error) {
	return nil, fmt.Errorf("content type %q: no content-type collaborator configured", contentType)
}

type noopSelector struct{}

func (noopSelector) QueryToString(expr string, _ any) (string, error) {
	return "", fmt.Errorf("selector %q: no selector collaborator configured", expr)
}
