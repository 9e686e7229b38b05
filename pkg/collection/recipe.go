// Package collection holds the persistent shape of a Slumber
// workspace: recipes, profiles, and chains, loaded once and then
// queried read-only by the template engine and the HTTP request
// builder during a render.
package collection

import "github.com/slumberhq/slumber/pkg/template"

// Header is a single templated request header. Enabled is carried
// through from the collection file but is intentionally ignored by
// the request builder: a triggered request always sends every header
// and query parameter it has, regardless of its enabled state.
type Header struct {
	Name    string
	Value   *template.Template
	Enabled bool
}

// QueryParam is a single templated query parameter, same Enabled
// caveat as Header.
type QueryParam struct {
	Name    string
	Value   *template.Template
	Enabled bool
}

// Recipe is a request definition: a method and templated URL, plus
// templated headers, query parameters, and an optional body.
type Recipe struct {
	ID     string
	Name   string
	Method string
	URL    *template.Template

	Headers     []Header
	QueryParams []QueryParam

	Body *template.Template
}
