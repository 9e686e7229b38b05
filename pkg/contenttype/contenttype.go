// Package contenttype provides the default template.ContentTyper:
// content-type detection from response headers and file extensions,
// and parsing of the common content types a chain selector queries
// against.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"
)

// Detector is the default template.ContentTyper implementation.
type Detector struct{}

// FromResponse reads the Content-Type header, stripping any
// parameters (such as a charset) so the result is a bare MIME type.
func (Detector) FromResponse(headers map[string][]string) (string, bool) {
	for name, values := range headers {
		if !strings.EqualFold(name, "Content-Type") || len(values) == 0 {
			continue
		}
		mimeType, _, err := mime.ParseMediaType(values[0])
		if err != nil {
			return strings.TrimSpace(values[0]), true
		}
		return mimeType, true
	}
	return "", false
}

// FromExtension maps a file extension to a MIME type using a small
// table of common types before falling back to the mime package.
func (Detector) FromExtension(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if mimeType, ok := extensionTypes[ext]; ok {
		return mimeType, true
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
			return parsed, true
		}
		return mimeType, true
	}
	return "", false
}

var extensionTypes = map[string]string{
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".xml":  "application/xml",
	".txt":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
	".csv":  "text/csv",
}
