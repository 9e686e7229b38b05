package template

import (
	"errors"
	"os"
	"unicode/utf8"
)

// renderEnvironment reads variable from the process environment. It
// never suspends and is never sensitive.
func renderEnvironment(variable string) (RenderedChunk, error) {
	value, ok := os.LookupEnv(variable)
	if !ok {
		return RenderedChunk{}, &TemplateError{
			Kind:   ErrEnvironmentVariable,
			EnvVar: variable,
			Cause:  errors.New("not set"),
		}
	}
	if !utf8.ValidString(value) {
		return RenderedChunk{}, &TemplateError{
			Kind:   ErrEnvironmentVariable,
			EnvVar: variable,
			Cause:  errors.New("value is not valid UTF-8"),
		}
	}
	return RenderedChunk{Value: value, Sensitive: false}, nil
}
