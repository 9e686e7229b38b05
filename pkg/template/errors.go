package template

import (
	"errors"
	"fmt"
)

// TemplateErrorKind discriminates the variants of TemplateError.
type TemplateErrorKind int

const (
	ErrNoProfileSelected TemplateErrorKind = iota
	ErrProfileUnknown
	ErrFieldUnknown
	ErrNested
	ErrRecursionLimit
	ErrEnvironmentVariable
	ErrChain
)

// TemplateError is the single top-level error type a render can fail
// with. Exactly one field group is populated, selected by Kind.
type TemplateError struct {
	Kind TemplateErrorKind

	ProfileID      string // ErrProfileUnknown
	Field          string // ErrFieldUnknown
	NestedTemplate string // ErrNested: source of the inner template
	EnvVar         string // ErrEnvironmentVariable
	ChainID        string // ErrChain

	Cause error // ErrEnvironmentVariable
	Inner error // ErrNested (render error), ErrChain (*ChainError)
}

func (e *TemplateError) Error() string {
	switch e.Kind {
	case ErrNoProfileSelected:
		return "no profile is selected"
	case ErrProfileUnknown:
		return fmt.Sprintf("unknown profile %q", e.ProfileID)
	case ErrFieldUnknown:
		return fmt.Sprintf("unknown field %q", e.Field)
	case ErrNested:
		return fmt.Sprintf("rendering nested template %q: %v", e.NestedTemplate, e.Inner)
	case ErrRecursionLimit:
		return fmt.Sprintf("exceeded recursion limit of %d", RecursionLimit)
	case ErrEnvironmentVariable:
		return fmt.Sprintf("environment variable %q: %v", e.EnvVar, e.Cause)
	case ErrChain:
		return fmt.Sprintf("chain %q: %v", e.ChainID, e.Inner)
	default:
		return "template error"
	}
}

// Unwrap lets errors.Is/As reach the nested cause.
func (e *TemplateError) Unwrap() error {
	if e.Inner != nil {
		return e.Inner
	}
	return e.Cause
}

// Is reports whether target is a TemplateError with the same Kind,
// so callers can write errors.Is(err, &TemplateError{Kind: ErrRecursionLimit}).
func (e *TemplateError) Is(target error) bool {
	var other *TemplateError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// ChainErrorKind discriminates the variants of ChainError.
type ChainErrorKind int

const (
	ChainErrChainUnknown ChainErrorKind = iota
	ChainErrRecipeUnknown
	ChainErrNoResponse
	ChainErrDatabase
	ChainErrTrigger
	ChainErrFile
	ChainErrCommandMissing
	ChainErrCommand
	ChainErrPromptNoResponse
	ChainErrUnknownContentType
	ChainErrParseResponse
	ChainErrInvalidUtf8
	ChainErrSelector
)

// ChainError is the nested error produced by the Chain source. It is
// always wrapped in a TemplateError{Kind: ErrChain} before reaching the
// caller, but keeps its own shape so the chain-level cause survives.
type ChainError struct {
	Kind ChainErrorKind

	RecipeID string   // ChainErrTrigger
	Path     string   // ChainErrFile
	Argv     []string // ChainErrCommand

	Cause error // ChainErrDatabase, ChainErrFile, ChainErrCommand, ChainErrPromptNoResponse (when known), ChainErrParseResponse, ChainErrInvalidUtf8, ChainErrSelector
	Inner error // ChainErrTrigger: *TriggeredRequestError
}

func (e *ChainError) Error() string {
	switch e.Kind {
	case ChainErrChainUnknown:
		return "unknown chain"
	case ChainErrRecipeUnknown:
		return "unknown recipe"
	case ChainErrNoResponse:
		return "no stored response and trigger forbids sending a new request"
	case ChainErrDatabase:
		return fmt.Sprintf("database lookup failed: %v", e.Cause)
	case ChainErrTrigger:
		return fmt.Sprintf("triggering request for recipe %q: %v", e.RecipeID, e.Inner)
	case ChainErrFile:
		return fmt.Sprintf("reading file %q: %v", e.Path, e.Cause)
	case ChainErrCommandMissing:
		return "command chain has an empty argv"
	case ChainErrCommand:
		return fmt.Sprintf("running command %v: %v", e.Argv, e.Cause)
	case ChainErrPromptNoResponse:
		return "prompt closed without a response"
	case ChainErrUnknownContentType:
		return "a selector is set but the content type is unknown"
	case ChainErrParseResponse:
		return fmt.Sprintf("parsing content: %v", e.Cause)
	case ChainErrInvalidUtf8:
		return fmt.Sprintf("decoding content as UTF-8: %v", e.Cause)
	case ChainErrSelector:
		return fmt.Sprintf("applying selector: %v", e.Cause)
	default:
		return "chain error"
	}
}

func (e *ChainError) Unwrap() error {
	if e.Inner != nil {
		return e.Inner
	}
	return e.Cause
}

func (e *ChainError) Is(target error) bool {
	var other *ChainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// TriggerErrorKind discriminates the variants of TriggeredRequestError.
type TriggerErrorKind int

const (
	TriggerErrBuild TriggerErrorKind = iota
	TriggerErrNotAllowed
	TriggerErrSend
)

// TriggeredRequestError is the error produced by the "send new" path
// of the Trigger Resolver.
type TriggeredRequestError struct {
	Kind  TriggerErrorKind
	Cause error
}

func (e *TriggeredRequestError) Error() string {
	switch e.Kind {
	case TriggerErrBuild:
		return fmt.Sprintf("building request: %v", e.Cause)
	case TriggerErrNotAllowed:
		return "no HTTP engine is configured"
	case TriggerErrSend:
		return fmt.Sprintf("sending request: %v", e.Cause)
	default:
		return "trigger error"
	}
}

func (e *TriggeredRequestError) Unwrap() error { return e.Cause }

func (e *TriggeredRequestError) Is(target error) bool {
	var other *TriggeredRequestError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}
