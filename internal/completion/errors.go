// Package completion wraps an LLM client into the pipeline's completion contract:
// deadline-bounded calls that resolve to a typed outcome instead of an error the
// caller has to interpret.
package completion

import "fmt"

// ParseErrorKind classifies why a response could not be turned into candidates.
type ParseErrorKind string

// Parse error kinds
const (
	ParseSyntax ParseErrorKind = "syntax"
	ParseSchema ParseErrorKind = "schema"
	ParseTooFew ParseErrorKind = "too-few"
)

// ParseError represents a malformed or short model response.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Count   int // hooks found, for ParseTooFew
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CallError represents an unavailable completion service: timeout, cancellation or transport failure.
type CallError struct {
	Message string
	Timeout bool
	Cause   error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion call error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("completion call error: %s", e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}
