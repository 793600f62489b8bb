// Package parsererror defines the typed errors used across the analysis
// pipeline. Amount parse failures in particular must stay visible to the
// caller: substituting zero for a malformed amount silently skews
// reconciliation.
package parsererror

import "fmt"

// AmountParseError reports a monetary value that could not be normalized
// to a number.
type AmountParseError struct {
	Value string
	Err   error
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("invalid amount %q: %v", e.Value, e.Err)
}

func (e *AmountParseError) Unwrap() error {
	return e.Err
}

// RenderError reports a failure to render page images from a document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render pages from '%s': %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a perception-service capability call that
// returned no usable result. Callers treat this as an absent signal, not
// a fatal failure of the document analysis.
type ExtractionError struct {
	Capability string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Capability, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IntrospectionError reports a failure to read the document container.
// The structural analyzer downgrades this to a synthetic finding.
type IntrospectionError struct {
	Path string
	Err  error
}

func (e *IntrospectionError) Error() string {
	return fmt.Sprintf("failed to introspect '%s': %v", e.Path, e.Err)
}

func (e *IntrospectionError) Unwrap() error {
	return e.Err
}
