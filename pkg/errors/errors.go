package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a token document parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures document or settings validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CycleError reports a chain of token references that loops back on itself.
// Chain lists the dotted paths in visiting order and repeats the first
// revisited path at the end.
type CycleError struct {
	Chain []string
}

// NewCycleError constructs a CycleError for the given chain.
func NewCycleError(chain []string) error {
	return &CycleError{Chain: append([]string(nil), chain...)}
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cyclic token reference: %s", strings.Join(e.Chain, " -> "))
}

// UnresolvedReferenceError is returned in strict mode when a reference does
// not lead to a literal token.
type UnresolvedReferenceError struct {
	Reference string
	Token     string
}

// NewUnresolvedReferenceError constructs an UnresolvedReferenceError.
func NewUnresolvedReferenceError(reference, token string) error {
	return &UnresolvedReferenceError{Reference: reference, Token: token}
}

func (e *UnresolvedReferenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Token != "" {
		return fmt.Sprintf("unresolved reference %s in token %s", e.Reference, e.Token)
	}
	return fmt.Sprintf("unresolved reference %s", e.Reference)
}

// UnknownThemeError indicates a theme that the token document does not define.
type UnknownThemeError struct {
	Theme     string
	Available []string
}

// NewUnknownThemeError constructs an UnknownThemeError.
func NewUnknownThemeError(theme string, available []string) error {
	return &UnknownThemeError{Theme: theme, Available: append([]string(nil), available...)}
}

func (e *UnknownThemeError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown theme %q: document defines no themes", e.Theme)
	}
	return fmt.Sprintf("unknown theme %q (available: %s)", e.Theme, strings.Join(e.Available, ", "))
}
