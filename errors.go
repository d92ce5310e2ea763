package essence

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedValue is matched by every DirectiveError. A directive
// carrying a value outside its enumerated set aborts the whole compile.
var ErrUnsupportedValue = errors.New("essence: unsupported directive value")

// DirectiveError reports a directive whose value is not one of the
// allowed choices (db type, auth strategy, frontend framework).
type DirectiveError struct {
	Line      int      // 1-based source line, 0 if unknown.
	Directive string   // e.g. "db type".
	Value     string   // offending value as written (lower-cased).
	Allowed   []string // legal values.
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	var b strings.Builder
	b.WriteString("essence: ")
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	fmt.Fprintf(&b, "unsupported %s %q", e.Directive, e.Value)
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return b.String()
}

// Is reports whether the target matches ErrUnsupportedValue.
func (e *DirectiveError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

// NewDirectiveError returns a DirectiveError for the given directive.
func NewDirectiveError(line int, directive, value string, allowed ...string) *DirectiveError {
	return &DirectiveError{
		Line:      line,
		Directive: directive,
		Value:     value,
		Allowed:   allowed,
	}
}

// IsDirectiveError returns true if the error is a DirectiveError.
func IsDirectiveError(err error) bool {
	if err == nil {
		return false
	}
	var e *DirectiveError
	return errors.As(err, &e)
}
