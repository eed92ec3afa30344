package timefmt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTokenize marks malformed pattern syntax.
var ErrTokenize = errors.New("timefmt: malformed pattern")

// ErrCompile marks patterns that cannot be compiled for a locale/calendar.
var ErrCompile = errors.New("timefmt: compile failed")

// ErrInvalidFormatType indicates a style outside short, medium, long and full.
var ErrInvalidFormatType = errors.New("timefmt: invalid format type")

// ErrMissingTemplate indicates locale data lacks a template a directive needs.
var ErrMissingTemplate = errors.New("timefmt: missing locale template")

// ErrUnknownLocale indicates no locale data matched the requested locale.
var ErrUnknownLocale = errors.New("timefmt: unknown locale")

// ErrDirectiveExecution marks aggregated per-fragment failures.
var ErrDirectiveExecution = errors.New("timefmt: directive execution failed")

// ErrInvalidValue indicates the value cannot be formatted at all.
var ErrInvalidValue = errors.New("timefmt: invalid value")

// ErrUnknownNumberSystem indicates a number system the transliterator cannot render.
var ErrUnknownNumberSystem = errors.New("timefmt: unknown number system")

// TokenizeError reports the position of a lexing failure.
type TokenizeError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("timefmt: pattern %q: %s at offset %d", e.Pattern, e.Reason, e.Offset)
}

func (e *TokenizeError) Unwrap() error {
	return ErrTokenize
}

// CompileError names the pattern and symbol that failed to compile.
type CompileError struct {
	Pattern string
	Symbol  string
	Locale  string
	Reason  string
	Err     error
}

func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("timefmt: ")
	if e.Pattern != "" {
		fmt.Fprintf(&b, "pattern %q: ", e.Pattern)
	}
	if e.Symbol != "" {
		fmt.Fprintf(&b, "symbol %q: ", e.Symbol)
	}
	b.WriteString(e.Reason)
	if e.Locale != "" {
		fmt.Fprintf(&b, " (locale %q)", e.Locale)
	}
	return b.String()
}

func (e *CompileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCompile}
	}
	return []error{ErrCompile, e.Err}
}

// DirectiveError is the failure carried by a single fragment.
type DirectiveError struct {
	Symbol string
	Reason string
}

func (e *DirectiveError) Error() string {
	if e.Symbol == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (%s)", e.Reason, e.Symbol)
}

// ExecutionError aggregates every failed fragment of one pattern.
type ExecutionError struct {
	Reasons []string
}

func (e *ExecutionError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func (e *ExecutionError) Unwrap() error {
	return ErrDirectiveExecution
}

// InvalidValueError lists the missing or out of range fields of a value.
type InvalidValueError struct {
	Missing []string
	Invalid []string
}

func (e *InvalidValueError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "out of range "+strings.Join(e.Invalid, ", "))
	}
	return "timefmt: invalid value: " + strings.Join(parts, "; ")
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
