// Package colerr defines the small error taxonomy shared across the
// compiler and executor: MappingError, TransformError,
// ValidationError, and WriterError. Each wraps github.com/pkg/errors
// so the full cause chain survives across fatal propagation.
package colerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the four error categories.
type Kind string

const (
	Mapping    Kind = "mapping"
	Transform  Kind = "transform"
	Validation Kind = "validation"
	Writer     Kind = "writer"
)

// Error carries a human-readable message plus, where applicable, the
// offending mapping target name or DSL substring.
type Error struct {
	Kind    Kind
	Target  string // mapping target name, empty if not applicable
	Detail  string // offending substring, empty if not applicable
	cause   error
	message string
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.Target != "" && e.Detail != "":
		loc = fmt.Sprintf(" (target=%q, near %q)", e.Target, e.Detail)
	case e.Target != "":
		loc = fmt.Sprintf(" (target=%q)", e.Target)
	case e.Detail != "":
		loc = fmt.Sprintf(" (near %q)", e.Detail)
	}
	return fmt.Sprintf("%s: %s%s", e.Kind, e.message, loc)
}

func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter so %+v prints the full cause chain,
// matching pkg/errors' convention.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s", e.Error())
			if e.cause != nil {
				fmt.Fprintf(s, "\ncaused by: %+v", e.cause)
			}
			return
		}
		fallthrough
	default:
		fmt.Fprint(s, e.Error())
	}
}

func newErr(kind Kind, target, detail, message string, cause error) *Error {
	return &Error{Kind: kind, Target: target, Detail: detail, message: message, cause: errors.WithStack(cause)}
}

// Mapping errors: structural problems in the mapping document itself.
func NewMapping(target, format string, args ...any) error {
	return newErr(Mapping, target, "", fmt.Sprintf(format, args...), nil)
}

func WrapMapping(target string, cause error, format string, args ...any) error {
	return newErr(Mapping, target, "", fmt.Sprintf(format, args...), cause)
}

// Transform errors: DSL parse/evaluation failures. detail is the
// offending substring.
func NewTransform(target, detail, format string, args ...any) error {
	return newErr(Transform, target, detail, fmt.Sprintf(format, args...), nil)
}

func WrapTransform(target, detail string, cause error, format string, args ...any) error {
	return newErr(Transform, target, detail, fmt.Sprintf(format, args...), cause)
}

// Validation errors: reserved for domain-rule failures layered on top
// of the core; none are raised by the core itself, but the type
// exists so collaborators can compose into the same taxonomy.
func NewValidation(target, format string, args ...any) error {
	return newErr(Validation, target, "", fmt.Sprintf(format, args...), nil)
}

// Writer errors: surfaced by writer collaborators.
func NewWriter(format string, args ...any) error {
	return newErr(Writer, "", "", fmt.Sprintf(format, args...), nil)
}

func WrapWriter(cause error, format string, args ...any) error {
	return newErr(Writer, "", "", fmt.Sprintf(format, args...), cause)
}

// Is reports whether err is a colerr.Error of the given kind,
// unwrapping through any wrapping in between.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
