// Package errs defines the tagged error kinds surfaced at the boundary of
// the search core, per spec.md section 7.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags an Error with one of the standardized categories from
// spec.md section 7.
type Kind uint8

const (
	// Internal is a contract violation observed at runtime; treated as a bug.
	Internal Kind = iota
	Index
	Query
	Parse
	OutOfMemory
	Config
	LCA
)

func (k Kind) String() string {
	switch k {
	case Index:
		return "IndexError"
	case Query:
		return "QueryError"
	case Parse:
		return "ParseError"
	case OutOfMemory:
		return "OutOfMemory"
	case Config:
		return "ConfigError"
	case LCA:
		return "LCAError"
	default:
		return "InternalInvariant"
	}
}

// Error is a tagged, wrappable error. It satisfies the standard error
// interface and unwraps to its cause via errors.Unwrap, so callers can
// still use errors.Is/errors.As on the underlying cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the tagged category.
func (e *Error) Kind() Kind { return e.kind }

// New creates an Error of the given kind with no wrapped cause.
func New(k Kind, msg string) error {
	return &Error{kind: k, msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(k Kind, format string, args ...interface{}) error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates cause with msg and tags it with kind, in the style
// lexicmap/cmd/util.go wraps filesystem errors with errors.Wrap.
func Wrap(k Kind, cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: k, msg: msg, cause: errors.WithMessage(cause, msg)}
}

// KindOf reports the Kind of err if it is (or wraps) an *Error, and
// whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return Internal, false
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}
