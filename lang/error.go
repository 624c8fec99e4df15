package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrParse          = NewError("parse error")
	ErrSubstitution   = NewError("substitution error")
	ErrReadInput      = NewError("failed to read input")
	ErrIterationLimit = NewError("iteration limit exceeded")
)

// Reasons wrapped by [ErrParse] and [ErrSubstitution].
var (
	ErrUnmatchedClose = NewError(`unmatched "}"`)
	ErrUnclosedLoop   = NewError(`missing "}"`)
	ErrHeaderPrefix   = NewError(`syntax error (expected "$for")`)
	ErrHeaderParen    = NewError("syntax error (missing parenthesis)")
	ErrHeaderBrace    = NewError(`missing "{"`)
	ErrHeaderClauses  = NewError(`syntax error (missing ";"?)`)
	ErrHeaderCond     = NewError("invalid condition")
	ErrHeaderExpr     = NewError("not an integer expression")
	ErrHeaderArity    = NewError("params number no match")
	ErrHeaderStep     = NewError("step is not a constant delta")
	ErrParamRange     = NewError("too many params")
)

// Error represents an error with an optional source line and structured
// logging attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	line  int         // 1-based source line, or 0 if unknown
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
//	"<msg>: line <n>: <err>"
//
// Any empty part is omitted.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.line > 0 {
		part = append(part, "line "+strconv.Itoa(e.line))
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel [Error] with the same message.
// Copies made by [Error.Wrap], [Error.With] and [Error.At] still match the
// sentinel they were derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.line != 0 || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// Line returns the source line the error refers to, searching the wrapped
// chain when the receiver has none. Zero means unknown.
func (e *Error) Line() int {
	if e.line > 0 {
		return e.line
	}

	var inner *Error
	if errors.As(e.err, &inner) {
		return inner.Line()
	}

	return 0
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		line:  e.line,
		attrs: e.attrs, // Share attrs
	}
}

// At creates a new Error citing the given source line.
func (e *Error) At(line int) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  line,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  e.line,
		attrs: newAttrs,
	}
}
