package gojinja

import (
	"fmt"

	"github.com/juju/errors"
)

// Sender classifies a TemplateError the way the error-kind table in the
// design notes does: Syntax, UnknownName, Type, Arithmetic, Conversion,
// or the distinguished Undefined sentinel.
type Sender string

const (
	SenderSyntax      Sender = "syntax"
	SenderUnknownName Sender = "unknown-name"
	SenderType        Sender = "type"
	SenderArithmetic  Sender = "arithmetic"
	SenderConversion  Sender = "conversion"
	SenderUndefined   Sender = "undefined"
)

// TemplateError is the single error type surfaced by gojinja. It is
// grounded on the teacher's Error struct (error.go): Filename/Line/Column
// identify where in the source the failure occurred, Sender classifies
// the kind of failure, and OrigError carries an underlying cause when one
// exists, wrapped with juju/errors so callers can still errors.Cause()
// down to it.
type TemplateError struct {
	Filename  string
	Line      int
	Column    int
	Sender    Sender
	Msg       string
	OrigError error
}

func (e *TemplateError) Error() string {
	if e.Filename != "" && e.Line > 0 {
		return fmt.Sprintf("[Template Error: %s:%d:%d] %s", e.Filename, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("[Template Error] %s", e.Msg)
}

// Cause lets errors.Cause (juju/errors) unwrap to the underlying error
// that triggered this one, if any.
func (e *TemplateError) Cause() error {
	return e.OrigError
}

func newError(sender Sender, format string, args ...interface{}) *TemplateError {
	return &TemplateError{Sender: sender, Msg: fmt.Sprintf(format, args...)}
}

func newErrorAt(tok *Token, filename string, sender Sender, format string, args ...interface{}) *TemplateError {
	e := newError(sender, format, args...)
	e.Filename = filename
	if tok != nil {
		e.Line = tok.Line
		e.Column = tok.Col
	}
	return e
}

// wrapError annotates err with context using juju/errors and re-tags it as
// a TemplateError when it isn't already one, preserving the original as
// OrigError.
func wrapError(err error, sender Sender, context string) error {
	if err == nil {
		return nil
	}
	annotated := errors.Annotate(err, context)
	if te, ok := err.(*TemplateError); ok {
		return &TemplateError{
			Filename:  te.Filename,
			Line:      te.Line,
			Column:    te.Column,
			Sender:    te.Sender,
			Msg:       annotated.Error(),
			OrigError: te,
		}
	}
	return &TemplateError{Sender: sender, Msg: annotated.Error(), OrigError: err}
}

// IsUndefinedError reports whether err is a TemplateError raised for a
// reference to an Undefined value in a context that requires one.
func IsUndefinedError(err error) bool {
	cause := errors.Cause(err)
	te, ok := cause.(*TemplateError)
	return ok && te.Sender == SenderUndefined
}
