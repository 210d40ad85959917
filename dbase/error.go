package dbase

import (
	"errors"
	"strings"
)

// Error wraps an error with the trail of contexts it passed through.
// The first context is the outermost one.
type Error struct {
	context []string
	err     error
}

func newError(context string, err error) Error {
	if e, ok := err.(Error); ok {
		ctx := make([]string, 0, len(e.context)+1)
		ctx = append(ctx, context)
		e.context = append(ctx, e.context...)
		return e
	}
	return Error{
		context: []string{context},
		err:     err,
	}
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Unwrap() error {
	return e.err
}

// Context returns the context trail, outermost first.
func (e Error) Context() []string {
	return e.context
}

func (e Error) trace() string {
	return strings.Join(e.context, ":") + ":" + e.err.Error()
}

// GetErrorTrace returns an error whose message contains the full context trail.
func GetErrorTrace(err error) error {
	var e Error
	if errors.As(err, &e) {
		return errors.New(e.trace())
	}
	return err
}
