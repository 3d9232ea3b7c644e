package router

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrHandlerFailure = errors.New("handler failure")
	ErrInvalidHandler = errors.New("invalid handler")
	ErrInvalidMethod  = errors.New("invalid method")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrSealed         = errors.New("route table sealed")
)

func errInvalidMethod(tok string) error { return fmt.Errorf("%w: %q", ErrInvalidMethod, tok) }

// A PanicError is a panic recovered while invoking a handler.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError { return &PanicError{Value: v, Stack: debug.Stack()} }

func (e *PanicError) Error() string { return fmt.Sprintf("handler panicked: %v", e.Value) }

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
