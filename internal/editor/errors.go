package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/kestrel/internal/command"
)

// Errors reported by the editor.
var (
	// ErrUnsavedChanges blocks quitting or abandoning a dirty buffer.
	ErrUnsavedChanges = command.ErrUnsavedChanges

	// ErrIOFailure marks a failed load or save. The in-memory state is kept.
	ErrIOFailure = errors.New("i/o failure")

	// ErrQuit is returned by Run-style callers once the editor has quit.
	ErrQuit = errors.New("editor quit")
)

// OperationError describes a failed file operation.
type OperationError struct {
	// Op is the operation that failed, such as "write".
	Op string

	// Target is the path involved.
	Target string

	// Context adds detail such as the encoding.
	Context string

	// Err is the underlying error.
	Err error
}

// NewOperationError creates an operation error.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext returns a copy with context set.
func (e *OperationError) WithContext(ctx string) *OperationError {
	cp := *e
	cp.Context = ctx
	return &cp
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is makes every operation error match ErrIOFailure.
func (e *OperationError) Is(target error) bool {
	return target == ErrIOFailure
}
