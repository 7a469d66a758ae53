package core

import (
	"errors"
	"fmt"
)

// Terminal errors.
var (
	// ErrLockContention indicates exclusive access to the terminal is already held.
	ErrLockContention = errors.New("terminal can only be locked once at a time")

	// ErrFlushFailed indicates staged changes could not be committed.
	ErrFlushFailed = errors.New("flushing batch failed")

	// ErrClosed indicates the terminal or backend has been torn down.
	ErrClosed = errors.New("terminal closed")
)

// ActionNotSupportedError is returned when a backend lacks the capability
// to perform an action.
type ActionNotSupportedError struct {
	Name    string // Action variant name (e.g., "ScrollUp")
	Backend string // Backend that rejected it
}

// NewActionNotSupported creates an ActionNotSupportedError for an action.
func NewActionNotSupported(backend string, a Action) *ActionNotSupportedError {
	return &ActionNotSupportedError{Name: a.Kind.String(), Backend: backend}
}

func (e *ActionNotSupportedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Backend != "" {
		return fmt.Sprintf("action '%s' is not supported by the %s backend", e.Name, e.Backend)
	}
	return fmt.Sprintf("action '%s' is not supported by backend", e.Name)
}

// AttributeNotSupportedError is returned when a text attribute cannot be
// represented by a backend.
type AttributeNotSupportedError struct {
	Name    string
	Backend string
}

// NewAttributeNotSupported creates an AttributeNotSupportedError.
func NewAttributeNotSupported(backend string, a Attribute) *AttributeNotSupportedError {
	return &AttributeNotSupportedError{Name: a.String(), Backend: backend}
}

func (e *AttributeNotSupportedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Backend != "" {
		return fmt.Sprintf("attribute '%s' is not supported by the %s backend", e.Name, e.Backend)
	}
	return fmt.Sprintf("attribute '%s' is not supported by backend", e.Name)
}

// IOError wraps a failure of the underlying terminal device.
type IOError struct {
	Op  string // Operation (e.g., "open tty", "enter raw mode")
	Err error
}

// NewIOError creates an IOError. It returns nil if err is nil.
func NewIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for IOError.
// Matches both the wrapper itself and the wrapped error.
func (e *IOError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*IOError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// IsNotSupported reports whether err means an action or attribute is not
// available on the active backend.
func IsNotSupported(err error) bool {
	var actErr *ActionNotSupportedError
	if errors.As(err, &actErr) {
		return true
	}
	var attrErr *AttributeNotSupportedError
	return errors.As(err, &attrErr)
}
