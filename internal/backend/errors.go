package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for an unknown item or group id.
	ErrNotFound = errors.New("not found")
	// ErrUnsupported is returned by commands the platform cannot perform.
	ErrUnsupported = errors.New("not supported on this platform")
	// ErrCancelled is returned when the user dismisses a picker.
	ErrCancelled = errors.New("cancelled")
)

// Error is a failed command carrying a message fit for display.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error for op wrapping err.
func Errorf(op string, err error, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// Message returns the text to show for err: the Message of the outermost
// *Error, else err's own text, else fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
