package provider

import (
	"errors"
)

type ErrorKind string

const (
	ErrorConfig      ErrorKind = "config"
	ErrorUnsupported ErrorKind = "unsupported"
	ErrorProvider    ErrorKind = "provider"
	ErrorIO          ErrorKind = "io"
)

// Error is the only error type that crosses a provider boundary. Adapters
// translate vendor errors into it; nothing downstream re-wraps or re-labels.
type Error struct {
	Kind ErrorKind

	Provider string
	Message  string

	Cause error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return string(e.Kind) + " (" + e.Provider + "): " + e.Message
	}

	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(kind ErrorKind, provider, message string) *Error {
	return &Error{
		Kind: kind,

		Provider: provider,
		Message:  message,
	}
}

func WrapError(kind ErrorKind, provider string, err error) *Error {
	var e *Error

	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Kind: kind,

		Provider: provider,
		Message:  err.Error(),

		Cause: err,
	}
}

// KindOf classifies an error from any layer of the dispatcher. Unknown errors
// count as remote failures, the only kind that is safe to retry.
func KindOf(err error) ErrorKind {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind
	}

	return ErrorProvider
}
