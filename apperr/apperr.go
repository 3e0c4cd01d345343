// Package apperr defines the tagged error kinds used at the remote
// collaborator boundaries, so handlers can report distinguishable
// causes without leaking internals to the client.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InvalidInput    Kind = "INVALID_INPUT"
	AnalysisFailure Kind = "ANALYSIS_FAILURE"
	UploadFailure   Kind = "UPLOAD_FAILURE"
	PersistFailure  Kind = "PERSIST_FAILURE"
	ConfigError     Kind = "CONFIG_ERROR"
)

// Error carries a client-safe Message and the detailed underlying
// cause. Only Message may be shown to callers; the cause goes to the
// server log.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of a tagged error, or "" for untagged errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
