package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure for the presentation layer. Every error that
// crosses a component boundary carries exactly one kind.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindTranscript    Kind = "transcript"
	KindAPI           Kind = "api"
	KindParsing       Kind = "parsing"
	KindSystem        Kind = "system"
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Validation(op string, err error, message string) *AppError {
	return newError(KindValidation, op, err, message)
}

func Configuration(op string, err error, message string) *AppError {
	return newError(KindConfiguration, op, err, message)
}

func Transcript(op string, err error, message string) *AppError {
	return newError(KindTranscript, op, err, message)
}

func API(op string, err error, message string) *AppError {
	return newError(KindAPI, op, err, message)
}

func Parsing(op string, err error, message string) *AppError {
	return newError(KindParsing, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return newError(KindSystem, op, err, message)
}

// KindOf returns the kind carried by err, or KindSystem when err was never
// classified at a component boundary.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindSystem
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Coerce wraps err into an AppError if it is not one already. The fallback
// message is only used for unclassified errors.
func Coerce(op string, err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(op, err, message)
}
