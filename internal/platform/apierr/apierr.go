package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConfiguration marks a missing or invalid process setting, e.g. no LLM credential.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks an unknown id referenced by a dependent operation.
	ErrNotFound = errors.New("not found")
	// ErrProvider marks a failed LLM call: transport, timeout or non-2xx.
	ErrProvider = errors.New("provider failure")
	// ErrValidation marks a malformed request or unsupported enum value.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a write that collided with an existing record.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable marks a store that stayed busy (locks, serialization) past its retries.
	ErrUnavailable = errors.New("store busy")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// kinded carries a caller-facing message that unwraps to one of the sentinels.
type kinded struct {
	kind error
	msg  string
}

func (e *kinded) Error() string { return e.msg }
func (e *kinded) Unwrap() error { return e.kind }

// Validation is an ErrValidation whose message is exactly the formatted text.
func Validation(format string, args ...any) error {
	return &kinded{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound is an ErrNotFound whose message is exactly the formatted text.
func NotFound(format string, args ...any) error {
	return &kinded{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict wraps a store error for op as a 409 that matches ErrConflict and cause.
func Conflict(op string, cause error) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf("%s: %w: %w", op, ErrConflict, cause))
}

// Unavailable wraps a store error for op as a 503 that matches ErrUnavailable and cause.
func Unavailable(op string, cause error) *Error {
	return New(http.StatusServiceUnavailable, "store_busy", fmt.Errorf("%s: %w: %w", op, ErrUnavailable, cause))
}

// Status maps an error to the HTTP status the boundary responds with.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
