package apperr

import (
	"errors"
	"net/http"
	"time"
)

// Error is an HTTP-facing failure with a stable machine-readable code.
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

type RateLimitError struct {
	Code       string
	Message    string
	RetryAfter time.Duration
	Reason     string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func BadRequest(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusBadRequest, Cause: cause}
}

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusNotFound}
}

func Internal(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusInternalServerError, Cause: cause}
}

func ServiceUnavailable(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusServiceUnavailable, Cause: cause}
}

func TooManyRequests(code, message string, retryAfter time.Duration, reason string) *RateLimitError {
	return &RateLimitError{
		Code:       code,
		Message:    message,
		RetryAfter: retryAfter,
		Reason:     reason,
	}
}

func AsRateLimitError(err error) *RateLimitError {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr
	}
	return nil
}
