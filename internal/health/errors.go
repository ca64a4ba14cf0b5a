package health

import (
	"fmt"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
)

const (
	CodeReadError      = "READ_ERROR"
	CodeSleepReadError = "SLEEP_READ_ERROR"
	CodeBodyReadError  = "BODY_READ_ERROR"
)

// ReadError is a failed read, carrying the code reported to the app shell.
type ReadError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	return e.Message
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

func (e *ReadError) ErrorCode() string {
	return e.Code
}

func newReadError(code string, format string, cause error, args ...any) *ReadError {
	args = append(args, fitness.Message(cause))
	return &ReadError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
