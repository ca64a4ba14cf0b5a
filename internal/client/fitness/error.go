package fitness

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// Message returns the vendor's own description of err when the API supplied one.
func Message(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// StatusCode returns the HTTP status of a failed API call, or 0.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
