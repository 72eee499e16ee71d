package cms

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrNotFound        = errors.New("content not found")
	ErrInvalidResponse = errors.New("invalid response from content source")
	ErrRateLimited     = errors.New("content source rate limit exceeded")
)

// APIError is a non-2xx answer from the content source
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("cms error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is lets callers match on the status-derived sentinels
func (e APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// NotFoundError names the entity that could not be found
type NotFoundError struct {
	Resource string
	ID       any
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %v not found", e.Resource, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// Message extracts the content source's own error message, if any
func Message(err error) string {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
