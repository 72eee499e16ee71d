package newsletter

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrNotFound          = errors.New("subscriber not found")
)

// ValidationError reports an unacceptable email. Key is the UI string that
// describes the problem.
type ValidationError struct {
	Field string
	Key   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Key)
}

// UpstreamError carries the message returned by the content service, which
// may be empty
type UpstreamError struct {
	Message string
	Err     error
}

func (e UpstreamError) Error() string {
	if e.Message != "" {
		return "subscription rejected: " + e.Message
	}
	return fmt.Sprintf("subscription failed: %v", e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}
