package rule34

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/rule34/post"
)

// Sentinel errors for client operations.
var (
	// ErrInvalidArgument indicates a caller-supplied value was rejected
	// before any request was made.
	ErrInvalidArgument = errors.New("rule34: invalid argument")

	// ErrPostNotFound indicates a single-post lookup produced no post.
	ErrPostNotFound = errors.New("rule34: post not found")

	// ErrPostsNotFound indicates a list lookup returned an unreadable body.
	ErrPostsNotFound = errors.New("rule34: posts not found")

	// ErrResponseTooLarge indicates the body exceeded the configured limit.
	ErrResponseTooLarge = errors.New("rule34: response body too large")

	// ErrFieldMissing matches decode failures caused by an absent key.
	ErrFieldMissing = post.ErrFieldMissing
)

// maxErrorBody bounds the body snippet kept on a StatusError.
const maxErrorBody = 512

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("rule34: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("rule34: unexpected status %s: %s", e.Status, e.Body)
}

// Temporary reports whether the status suggests the API may recover.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// decodeError maps a decode failure to the operation's not-found sentinel.
// Missing or mistyped fields keep their own identity.
func decodeError(notFound error, what string, err error) error {
	if errors.Is(err, post.ErrMalformed) {
		return fmt.Errorf("%w: %s: %w", notFound, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
