package post

import (
	"errors"
	"fmt"
)

// Sentinel errors for post decoding.
var (
	// ErrMalformed indicates the payload is not valid JSON or does not have
	// the expected shape (array of objects, or a single object).
	ErrMalformed = errors.New("post: malformed payload")

	// ErrFieldMissing indicates a required key is absent from a post object.
	ErrFieldMissing = errors.New("post: required field missing")

	// ErrInvalidField indicates a present key holds a value of the wrong type.
	ErrInvalidField = errors.New("post: field has unexpected type")
)

// FieldMissingError reports which required key was absent.
type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("post: required field %q missing", e.Field)
}

// Is reports whether target is ErrFieldMissing.
func (e *FieldMissingError) Is(target error) bool {
	return target == ErrFieldMissing
}
