package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when no post matches the slug
	ErrNotFound = errors.New("post not found")

	// ErrForbidden is returned when a user other than the owner tries to modify a post
	ErrForbidden = errors.New("only the post owner may modify this post")

	// ErrSlugTaken is returned by the repository when the slug unique constraint
	// rejects an insert. The service retries with the next candidate.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrOwnerNotFound is returned when the owning user no longer exists
	ErrOwnerNotFound = errors.New("post owner not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
