package thumbnails

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the upload is not a JPEG, PNG or WebP image
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned when the upload exceeds the byte or pixel limit
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrProcessingFailed is returned when a decodable image cannot be resized or encoded
	ErrProcessingFailed = errors.New("image processing failed")

	// ErrInvalidPath is returned when a thumbnail URL does not point into the store
	ErrInvalidPath = errors.New("invalid thumbnail path")
)

// ValidationError reports an upload the client must fix
type ValidationError struct {
	Err     error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, message string) error {
	return &ValidationError{
		Field:   "thumbnail",
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
