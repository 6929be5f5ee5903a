// Package generation turns a resume prompt into generated resume text.
package generation

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse means the completion service answered with no usable content.
// Its message is the text shown to the user in place of a resume.
var ErrEmptyResponse = errors.New("Error generating resume.") //nolint:staticcheck // user-facing text

// GenerationError wraps any failure raised while calling the completion service.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("An error occurred: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
