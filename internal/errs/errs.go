package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidModel    = errors.New("invalid model")
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingCredential means the user has no API key stored for the provider.
	ErrMissingCredential = errors.New("missing credential")
	ErrDecryption        = errors.New("decryption failed")

	ErrProvider                = errors.New("provider request failed")
	ErrEmptyResponse           = errors.New("provider returned empty response")
	ErrInvalidGenerationFormat = errors.New("invalid generation format")
)

// ValidationError carries field level details that are echoed back to clients.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation.Error(), e.Details)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError from one or more detail messages.
func Invalid(details ...string) error {
	return &ValidationError{Details: details}
}

// GenerationFormatError keeps the raw provider output for diagnosis.
type GenerationFormatError struct {
	Raw    string
	Reason string
}

func (e *GenerationFormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidGenerationFormat.Error(), e.Reason)
}

func (e *GenerationFormatError) Unwrap() error {
	return ErrInvalidGenerationFormat
}
