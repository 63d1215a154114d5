package extractor

import (
	"fmt"
)

// NotFoundError reports that no extractor resolves for a name,
// extension or MIME type, or that an input file does not exist.
type NotFoundError struct {
	Kind  string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Value)
}

// InvalidInputError reports that neither a usable path nor a usable
// stream was supplied.
type InvalidInputError struct {
	Reason string
	Path   string
}

func (e *InvalidInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
	}

	return "invalid input: " + e.Reason
}

// ExtractionError reports that a resolved extractor failed, wrapping
// the underlying cause.
type ExtractionError struct {
	Extractor string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extractor %s: %v", e.Extractor, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// RegistrationError reports that a single extractor could not be
// registered. It never aborts registration of others.
type RegistrationError struct {
	Extractor string
	Err       error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s: %v", e.Extractor, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Fail wraps an underlying parse failure as an ExtractionError.
func Fail(name string, err error) error {
	return &ExtractionError{
		Extractor: name,
		Err:       err,
	}
}
