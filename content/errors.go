package content

import "errors"

var (
	// ErrInvalidFormat is returned for an unrecognized format keyword.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidDelta is returned when delta content fails structural validation.
	ErrInvalidDelta = errors.New("invalid delta")
	// ErrInvalidContentType is returned when the content shape does not fit the format.
	ErrInvalidContentType = errors.New("invalid content type")
	// ErrCompletionFailed is returned when the completion collaborator produced no content.
	ErrCompletionFailed = errors.New("completion failed")
)

// FieldError ties a submission error to the request field that caused it, so the
// caller can answer with a field-level validation message.
type FieldError struct {
	Field   string
	Err     error
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
