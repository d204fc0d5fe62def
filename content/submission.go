package content

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Format names the shape of a submitted note body.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "md"
	FormatDelta    Format = "delta"
)

// Submission is a note body as received from a client.
//
// Content is a string for text and md. For delta it is a JSON string or bytes, a
// decoded JSON object, or a delta.Document.
type Submission struct {
	Format  Format `json:"format"`
	Content any    `json:"content"`
}

// Validate checks the submission envelope. Skip keeps ozzo from calling Validate on
// a delta.Document value; content is checked during Normalize.
func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Format,
			validation.Required,
			validation.In(FormatText, FormatMarkdown, FormatDelta).Error("must be one of text, md, delta"),
		),
		validation.Field(&s.Content, validation.NotNil, validation.Skip),
	)
}

// fieldError maps ozzo validation errors onto FieldError.
func fieldError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	if fieldErr, ok := errs["format"]; ok && fieldErr != nil {
		return &FieldError{Field: "format", Err: ErrInvalidFormat, Message: fieldErr.Error()}
	}
	if fieldErr, ok := errs["content"]; ok && fieldErr != nil {
		return &FieldError{Field: "content", Err: ErrInvalidContentType, Message: fieldErr.Error()}
	}
	return err
}
