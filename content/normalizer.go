package content

import (
	"encoding/json"
	"fmt"

	"github.com/rgonek/delta-md-converter/delta"
	"github.com/rgonek/delta-md-converter/mdconverter"
)

// Normalizer turns submissions of any format into canonical Delta JSON. It is safe
// for concurrent use.
type Normalizer struct {
	markdown *mdconverter.Converter
}

// NewNormalizer creates a Normalizer; cfg configures Markdown parsing.
func NewNormalizer(cfg mdconverter.Config) (*Normalizer, error) {
	md, err := mdconverter.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Normalizer{markdown: md}, nil
}

// Normalize validates a submission and returns its canonical Delta JSON. Failures
// are *FieldError values wrapping ErrInvalidFormat, ErrInvalidDelta or
// ErrInvalidContentType.
func (n *Normalizer) Normalize(sub Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", fieldError(err)
	}

	switch sub.Format {
	case FormatText:
		text, ok := sub.Content.(string)
		if !ok {
			return "", contentTypeError(sub)
		}
		return FromText(text)

	case FormatMarkdown:
		markdown, ok := sub.Content.(string)
		if !ok {
			return "", contentTypeError(sub)
		}
		result, err := n.markdown.Convert(markdown)
		if err != nil {
			return "", err
		}
		return result.Delta, nil

	case FormatDelta:
		return normalizeDelta(sub)

	default:
		return "", &FieldError{Field: "format", Err: ErrInvalidFormat, Message: fmt.Sprintf("unsupported format %q", sub.Format)}
	}
}

// FromText wraps plain text as a single insert terminated by a newline.
func FromText(text string) (string, error) {
	data, err := delta.Encode(delta.Document{Ops: []delta.Op{delta.Insert(text+"\n", nil)}})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func normalizeDelta(sub Submission) (string, error) {
	var (
		doc delta.Document
		err error
	)

	switch v := sub.Content.(type) {
	case string:
		doc, err = delta.DecodeString(v)
	case []byte:
		doc, err = delta.Decode(v)
	case json.RawMessage:
		doc, err = delta.Decode(v)
	case map[string]any:
		var data []byte
		if data, err = json.Marshal(v); err == nil {
			doc, err = delta.Decode(data)
		}
	case delta.Document:
		doc = v
	case *delta.Document:
		if v == nil {
			return "", contentTypeError(sub)
		}
		doc = *v
	default:
		return "", contentTypeError(sub)
	}
	if err != nil {
		return "", invalidDelta(err)
	}

	data, err := delta.Encode(doc)
	if err != nil {
		return "", invalidDelta(err)
	}
	return string(data), nil
}

func invalidDelta(err error) error {
	return &FieldError{
		Field:   "content",
		Err:     fmt.Errorf("%w: %w", ErrInvalidDelta, err),
		Message: err.Error(),
	}
}

func contentTypeError(sub Submission) error {
	return &FieldError{
		Field:   "content",
		Err:     ErrInvalidContentType,
		Message: fmt.Sprintf("%T is not valid content for format %q", sub.Content, sub.Format),
	}
}
