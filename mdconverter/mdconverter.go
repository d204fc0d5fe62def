package mdconverter

import (
	"fmt"

	"github.com/rgonek/delta-md-converter/delta"
)

// Converter converts Markdown to Quill Delta JSON.
type Converter struct {
	config Config
}

// New creates a new Markdown Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
	}, nil
}

// Convert takes a Markdown document and returns canonical Delta JSON. Markdown
// never fails to parse; an error means the document could not be encoded.
func (c *Converter) Convert(markdown string) (Result, error) {
	p := newParser(c.config, markdown)
	doc := BuildDocument(p.parse())

	data, err := delta.Encode(doc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode Delta JSON: %w", err)
	}

	return Result{
		Delta:    string(data),
		Document: doc,
		Warnings: p.warnings,
	}, nil
}

// Parse converts Markdown into blocks with this converter's config.
func (c *Converter) Parse(markdown string) []Block {
	return newParser(c.config, markdown).parse()
}
