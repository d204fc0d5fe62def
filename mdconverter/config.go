package mdconverter

import "fmt"

// Quill renders at most eight indent levels.
const maxQuillIndent = 8

// Config configures Markdown to Delta conversion behavior.
type Config struct {
	// IndentWidth is the number of leading spaces that make one list indent level.
	// A tab always counts as one full level.
	IndentWidth int `json:"indentWidth,omitempty" yaml:"indentWidth,omitempty"`
	// MaxIndent caps list nesting; deeper items are clamped with a warning.
	MaxIndent int `json:"maxIndent,omitempty" yaml:"maxIndent,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.IndentWidth == 0 {
		c.IndentWidth = 2
	}
	if c.MaxIndent == 0 {
		c.MaxIndent = maxQuillIndent
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.IndentWidth < 1 || c.IndentWidth > 8 {
		return fmt.Errorf("indentWidth must be between 1 and 8, got %d", c.IndentWidth)
	}
	if c.MaxIndent < 1 || c.MaxIndent > maxQuillIndent {
		return fmt.Errorf("maxIndent must be between 1 and %d, got %d", maxQuillIndent, c.MaxIndent)
	}
	return nil
}
