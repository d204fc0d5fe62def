package render

import (
	"fmt"
	"strings"

	"github.com/rgonek/delta-md-converter/converter"
)

// SanitizePolicy selects the bluemonday policy applied to rendered HTML.
type SanitizePolicy string

const (
	// SanitizeUGC keeps common formatting, links and images.
	SanitizeUGC SanitizePolicy = "ugc"
	// SanitizeStrict removes every tag and leaves escaped text.
	SanitizeStrict SanitizePolicy = "strict"
)

// Config configures Delta -> HTML rendering.
type Config struct {
	Sanitize   SanitizePolicy   `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Extensions []string         `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	HardWraps  bool             `json:"hardWraps,omitempty" yaml:"hardWraps,omitempty"`
	Markdown   converter.Config `json:"markdown" yaml:"markdown"`
}

func (c Config) applyDefaults() Config {
	if c.Sanitize == "" {
		c.Sanitize = SanitizeUGC
	}
	if c.Extensions == nil {
		c.Extensions = []string{"strikethrough"}
	}
	return c
}

// Validate checks that config values are valid. The embedded Markdown config is
// validated by the converter itself.
func (c Config) Validate() error {
	if c.Sanitize != SanitizeUGC && c.Sanitize != SanitizeStrict {
		return fmt.Errorf("invalid sanitize policy %q", c.Sanitize)
	}

	for _, name := range c.Extensions {
		if _, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]; !ok {
			return fmt.Errorf("unknown markdown extension %q", name)
		}
	}

	return nil
}
