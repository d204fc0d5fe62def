package mdconverter

import (
	"github.com/rgonek/delta-md-converter/converter"
	"github.com/rgonek/delta-md-converter/delta"
)

// Result holds the output of a Markdown to Delta conversion.
type Result struct {
	// Delta is the canonical {"ops":[...]} encoding of Document.
	Delta    string              `json:"delta"`
	Document delta.Document      `json:"-"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
}
