package mdconverter

import (
	"fmt"

	"github.com/rgonek/delta-md-converter/converter"
)

// listIndent converts the leading whitespace of a list item into an indent level.
// Spaces count one column each and a tab counts as a full level.
func (p *parser) listIndent(lead string, index int) int {
	width := 0
	for _, r := range lead {
		if r == '\t' {
			width += p.config.IndentWidth
			continue
		}
		width++
	}

	indent := width / p.config.IndentWidth
	if indent > p.config.MaxIndent {
		p.addWarning(converter.WarningClampedValue, "indent",
			fmt.Sprintf("list indent %d on line %d clamped to %d", indent, index+1, p.config.MaxIndent))
		indent = p.config.MaxIndent
	}
	return indent
}
