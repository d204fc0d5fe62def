package mdconverter

import (
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// runAttributes maps an inline run to its Delta attributes; plain text has none.
func runAttributes(run Run) delta.Attributes {
	switch run.Kind {
	case RunBold:
		return delta.Attributes{delta.AttrBold: true}
	case RunItalic:
		return delta.Attributes{delta.AttrItalic: true}
	case RunCode:
		return delta.Attributes{delta.AttrCode: true}
	case RunLink:
		if href := strings.TrimSpace(run.Href); href != "" {
			return delta.Attributes{delta.AttrLink: href}
		}
	}
	return nil
}

// blockAttributes maps a block to the attributes of its terminating newline.
func blockAttributes(block Block) delta.Attributes {
	switch block.Kind {
	case BlockHeading:
		return delta.Attributes{delta.AttrHeader: min(max(block.Level, 1), 6)}
	case BlockListItem:
		attrs := delta.Attributes{delta.AttrList: delta.ListBullet}
		if block.Ordered {
			attrs[delta.AttrList] = delta.ListOrdered
		}
		if block.Indent > 0 {
			attrs[delta.AttrIndent] = min(block.Indent, maxQuillIndent)
		}
		return attrs
	case BlockCodeBlock:
		return delta.Attributes{delta.AttrCodeBlock: true}
	case BlockBlockquote:
		return delta.Attributes{delta.AttrBlockquote: true}
	default:
		return nil
	}
}
