package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// segment is a run of text or a single embed inside one line.
type segment struct {
	text  string
	embed delta.Embed
	attrs delta.Attributes
}

// line is everything up to and including one newline; attrs are the line format.
type line struct {
	segments []segment
	attrs    delta.Attributes
}

var blockAttributeNames = map[string]bool{
	delta.AttrHeader:     true,
	delta.AttrList:       true,
	delta.AttrIndent:     true,
	delta.AttrCodeBlock:  true,
	delta.AttrBlockquote: true,
	"align":              true,
	"direction":          true,
}

// splitLines applies Quill line semantics: each "\n" closes a line and the
// newline's attributes format that line. A text insert closed directly by a
// code-block newline is code in full, including its embedded newlines.
func (s *state) splitLines(ops []delta.Op) ([]line, error) {
	var (
		lines   []line
		current []segment
		// lines closed by newlines inside the most recent text insert
		pending []line
	)

	for index, op := range ops {
		if op.Kind != delta.KindInsert {
			return nil, fmt.Errorf("%w: %s at op %d", ErrUnsupportedOp, op.Kind, index)
		}

		if op.Embed != nil {
			lines = append(lines, pending...)
			pending = nil
			current = append(current, segment{embed: op.Embed, attrs: op.Attrs})
			continue
		}

		if op.Text == "\n" {
			closed := line{segments: current, attrs: op.Attrs}
			if closed.attrs.Has(delta.AttrCodeBlock) {
				for i := range pending {
					pending[i].attrs = closed.attrs
				}
			}
			lines = append(lines, pending...)
			lines = append(lines, closed)
			pending, current = nil, nil
			continue
		}

		lines = append(lines, pending...)
		pending = nil

		parts := strings.Split(op.Text, "\n")
		for i, part := range parts {
			if part != "" {
				current = append(current, segment{text: part, attrs: inlineAttributes(op.Attrs)})
			}
			if i < len(parts)-1 {
				pending = append(pending, line{segments: current, attrs: blockAttributes(op.Attrs)})
				current = nil
			}
		}
	}

	lines = append(lines, pending...)
	if len(current) > 0 {
		lines = append(lines, line{segments: current})
	}

	return lines, nil
}

func blockAttributes(attrs delta.Attributes) delta.Attributes {
	var out delta.Attributes
	for name, value := range attrs {
		if !blockAttributeNames[name] {
			continue
		}
		if out == nil {
			out = make(delta.Attributes)
		}
		out[name] = value
	}
	return out
}

func inlineAttributes(attrs delta.Attributes) delta.Attributes {
	var out delta.Attributes
	for name, value := range attrs {
		if blockAttributeNames[name] {
			continue
		}
		if out == nil {
			out = make(delta.Attributes)
		}
		out[name] = value
	}
	return out
}

// lineText concatenates the text of a line, ignoring formatting and embeds.
func lineText(ln line) string {
	var sb strings.Builder
	for _, seg := range ln.segments {
		sb.WriteString(seg.text)
	}
	return sb.String()
}
