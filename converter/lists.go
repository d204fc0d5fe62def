package converter

import (
	"strconv"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// renderList converts consecutive list lines. Ordered numbering is tracked per
// indent level and restarts whenever a shallower item or a bullet interrupts it.
func (s *state) renderList(lines []line) (string, error) {
	counters := make(map[int]int)
	items := make([]string, 0, len(lines))

	for _, ln := range lines {
		indent := max(ln.attrs.Int(delta.AttrIndent, 0), 0)
		for level := range counters {
			if level > indent {
				delete(counters, level)
			}
		}

		var marker string
		switch ln.attrs.String(delta.AttrList, "") {
		case delta.ListOrdered:
			counters[indent]++
			marker = strconv.Itoa(counters[indent]) + ". "
		case "checked":
			delete(counters, indent)
			marker = string(s.config.BulletStyle) + " [x] "
		case "unchecked":
			delete(counters, indent)
			marker = string(s.config.BulletStyle) + " [ ] "
		default:
			delete(counters, indent)
			marker = string(s.config.BulletStyle) + " "
		}

		content, err := s.renderInline(ln.segments)
		if err != nil {
			return "", err
		}

		items = append(items, strings.Repeat(" ", indent*s.config.IndentWidth)+marker+escapeLineStart(content))
	}

	return strings.Join(items, "\n"), nil
}
