package content

import (
	"strings"
	"unicode/utf8"

	"github.com/rgonek/delta-md-converter/delta"
)

// Summary returns a single-line plain-text preview of stored content, cut to at
// most limit runes with a trailing ellipsis. A limit of zero or less disables cutting.
func Summary(stored string, limit int) string {
	text := strings.Join(strings.Fields(delta.ExtractPlain(stored)), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
