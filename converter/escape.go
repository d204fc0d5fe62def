package converter

import (
	"regexp"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

var (
	inlineEscaper = strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
	)
	orderedMarkerRe = regexp.MustCompile(`^\d{1,9}\.([ \t]|$)`)
)

// literalText reports whether text with these attributes is emitted without a
// Markdown delimiter around it. Delimited content is read back verbatim, so only
// literal text is escaped.
func (s *state) literalText(attrs delta.Attributes) bool {
	switch {
	case attrs.Bool(delta.AttrCode), attrs.Bool(delta.AttrBold), attrs.Bool(delta.AttrItalic):
		return false
	case strings.TrimSpace(attrs.String(delta.AttrLink, "")) != "":
		return false
	case attrs.Bool("underline") && s.config.UnderlineStyle == UnderlineBold:
		return false
	}
	return true
}

// escapeLineStart keeps text at the start of a line from opening a heading,
// quote, list item or thematic break.
func escapeLineStart(content string) string {
	body := strings.TrimLeft(content, " \t")
	if body == "" {
		return content
	}
	lead := content[:len(content)-len(body)]

	switch body[0] {
	case '#', '>':
		return lead + `\` + body
	case '-':
		if len(body) == 1 || strings.ContainsRune(" \t-", rune(body[1])) {
			return lead + `\` + body
		}
	}

	if orderedMarkerRe.MatchString(body) {
		dot := strings.IndexByte(body, '.')
		return lead + body[:dot] + `\` + body[dot:]
	}
	return content
}

// escapeHeadingTail keeps a trailing run of '#' from being read as the closing
// sequence of an ATX heading.
func escapeHeadingTail(content string) string {
	trimmed := strings.TrimRight(content, " \t")
	if !strings.HasSuffix(trimmed, "#") {
		return content
	}
	start := len(strings.TrimRight(trimmed, "#"))
	return content[:start] + `\` + content[start:]
}
