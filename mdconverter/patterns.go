package mdconverter

import (
	"regexp"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(.*)$`)
	headingTailRe = regexp.MustCompile(`[ \t]+#+[ \t]*$`)
	blockquoteRe  = regexp.MustCompile(`^ {0,3}>[ \t]?(.*)$`)
	fenceOpenRe   = regexp.MustCompile("^( {0,3})(`{3,})[ \\t]*([^`]*)$")
	fenceCloseRe  = regexp.MustCompile("^ {0,3}(`{3,})[ \\t]*$")
	bulletRe      = regexp.MustCompile(`^([ \t]*)[-*][ \t]+(.*)$`)
	orderedRe     = regexp.MustCompile(`^([ \t]*)\d{1,9}\.[ \t]+(.*)$`)
)

// matchHeading returns the level and content of an ATX heading line.
func matchHeading(line string) (int, string, bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	content := strings.TrimSpace(m[2])
	if strings.Trim(content, "#") == "" {
		content = ""
	} else {
		content = strings.TrimSpace(headingTailRe.ReplaceAllString(content, ""))
	}
	return len(m[1]), content, true
}

// matchFenceOpen returns the fence, its indentation and the info word.
func matchFenceOpen(line string) (fence, indent, language string, ok bool) {
	m := fenceOpenRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	if fields := strings.Fields(m[3]); len(fields) > 0 {
		language = fields[0]
	}
	return m[2], m[1], language, true
}

// isFenceClose reports whether line closes a fence opened with open.
func isFenceClose(line, open string) bool {
	m := fenceCloseRe.FindStringSubmatch(line)
	return m != nil && len(m[1]) >= len(open)
}

// matchListItem returns the leading whitespace, whether the marker is numeric,
// and the item content.
func matchListItem(line string) (lead string, ordered bool, content string, ok bool) {
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		return m[1], true, m[2], true
	}
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return m[1], false, m[2], true
	}
	return "", false, "", false
}
