package converter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// checkBlockAttributes applies the unknown-attribute policy to line formats.
func (s *state) checkBlockAttributes(attrs delta.Attributes) error {
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		if !blockAttributeNames[name] {
			if err := s.unknownAttribute(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderParagraph converts a plain line; blank lines produce nothing.
func (s *state) renderParagraph(ln line) (string, error) {
	content, err := s.renderInline(ln.segments)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	content = escapeLineStart(content)

	if alignment := s.getLineAlignment(ln); alignment != "" {
		return fmt.Sprintf(`<div align="%s">%s</div>`, alignment, content), nil
	}

	return content, nil
}

// renderHeading converts a header line to an ATX heading.
func (s *state) renderHeading(ln line) (string, error) {
	// Extract level from attributes (default to 1 if missing/invalid).
	level := ln.attrs.Int(delta.AttrHeader, 1)
	level += s.config.HeadingOffset

	// Clamp level to valid range (1-6)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	content, err := s.renderInline(ln.segments)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		s.addWarning(WarningDroppedFeature, delta.AttrHeader, "empty heading dropped")
		return "", nil
	}
	content = escapeHeadingTail(content)

	if alignment := s.getLineAlignment(ln); alignment != "" {
		return fmt.Sprintf(`<h%d align="%s">%s</h%d>`, level, alignment, content, level), nil
	}

	return strings.Repeat("#", level) + " " + content, nil
}

// renderBlockquote converts consecutive blockquote lines.
func (s *state) renderBlockquote(lines []line) (string, error) {
	quoted := make([]string, 0, len(lines))
	for _, ln := range lines {
		content, err := s.renderInline(ln.segments)
		if err != nil {
			return "", err
		}
		if content == "" {
			quoted = append(quoted, ">")
			continue
		}
		quoted = append(quoted, "> "+escapeLineStart(content))
	}
	return strings.Join(quoted, "\n"), nil
}

// renderCodeBlock converts consecutive code-block lines into one fenced block.
// Inline formatting and embeds inside code are dropped.
func (s *state) renderCodeBlock(lines []line) string {
	body := make([]string, 0, len(lines))
	for _, ln := range lines {
		body = append(body, lineText(ln))
	}
	content := strings.Join(body, "\n")

	language := codeLanguage(lines[0].attrs)
	if mapped, ok := s.config.LanguageMap[language]; ok {
		language = mapped
	}

	fence := strings.Repeat("`", max(3, longestBacktickRun(content)+1))

	var result strings.Builder
	result.WriteString(fence)
	result.WriteString(language)
	result.WriteString("\n")
	if content != "" {
		result.WriteString(content)
		result.WriteString("\n")
	}
	result.WriteString(fence)

	return result.String()
}

// codeLanguage reads the language of a code-block line. Quill stores either true
// or a language name; "plain" means no language.
func codeLanguage(attrs delta.Attributes) string {
	language := strings.TrimSpace(attrs.String(delta.AttrCodeBlock, ""))
	if language == "plain" {
		return ""
	}
	return language
}

func longestBacktickRun(content string) int {
	longest, current := 0, 0
	for _, r := range content {
		if r == '`' {
			current++
			longest = max(longest, current)
			continue
		}
		current = 0
	}
	return longest
}

func (s *state) getLineAlignment(ln line) string {
	if s.config.AlignmentStyle != AlignHTML {
		return ""
	}

	switch alignment := ln.attrs.String("align", ""); alignment {
	case "left", "center", "right", "justify":
		return alignment
	default:
		return ""
	}
}
