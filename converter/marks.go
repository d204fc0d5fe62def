package converter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/rgonek/delta-md-converter/delta"
)

var inlineAttributeNames = map[string]bool{
	delta.AttrBold:   true,
	delta.AttrItalic: true,
	delta.AttrCode:   true,
	delta.AttrStrike: true,
	delta.AttrLink:   true,
	"underline":      true,
	"script":         true,
	"color":          true,
	"background":     true,
}

// renderInline converts the segments of one line, merging adjacent text segments
// that share the same formatting so delimiters are not reopened needlessly.
func (s *state) renderInline(segments []segment) (string, error) {
	var sb strings.Builder
	for _, seg := range mergeSegments(segments) {
		var (
			out string
			err error
		)
		if seg.embed != nil {
			out, err = s.renderEmbed(seg)
		} else {
			out, err = s.renderText(seg.text, seg.attrs)
		}
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func mergeSegments(segments []segment) []segment {
	merged := make([]segment, 0, len(segments))
	for _, seg := range segments {
		if n := len(merged); n > 0 && seg.embed == nil && merged[n-1].embed == nil && merged[n-1].attrs.Equal(seg.attrs) {
			merged[n-1].text += seg.text
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// renderText wraps text in the delimiters of its attributes. Surrounding
// whitespace stays outside the delimiters, Markdown does not allow it inside.
func (s *state) renderText(text string, attrs delta.Attributes) (string, error) {
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		if !inlineAttributeNames[name] {
			if err := s.unknownAttribute(name); err != nil {
				return "", err
			}
		}
	}

	trimmedLeft := strings.TrimLeftFunc(text, unicode.IsSpace)
	core := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	if core == "" {
		return text, nil
	}
	lead := text[:len(text)-len(trimmedLeft)]
	trail := trimmedLeft[len(core):]
	if s.literalText(attrs) {
		core = inlineEscaper.Replace(core)
	}

	// Innermost first: code, then script, strike, underline, italic, bold,
	// colors, and the link outermost.
	if attrs.Bool(delta.AttrCode) {
		core = "`" + core + "`"
	}
	core = s.wrapScript(core, attrs.String("script", ""))
	if attrs.Bool(delta.AttrStrike) {
		core = "~~" + core + "~~"
	}
	if attrs.Bool("underline") {
		switch s.config.UnderlineStyle {
		case UnderlineHTML:
			core = "<u>" + core + "</u>"
		case UnderlineBold:
			if !attrs.Bool(delta.AttrBold) {
				core = "**" + core + "**"
			}
		}
	}
	if attrs.Bool(delta.AttrItalic) {
		core = "*" + core + "*"
	}
	if attrs.Bool(delta.AttrBold) {
		core = "**" + core + "**"
	}
	if color := attrs.String("color", ""); color != "" && s.config.TextColorStyle == ColorHTML {
		core = `<span style="color: ` + color + `">` + core + "</span>"
	}
	if color := attrs.String("background", ""); color != "" && s.config.BackgroundColorStyle == ColorHTML {
		core = `<span style="background-color: ` + color + `">` + core + "</span>"
	}
	if href := strings.TrimSpace(attrs.String(delta.AttrLink, "")); href != "" {
		output, handled, err := s.applyLinkRenderHook(LinkRenderInput{
			Href:  href,
			Text:  strings.TrimSpace(text),
			Attrs: attrs.Clone(),
		})
		if err != nil {
			return "", err
		}
		switch {
		case handled && output.TextOnly:
		case handled:
			core = "[" + core + "](" + output.Href + ")"
		default:
			core = "[" + core + "](" + href + ")"
		}
	}

	return lead + core + trail, nil
}

func (s *state) wrapScript(core, script string) string {
	switch script {
	case "sub":
		switch s.config.SubSupStyle {
		case SubSupHTML:
			return "<sub>" + core + "</sub>"
		case SubSupLaTeX:
			return "$_{" + core + "}$"
		}
	case "super":
		switch s.config.SubSupStyle {
		case SubSupHTML:
			return "<sup>" + core + "</sup>"
		case SubSupLaTeX:
			return "$^{" + core + "}$"
		}
	}
	return core
}

func (s *state) unknownAttribute(name string) error {
	if s.config.UnknownAttributes == UnknownError {
		return fmt.Errorf("unknown attribute: %s", name)
	}
	s.addWarningOnce(WarningUnknownAttribute, name, fmt.Sprintf("unknown attribute skipped: %s", name))
	return nil
}
