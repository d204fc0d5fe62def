package converter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// renderEmbed converts an embed insert. Images become Markdown images, videos
// become links; everything else follows the UnknownEmbeds policy.
func (s *state) renderEmbed(seg segment) (string, error) {
	if src, ok := seg.embed["image"].(string); ok && strings.TrimSpace(src) != "" {
		src = strings.TrimSpace(src)
		alt := seg.attrs.String("alt", "")

		output, handled, err := s.applyImageRenderHook(ImageRenderInput{
			Src:   src,
			Alt:   alt,
			Attrs: seg.attrs.Clone(),
		})
		if err != nil {
			return "", err
		}
		if handled {
			return output.Markdown, nil
		}

		out := "![" + alt + "](" + src + ")"
		if href := strings.TrimSpace(seg.attrs.String(delta.AttrLink, "")); href != "" {
			out = "[" + out + "](" + href + ")"
		}
		return out, nil
	}

	if src, ok := seg.embed["video"].(string); ok && strings.TrimSpace(src) != "" {
		src = strings.TrimSpace(src)
		return fmt.Sprintf("[%s](%s)", src, src), nil
	}

	kind := embedKind(seg.embed)
	switch s.config.UnknownEmbeds {
	case UnknownError:
		return "", fmt.Errorf("unknown embed: %s", kind)
	case UnknownPlaceholder:
		s.addWarning(WarningUnknownEmbed, kind, fmt.Sprintf("unknown embed replaced by placeholder: %s", kind))
		return fmt.Sprintf("[Unknown embed: %s]", kind), nil
	default:
		s.addWarning(WarningUnknownEmbed, kind, fmt.Sprintf("unknown embed skipped: %s", kind))
		return "", nil
	}
}

// embedKind names an embed by its first key; Quill embeds carry exactly one.
func embedKind(embed delta.Embed) string {
	keys := slices.Sorted(maps.Keys(embed))
	if len(keys) == 0 {
		return "unknown"
	}
	return keys[0]
}
