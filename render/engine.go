package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

// newEngine builds the goldmark instance. Raw HTML is passed through because the
// converter emits inline HTML for some styles; the sanitizer runs afterwards.
func newEngine(cfg Config) goldmark.Markdown {
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(cfg.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

func newPolicy(policy SanitizePolicy) *bluemonday.Policy {
	if policy == SanitizeStrict {
		return bluemonday.StrictPolicy()
	}

	p := bluemonday.UGCPolicy()
	// Quill alignment and colors survive as inline HTML.
	p.AllowAttrs("align").Matching(bluemonday.Paragraph).OnElements("div", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowStyles("color", "background-color").OnElements("span")
	return p
}
