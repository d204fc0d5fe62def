package converter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/delta-md-converter/delta"
)

// ErrUnsupportedOp is returned when a document contains retain or delete ops.
// Only a fully composed document (inserts only) can be rendered.
var ErrUnsupportedOp = errors.New("unsupported operation")

// Converter converts Quill Delta documents to Markdown.
type Converter struct {
	config Config
}

type state struct {
	ctx      context.Context
	config   Config
	warnings []Warning
	reported map[string]bool
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
	}, nil
}

// Convert takes a Delta JSON payload and returns Markdown.
func (c *Converter) Convert(input []byte) (Result, error) {
	return c.ConvertWithContext(context.Background(), input)
}

// ConvertWithContext is Convert with a context that is passed to render hooks.
func (c *Converter) ConvertWithContext(ctx context.Context, input []byte) (Result, error) {
	doc, err := delta.Decode(input)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse Delta JSON: %w", err)
	}

	return c.ConvertDocumentWithContext(ctx, doc)
}

// ConvertDocument converts an already decoded document.
func (c *Converter) ConvertDocument(doc delta.Document) (Result, error) {
	return c.ConvertDocumentWithContext(context.Background(), doc)
}

// ConvertDocumentWithContext converts an already decoded document, passing ctx to
// render hooks.
func (c *Converter) ConvertDocumentWithContext(ctx context.Context, doc delta.Document) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:      ctx,
		config:   c.config,
		reported: make(map[string]bool),
	}

	lines, err := s.splitLines(doc.Ops)
	if err != nil {
		return Result{}, err
	}

	markdown, err := s.renderLines(lines)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Markdown: markdown,
		Warnings: s.warnings,
	}, nil
}

func (s *state) renderLines(lines []line) (string, error) {
	for _, ln := range lines {
		if err := s.checkBlockAttributes(ln.attrs); err != nil {
			return "", err
		}
	}

	var chunks []string
	for index := 0; index < len(lines); {
		attrs := lines[index].attrs

		var (
			chunk string
			end   = index + 1
			err   error
		)
		switch {
		case attrs.Has(delta.AttrCodeBlock):
			end = runEnd(lines, index, func(next line) bool {
				return next.attrs.Has(delta.AttrCodeBlock) && codeLanguage(next.attrs) == codeLanguage(attrs)
			})
			chunk = s.renderCodeBlock(lines[index:end])
		case attrs.Has(delta.AttrList):
			end = runEnd(lines, index, func(next line) bool {
				return next.attrs.Has(delta.AttrList)
			})
			chunk, err = s.renderList(lines[index:end])
		case attrs.Bool(delta.AttrBlockquote):
			end = runEnd(lines, index, func(next line) bool {
				return next.attrs.Bool(delta.AttrBlockquote)
			})
			chunk, err = s.renderBlockquote(lines[index:end])
		case attrs.Has(delta.AttrHeader):
			chunk, err = s.renderHeading(lines[index])
		default:
			chunk, err = s.renderParagraph(lines[index])
		}
		if err != nil {
			return "", err
		}
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		index = end
	}

	if len(chunks) == 0 {
		return "", nil
	}
	return strings.Join(chunks, "\n\n") + "\n", nil
}

// runEnd returns the index after the last consecutive line starting at start that
// satisfies same.
func runEnd(lines []line, start int, same func(line) bool) int {
	end := start + 1
	for end < len(lines) && same(lines[end]) {
		end++
	}
	return end
}

func (s *state) addWarning(warnType WarningType, element, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Element: element,
		Message: message,
	})
}

// addWarningOnce reports a warning the first time a given element is seen.
func (s *state) addWarningOnce(warnType WarningType, element, message string) {
	key := string(warnType) + ":" + element
	if s.reported[key] {
		return
	}
	s.reported[key] = true
	s.addWarning(warnType, element, message)
}
