package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rgonek/delta-md-converter/converter"
	"github.com/rgonek/delta-md-converter/delta"
	"github.com/yuin/goldmark"
)

// Renderer turns Delta documents into sanitized HTML for previews. It is safe for
// concurrent use.
type Renderer struct {
	markdown *converter.Converter
	engine   goldmark.Markdown
	policy   *bluemonday.Policy
}

// Result holds the output of a render.
type Result struct {
	HTML     string              `json:"html"`
	Markdown string              `json:"markdown"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
}

// New creates a Renderer with the given config.
func New(config Config) (*Renderer, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	md, err := converter.New(cfg.Markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown config: %w", err)
	}

	return &Renderer{
		markdown: md,
		engine:   newEngine(cfg),
		policy:   newPolicy(cfg.Sanitize),
	}, nil
}

// Render converts a Delta JSON payload to sanitized HTML.
func (r *Renderer) Render(input []byte) (Result, error) {
	doc, err := delta.Decode(input)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse Delta JSON: %w", err)
	}
	return r.RenderDocument(context.Background(), doc)
}

// RenderDocument converts a decoded document; ctx is passed to converter hooks.
func (r *Renderer) RenderDocument(ctx context.Context, doc delta.Document) (Result, error) {
	md, err := r.markdown.ConvertDocumentWithContext(ctx, doc)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(md.Markdown), &buf); err != nil {
		return Result{}, fmt.Errorf("markdown render: %w", err)
	}

	return Result{
		HTML:     r.policy.Sanitize(buf.String()),
		Markdown: md.Markdown,
		Warnings: md.Warnings,
	}, nil
}
