package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link or image reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link or image reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort continues conversion and falls back to built-in behavior.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// LinkRenderHook can rewrite link output during Delta -> Markdown conversion.
type LinkRenderHook func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error)

// ImageRenderHook can override image embed output during Delta -> Markdown conversion.
type ImageRenderHook func(ctx context.Context, in ImageRenderInput) (ImageRenderOutput, error)

// LinkRenderInput describes a link being rendered.
type LinkRenderInput struct {
	Href  string
	Text  string
	Attrs map[string]any
}

// LinkRenderOutput contains hook-provided link rendering data.
type LinkRenderOutput struct {
	Href     string
	TextOnly bool
	Handled  bool
}

// ImageRenderInput describes an image embed being rendered.
type ImageRenderInput struct {
	Src   string
	Alt   string
	Attrs map[string]any
}

// ImageRenderOutput contains hook-provided markdown for an image.
type ImageRenderOutput struct {
	Markdown string
	Handled  bool
}
