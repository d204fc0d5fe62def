package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgonek/delta-md-converter/converter"
	"github.com/rgonek/delta-md-converter/mdconverter"
	"github.com/rgonek/delta-md-converter/render"
	"gopkg.in/yaml.v3"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetReadable = "readable"
	presetLossy    = "lossy"
)

// fileConfig is the layout of the optional YAML config file.
type fileConfig struct {
	Markdown converter.Config   `yaml:"markdown"`
	Delta    mdconverter.Config `yaml:"delta"`
	HTML     htmlConfig         `yaml:"html"`
	Log      logConfig          `yaml:"log"`
}

// htmlConfig mirrors render.Config; the Markdown step uses the markdown section.
type htmlConfig struct {
	Sanitize   render.SanitizePolicy `yaml:"sanitize,omitempty"`
	Extensions []string              `yaml:"extensions,omitempty"`
	HardWraps  bool                  `yaml:"hardWraps,omitempty"`
}

type logConfig struct {
	Level string `yaml:"level,omitempty"`
}

func (c fileConfig) renderConfig() render.Config {
	return render.Config{
		Sanitize:   c.HTML.Sanitize,
		Extensions: c.HTML.Extensions,
		HardWraps:  c.HTML.HardWraps,
		Markdown:   c.Markdown,
	}
}

func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return converter.Config{}, nil
	case presetStrict:
		return converter.Config{
			UnknownAttributes: converter.UnknownError,
			UnknownEmbeds:     converter.UnknownError,
			ResolutionMode:    converter.ResolutionStrict,
		}, nil
	case presetReadable:
		return converter.Config{
			UnderlineStyle:       converter.UnderlineBold,
			SubSupStyle:          converter.SubSupIgnore,
			TextColorStyle:       converter.ColorIgnore,
			BackgroundColorStyle: converter.ColorIgnore,
			AlignmentStyle:       converter.AlignIgnore,
			UnknownEmbeds:        converter.UnknownPlaceholder,
		}, nil
	case presetLossy:
		return converter.Config{
			UnderlineStyle:       converter.UnderlineIgnore,
			SubSupStyle:          converter.SubSupIgnore,
			TextColorStyle:       converter.ColorIgnore,
			BackgroundColorStyle: converter.ColorIgnore,
			AlignmentStyle:       converter.AlignIgnore,
			UnknownAttributes:    converter.UnknownSkip,
			UnknownEmbeds:        converter.UnknownSkip,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, readable, lossy)", preset)
	}
}

// resolveConfig layers the preset, the config file and the flag overrides, in
// that order.
func resolveConfig(preset, path string, allowHTML, strict bool) (fileConfig, error) {
	md, err := presetConfig(preset)
	if err != nil {
		return fileConfig{}, err
	}
	cfg := fileConfig{Markdown: md}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fileConfig{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if allowHTML {
		cfg.Markdown.UnderlineStyle = converter.UnderlineHTML
		cfg.Markdown.SubSupStyle = converter.SubSupHTML
		cfg.Markdown.TextColorStyle = converter.ColorHTML
		cfg.Markdown.BackgroundColorStyle = converter.ColorHTML
		cfg.Markdown.AlignmentStyle = converter.AlignHTML
	}
	if strict {
		cfg.Markdown.UnknownAttributes = converter.UnknownError
		cfg.Markdown.UnknownEmbeds = converter.UnknownError
		cfg.Markdown.ResolutionMode = converter.ResolutionStrict
	}

	return cfg, nil
}
