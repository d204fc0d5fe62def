package converter

import (
	"fmt"
	"strings"
)

// UnderlineStyle controls how the underline attribute is rendered.
type UnderlineStyle string

const (
	UnderlineIgnore UnderlineStyle = "ignore"
	UnderlineBold   UnderlineStyle = "bold"
	UnderlineHTML   UnderlineStyle = "html"
)

// SubSupStyle controls how the script (sub/super) attribute is rendered.
type SubSupStyle string

const (
	SubSupIgnore SubSupStyle = "ignore"
	SubSupHTML   SubSupStyle = "html"
	SubSupLaTeX  SubSupStyle = "latex"
)

// ColorStyle controls how color and background attributes are rendered.
type ColorStyle string

const (
	ColorIgnore ColorStyle = "ignore"
	ColorHTML   ColorStyle = "html"
)

// AlignmentStyle controls how the align line attribute is rendered.
type AlignmentStyle string

const (
	AlignIgnore AlignmentStyle = "ignore"
	AlignHTML   AlignmentStyle = "html"
)

// BulletStyle selects the bullet list marker.
type BulletStyle string

const (
	BulletDash BulletStyle = "-"
	BulletStar BulletStyle = "*"
)

// UnknownPolicy controls behavior for unrecognized Delta attributes and embeds.
type UnknownPolicy string

const (
	UnknownError       UnknownPolicy = "error"
	UnknownSkip        UnknownPolicy = "skip"
	UnknownPlaceholder UnknownPolicy = "placeholder"
)

// Config holds all Delta to Markdown options.
type Config struct {
	UnderlineStyle       UnderlineStyle    `json:"underlineStyle,omitempty" yaml:"underlineStyle,omitempty"`
	SubSupStyle          SubSupStyle       `json:"subSupStyle,omitempty" yaml:"subSupStyle,omitempty"`
	TextColorStyle       ColorStyle        `json:"textColorStyle,omitempty" yaml:"textColorStyle,omitempty"`
	BackgroundColorStyle ColorStyle        `json:"backgroundColorStyle,omitempty" yaml:"backgroundColorStyle,omitempty"`
	AlignmentStyle       AlignmentStyle    `json:"alignmentStyle,omitempty" yaml:"alignmentStyle,omitempty"`
	BulletStyle          BulletStyle       `json:"bulletStyle,omitempty" yaml:"bulletStyle,omitempty"`
	HeadingOffset        int               `json:"headingOffset,omitempty" yaml:"headingOffset,omitempty"`
	IndentWidth          int               `json:"indentWidth,omitempty" yaml:"indentWidth,omitempty"`
	LanguageMap          map[string]string `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	UnknownAttributes    UnknownPolicy     `json:"unknownAttributes,omitempty" yaml:"unknownAttributes,omitempty"`
	UnknownEmbeds        UnknownPolicy     `json:"unknownEmbeds,omitempty" yaml:"unknownEmbeds,omitempty"`
	ResolutionMode       ResolutionMode    `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook             LinkRenderHook    `json:"-" yaml:"-"`
	ImageHook            ImageRenderHook   `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.UnderlineStyle == "" {
		c.UnderlineStyle = UnderlineIgnore
	}
	if c.SubSupStyle == "" {
		c.SubSupStyle = SubSupHTML
	}
	if c.TextColorStyle == "" {
		c.TextColorStyle = ColorIgnore
	}
	if c.BackgroundColorStyle == "" {
		c.BackgroundColorStyle = ColorIgnore
	}
	if c.AlignmentStyle == "" {
		c.AlignmentStyle = AlignIgnore
	}
	if c.BulletStyle == "" {
		c.BulletStyle = BulletDash
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = 2
	}
	if c.UnknownAttributes == "" {
		c.UnknownAttributes = UnknownSkip
	}
	if c.UnknownEmbeds == "" {
		c.UnknownEmbeds = UnknownPlaceholder
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}

	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.UnderlineStyle != UnderlineIgnore &&
		c.UnderlineStyle != UnderlineBold &&
		c.UnderlineStyle != UnderlineHTML {
		return fmt.Errorf("invalid underlineStyle %q", c.UnderlineStyle)
	}

	if c.SubSupStyle != SubSupIgnore &&
		c.SubSupStyle != SubSupHTML &&
		c.SubSupStyle != SubSupLaTeX {
		return fmt.Errorf("invalid subSupStyle %q", c.SubSupStyle)
	}

	if c.TextColorStyle != ColorIgnore && c.TextColorStyle != ColorHTML {
		return fmt.Errorf("invalid textColorStyle %q", c.TextColorStyle)
	}

	if c.BackgroundColorStyle != ColorIgnore && c.BackgroundColorStyle != ColorHTML {
		return fmt.Errorf("invalid backgroundColorStyle %q", c.BackgroundColorStyle)
	}

	if c.AlignmentStyle != AlignIgnore && c.AlignmentStyle != AlignHTML {
		return fmt.Errorf("invalid alignmentStyle %q", c.AlignmentStyle)
	}

	if c.BulletStyle != BulletDash && c.BulletStyle != BulletStar {
		return fmt.Errorf("invalid bulletStyle %q", c.BulletStyle)
	}

	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}

	if c.IndentWidth < 1 || c.IndentWidth > 8 {
		return fmt.Errorf("indentWidth must be between 1 and 8, got %d", c.IndentWidth)
	}

	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}

	if c.UnknownAttributes != UnknownError && c.UnknownAttributes != UnknownSkip {
		return fmt.Errorf("invalid unknownAttributes %q", c.UnknownAttributes)
	}

	if c.UnknownEmbeds != UnknownError &&
		c.UnknownEmbeds != UnknownSkip &&
		c.UnknownEmbeds != UnknownPlaceholder {
		return fmt.Errorf("invalid unknownEmbeds %q", c.UnknownEmbeds)
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
