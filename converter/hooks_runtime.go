package converter

import (
	"errors"
	"fmt"
	"strings"
)

func (s *state) applyLinkRenderHook(input LinkRenderInput) (LinkRenderOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return LinkRenderOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkRenderOutput{}, false, fmt.Errorf("unresolved link reference %q: %w", input.Href, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				"link",
				fmt.Sprintf("unresolved link reference %q; using fallback rendering", input.Href),
			)
			return LinkRenderOutput{}, false, nil
		}
		return LinkRenderOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkRenderOutput{}, false, nil
	}

	if !output.TextOnly && strings.TrimSpace(output.Href) == "" {
		return LinkRenderOutput{}, false, errors.New("invalid link hook output: handled link render output requires non-empty href unless textOnly is true")
	}
	output.Href = strings.TrimSpace(output.Href)

	return output, true, nil
}

func (s *state) applyImageRenderHook(input ImageRenderInput) (ImageRenderOutput, bool, error) {
	if s.config.ImageHook == nil {
		return ImageRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return ImageRenderOutput{}, false, err
	}

	output, err := s.config.ImageHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return ImageRenderOutput{}, false, fmt.Errorf("unresolved image reference %q: %w", input.Src, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				"image",
				fmt.Sprintf("unresolved image reference %q; using fallback rendering", input.Src),
			)
			return ImageRenderOutput{}, false, nil
		}
		return ImageRenderOutput{}, false, fmt.Errorf("image hook failed: %w", err)
	}

	if !output.Handled {
		return ImageRenderOutput{}, false, nil
	}

	if strings.TrimSpace(output.Markdown) == "" {
		return ImageRenderOutput{}, false, errors.New("invalid image hook output: handled image render output requires non-empty markdown")
	}

	return output, true, nil
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion canceled: %w", err)
	}
	return nil
}
