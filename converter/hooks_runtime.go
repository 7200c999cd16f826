package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/contentdesk/document"
)

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
				return ImageRenderOutput{}, false, fmt.Errorf("unresolved media reference %q: %w", input.Src, err)
			}
			s.addWarning(
				document.WarningUnresolvedReference,
				document.TypeImage,
				fmt.Sprintf("unresolved media reference %q; using fallback rendering", input.Src),
			)
			return ImageRenderOutput{}, false, nil
		}
		return ImageRenderOutput{}, false, fmt.Errorf("image hook failed: %w", err)
	}

	if !output.Handled {
		return ImageRenderOutput{}, false, nil
	}

	if strings.TrimSpace(output.Src) == "" {
		return ImageRenderOutput{}, false, fmt.Errorf("invalid image hook output: %w",
			errors.New("handled image render output requires non-empty src"))
	}
	output.Src = strings.TrimSpace(output.Src)

	return output, true, nil
}
