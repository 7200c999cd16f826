package converter

import "fmt"

// EmptyParagraphStyle controls how paragraphs without content are rendered.
type EmptyParagraphStyle string

const (
	// EmptyParagraphBreak renders <p><br></p>, which browsers and rich-text editors display as a blank line.
	EmptyParagraphBreak EmptyParagraphStyle = "break"
	// EmptyParagraphBare renders <p></p>.
	EmptyParagraphBare EmptyParagraphStyle = "bare"
)

// DirectionStyle controls how the dir attribute of blocks is rendered.
type DirectionStyle string

const (
	DirectionKeep   DirectionStyle = "keep"
	DirectionIgnore DirectionStyle = "ignore"
)

// AlignmentStyle controls how block alignment is rendered.
type AlignmentStyle string

const (
	AlignIgnore AlignmentStyle = "ignore"
	AlignStyle  AlignmentStyle = "style"
)

// UnknownPolicy controls how unknown nodes and marks are handled.
type UnknownPolicy string

const (
	UnknownSkip        UnknownPolicy = "skip"
	UnknownPlaceholder UnknownPolicy = "placeholder"
	UnknownError       UnknownPolicy = "error"
)

// Config configures document to HTML rendering.
type Config struct {
	EmptyParagraph EmptyParagraphStyle `json:"emptyParagraph,omitempty"`
	Direction      DirectionStyle      `json:"direction,omitempty"`
	Alignment      AlignmentStyle      `json:"alignment,omitempty"`
	UnknownNodes   UnknownPolicy       `json:"unknownNodes,omitempty"`
	UnknownMarks   UnknownPolicy       `json:"unknownMarks,omitempty"`
	ResolutionMode ResolutionMode      `json:"resolutionMode,omitempty"`
	ImageHook      ImageRenderHook     `json:"-"`
}

func (c Config) applyDefaults() Config {
	if c.EmptyParagraph == "" {
		c.EmptyParagraph = EmptyParagraphBreak
	}
	if c.Direction == "" {
		c.Direction = DirectionKeep
	}
	if c.Alignment == "" {
		c.Alignment = AlignStyle
	}
	if c.UnknownNodes == "" {
		c.UnknownNodes = UnknownSkip
	}
	if c.UnknownMarks == "" {
		c.UnknownMarks = UnknownSkip
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.ImageHook = c.ImageHook
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.EmptyParagraph != EmptyParagraphBreak && c.EmptyParagraph != EmptyParagraphBare {
		return fmt.Errorf("invalid emptyParagraph %q", c.EmptyParagraph)
	}

	if c.Direction != DirectionKeep && c.Direction != DirectionIgnore {
		return fmt.Errorf("invalid direction %q", c.Direction)
	}

	if c.Alignment != AlignIgnore && c.Alignment != AlignStyle {
		return fmt.Errorf("invalid alignment %q", c.Alignment)
	}

	if c.UnknownNodes != UnknownSkip &&
		c.UnknownNodes != UnknownPlaceholder &&
		c.UnknownNodes != UnknownError {
		return fmt.Errorf("invalid unknownNodes %q", c.UnknownNodes)
	}

	if c.UnknownMarks != UnknownSkip &&
		c.UnknownMarks != UnknownPlaceholder &&
		c.UnknownMarks != UnknownError {
		return fmt.Errorf("invalid unknownMarks %q", c.UnknownMarks)
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}
