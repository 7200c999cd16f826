package htmlconverter

import "fmt"

// UnknownPolicy controls how unsupported elements are handled.
type UnknownPolicy string

const (
	// UnknownFlatten keeps the text of an unsupported element and drops the element itself.
	UnknownFlatten UnknownPolicy = "flatten"
	// UnknownDrop removes an unsupported element together with its text.
	UnknownDrop UnknownPolicy = "drop"
	// UnknownError fails the conversion.
	UnknownError UnknownPolicy = "error"
)

// DirectionMode controls whether the dir attribute of blocks is kept.
type DirectionMode string

const (
	DirectionKeep   DirectionMode = "keep"
	DirectionIgnore DirectionMode = "ignore"
)

// AlignmentMode controls whether block text alignment is kept.
type AlignmentMode string

const (
	AlignmentKeep   AlignmentMode = "keep"
	AlignmentIgnore AlignmentMode = "ignore"
)

// Config configures HTML to document conversion.
type Config struct {
	UnknownNodes  UnknownPolicy `json:"unknownNodes,omitempty"`
	Direction     DirectionMode `json:"direction,omitempty"`
	Alignment     AlignmentMode `json:"alignment,omitempty"`
	HeadingOffset int           `json:"headingOffset,omitempty"`
	// DroppedTags lists elements removed with their whole subtree before conversion.
	DroppedTags []string `json:"droppedTags,omitempty"`
}

var defaultDroppedTags = []string{"script", "style", "iframe", "noscript", "template", "object", "embed"}

func (c Config) applyDefaults() Config {
	if c.UnknownNodes == "" {
		c.UnknownNodes = UnknownFlatten
	}
	if c.Direction == "" {
		c.Direction = DirectionKeep
	}
	if c.Alignment == "" {
		c.Alignment = AlignmentKeep
	}
	if len(c.DroppedTags) == 0 {
		c.DroppedTags = defaultDroppedTags
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.DroppedTags = append([]string(nil), c.DroppedTags...)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.UnknownNodes != UnknownFlatten &&
		c.UnknownNodes != UnknownDrop &&
		c.UnknownNodes != UnknownError {
		return fmt.Errorf("invalid unknownNodes %q", c.UnknownNodes)
	}

	if c.Direction != DirectionKeep && c.Direction != DirectionIgnore {
		return fmt.Errorf("invalid direction %q", c.Direction)
	}

	if c.Alignment != AlignmentKeep && c.Alignment != AlignmentIgnore {
		return fmt.Errorf("invalid alignment %q", c.Alignment)
	}

	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}

	return nil
}
