package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a media reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved media reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort continues rendering and falls back to built-in behavior.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails rendering when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// ImageRenderHook can override image output during rendering.
type ImageRenderHook func(ctx context.Context, in ImageRenderInput) (ImageRenderOutput, error)

// ImageRenderInput describes an image node being rendered.
type ImageRenderInput struct {
	Src    string
	Alt    string
	Width  int
	Height int
	Attrs  map[string]any
}

// ImageRenderOutput contains hook-provided image attributes.
type ImageRenderOutput struct {
	Src string
	Alt string
	// Extra is rendered as additional attributes, e.g. loading="lazy".
	Extra   map[string]string
	Handled bool
}
