package main

import (
	"fmt"
	"strings"

	"github.com/rgonek/contentdesk/config"
	"github.com/rgonek/contentdesk/converter"
	"github.com/rgonek/contentdesk/htmlconverter"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetPlain    = "plain"
)

// presetConfig returns the parser and renderer settings of a preset.
func presetConfig(preset string) (htmlconverter.Config, converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return htmlconverter.Config{}, converter.Config{}, nil
	case presetStrict:
		return htmlconverter.Config{
				UnknownNodes: htmlconverter.UnknownError,
			}, converter.Config{
				UnknownNodes:   converter.UnknownError,
				UnknownMarks:   converter.UnknownError,
				ResolutionMode: converter.ResolutionStrict,
			}, nil
	case presetPlain:
		return htmlconverter.Config{
				UnknownNodes: htmlconverter.UnknownDrop,
				Direction:    htmlconverter.DirectionIgnore,
				Alignment:    htmlconverter.AlignmentIgnore,
			}, converter.Config{
				EmptyParagraph: converter.EmptyParagraphBare,
				Direction:      converter.DirectionIgnore,
				Alignment:      converter.AlignIgnore,
			}, nil
	default:
		return htmlconverter.Config{}, converter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, plain)", preset)
	}
}

// resolveConfig layers the editor section of the config file over a preset.
// An explicit preset other than balanced wins over the file.
func resolveConfig(preset string, editorCfg config.EditorConfig) (htmlconverter.Config, converter.Config, error) {
	parseCfg, renderCfg, err := presetConfig(preset)
	if err != nil {
		return htmlconverter.Config{}, converter.Config{}, err
	}

	p := strings.ToLower(strings.TrimSpace(preset))
	if p != "" && p != presetBalanced {
		return parseCfg, renderCfg, nil
	}

	parseCfg.UnknownNodes = htmlconverter.UnknownPolicy(editorCfg.UnknownTags)
	renderCfg.EmptyParagraph = converter.EmptyParagraphStyle(editorCfg.EmptyParagraph)
	if !editorCfg.KeepDirection {
		parseCfg.Direction = htmlconverter.DirectionIgnore
		renderCfg.Direction = converter.DirectionIgnore
	}
	return parseCfg, renderCfg, nil
}

func newConverters(preset string, editorCfg config.EditorConfig) (*htmlconverter.Converter, *converter.Converter, error) {
	parseCfg, renderCfg, err := resolveConfig(preset, editorCfg)
	if err != nil {
		return nil, nil, err
	}
	parser, err := htmlconverter.New(parseCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid parser config: %w", err)
	}
	renderer, err := converter.New(renderCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid renderer config: %w", err)
	}
	return parser, renderer, nil
}
