// Package converter renders a structured document to HTML.
package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
)

// Converter renders documents to HTML.
type Converter struct {
	config Config
}

// Result holds the output of a conversion.
type Result struct {
	HTML     string             `json:"html"`
	Warnings []document.Warning `json:"warnings,omitempty"`
}

type state struct {
	ctx      context.Context
	config   Config
	warnings []document.Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{config: cfg}, nil
}

// Convert renders a document. An empty document renders as the empty string.
func (c *Converter) Convert(doc document.Doc) (Result, error) {
	return c.ConvertWithContext(context.Background(), doc)
}

// ConvertJSON decodes a JSON document and renders it.
func (c *Converter) ConvertJSON(input []byte) (Result, error) {
	var doc document.Doc
	if err := json.Unmarshal(input, &doc); err != nil {
		return Result{}, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	return c.Convert(doc)
}

// ConvertWithContext renders a document, honoring cancellation of ctx.
func (c *Converter) ConvertWithContext(ctx context.Context, doc document.Doc) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:    ctx,
		config: c.config,
	}

	if err := s.checkContext(); err != nil {
		return Result{}, err
	}

	nodes, err := s.renderBlocks(doc.Content)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	for _, node := range nodes {
		if err := xhtml.Render(&buf, node); err != nil {
			return Result{}, fmt.Errorf("failed to render HTML: %w", err)
		}
	}

	return Result{
		HTML:     buf.String(),
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType document.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, document.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion cancelled: %w", err)
	}
	return nil
}
