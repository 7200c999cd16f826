// Package htmlconverter parses stored HTML into a structured document.
package htmlconverter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rgonek/contentdesk/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

// Converter converts HTML into a structured document.
type Converter struct {
	config   Config
	markdown goldmark.Markdown
}

// Result holds the output of a conversion.
type Result struct {
	Doc      document.Doc       `json:"doc"`
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

	return &Converter{
		config: cfg,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}, nil
}

// Convert parses an HTML string. Empty input yields an empty document.
func (c *Converter) Convert(html string) (Result, error) {
	return c.ConvertWithContext(context.Background(), html)
}

// ConvertWithContext parses an HTML string, honoring cancellation of ctx.
func (c *Converter) ConvertWithContext(ctx context.Context, html string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:    ctx,
		config: c.config,
	}

	if strings.TrimSpace(html) == "" {
		return Result{Doc: document.NewDoc()}, nil
	}

	doc, err := s.convertDocument(html)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Doc:      doc,
		Warnings: s.warnings,
	}, nil
}

// ConvertMarkdown renders GFM markdown to HTML and parses the result.
func (c *Converter) ConvertMarkdown(markdown string) (Result, error) {
	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(markdown), &buf); err != nil {
		return Result{}, fmt.Errorf("failed to render markdown: %w", err)
	}
	return c.Convert(buf.String())
}

func (s *state) convertDocument(html string) (document.Doc, error) {
	if err := s.checkContext(); err != nil {
		return document.Doc{}, err
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return document.Doc{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	s.dropSubtrees(page)

	doc := document.NewDoc()
	body := page.Find("body").First()
	if body.Length() == 0 {
		return doc, nil
	}

	content, err := s.convertBlocks(body.Get(0), newMarkStack())
	if err != nil {
		return document.Doc{}, err
	}
	doc.Content = content
	return doc, nil
}

func (s *state) dropSubtrees(page *goquery.Document) {
	if len(s.config.DroppedTags) == 0 {
		return
	}

	dropped := page.Find(strings.Join(s.config.DroppedTags, ", "))
	dropped.Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		s.addWarning(document.WarningDroppedFeature, tag, fmt.Sprintf("<%s> element removed", tag))
	})
	dropped.Remove()
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

func getHTMLAttr(node *xhtml.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}
