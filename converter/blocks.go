package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (s *state) renderBlocks(content []document.Node) ([]*xhtml.Node, error) {
	nodes := make([]*xhtml.Node, 0, len(content))
	for idx := 0; idx < len(content); idx++ {
		node := content[idx]

		// Stray inline nodes at block level are wrapped in one paragraph.
		if isInline(node.Type) {
			end := idx
			for end < len(content) && isInline(content[end].Type) {
				end++
			}
			paragraph, err := s.renderParagraph(document.Paragraph(content[idx:end]...))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, paragraph)
			idx = end - 1
			continue
		}

		rendered, err := s.renderBlock(node)
		if err != nil {
			return nil, err
		}
		if rendered != nil {
			nodes = append(nodes, rendered)
		}
	}
	return nodes, nil
}

func (s *state) renderBlock(node document.Node) (*xhtml.Node, error) {
	if err := s.checkContext(); err != nil {
		return nil, err
	}

	switch node.Type {
	case document.TypeParagraph:
		return s.renderParagraph(node)
	case document.TypeHeading:
		return s.renderHeading(node)
	case document.TypeBlockquote:
		return s.renderContainer(atom.Blockquote, node.Content)
	case document.TypeBulletList, document.TypeOrderedList:
		return s.renderList(node)
	case document.TypeListItem:
		return s.renderListItem(node)
	case document.TypeCodeBlock:
		return s.renderCodeBlock(node), nil
	case document.TypeRule:
		return element(atom.Hr), nil
	case document.TypeImage:
		return s.renderImage(node)
	default:
		return s.renderUnknownNode(node)
	}
}

func (s *state) renderUnknownNode(node document.Node) (*xhtml.Node, error) {
	switch s.config.UnknownNodes {
	case UnknownError:
		return nil, fmt.Errorf("unknown node type: %s", node.Type)
	case UnknownPlaceholder:
		s.addWarning(document.WarningUnknownNode, node.Type, fmt.Sprintf("unknown node %q rendered as placeholder", node.Type))
		paragraph := element(atom.P)
		paragraph.AppendChild(textNode(fmt.Sprintf("[Unknown node: %s]", node.Type)))
		return paragraph, nil
	default:
		s.addWarning(document.WarningUnknownNode, node.Type, fmt.Sprintf("unknown node %q skipped", node.Type))
		return nil, nil
	}
}

func (s *state) renderParagraph(node document.Node) (*xhtml.Node, error) {
	paragraph := element(atom.P, s.blockAttrs(node)...)
	if err := s.renderInline(paragraph, node.Content); err != nil {
		return nil, err
	}
	if paragraph.FirstChild == nil && s.config.EmptyParagraph == EmptyParagraphBreak {
		paragraph.AppendChild(element(atom.Br))
	}
	return paragraph, nil
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (s *state) renderHeading(node document.Node) (*xhtml.Node, error) {
	level := document.ClampHeadingLevel(node.IntAttr("level", 1))
	heading := element(headingAtoms[level-1], s.blockAttrs(node)...)
	if err := s.renderInline(heading, node.Content); err != nil {
		return nil, err
	}
	return heading, nil
}

func (s *state) renderContainer(a atom.Atom, content []document.Node) (*xhtml.Node, error) {
	container := element(a)
	children, err := s.renderBlocks(content)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		container.AppendChild(child)
	}
	return container, nil
}

func (s *state) renderCodeBlock(node document.Node) *xhtml.Node {
	var attrs []xhtml.Attribute
	if language := node.StringAttr("language"); language != "" {
		attrs = append(attrs, xhtml.Attribute{Key: "class", Val: "language-" + language})
	}

	// The parser drops one trailing newline, so one is always written back.
	code := element(atom.Code, attrs...)
	if text := extractTextFromContent(node.Content); text != "" {
		code.AppendChild(textNode(text + "\n"))
	}

	pre := element(atom.Pre)
	pre.AppendChild(code)
	return pre
}

func (s *state) blockAttrs(node document.Node) []xhtml.Attribute {
	var attrs []xhtml.Attribute
	if s.config.Direction == DirectionKeep {
		if dir := node.StringAttr("dir"); dir == "rtl" || dir == "ltr" {
			attrs = append(attrs, xhtml.Attribute{Key: "dir", Val: dir})
		}
	}
	if s.config.Alignment == AlignStyle {
		if align := node.StringAttr("align"); align != "" {
			attrs = append(attrs, xhtml.Attribute{Key: "style", Val: "text-align: " + align})
		}
	}
	return attrs
}

func extractTextFromContent(content []document.Node) string {
	var sb strings.Builder
	for _, node := range content {
		switch node.Type {
		case document.TypeText:
			sb.WriteString(node.Text)
		case document.TypeHardBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(extractTextFromContent(node.Content))
		}
	}
	return sb.String()
}

func isInline(nodeType string) bool {
	return nodeType == document.TypeText || nodeType == document.TypeHardBreak
}

func element(a atom.Atom, attrs ...xhtml.Attribute) *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func textNode(value string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: value}
}

func intAttr(key string, value int) xhtml.Attribute {
	return xhtml.Attribute{Key: key, Val: strconv.Itoa(value)}
}
