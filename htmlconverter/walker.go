package htmlconverter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
)

func (s *state) convertBlocks(parent *xhtml.Node, stack *markStack) ([]document.Node, error) {
	builder := newBlockBuilder()
	if err := s.walkChildren(builder, parent, stack); err != nil {
		return nil, err
	}
	return builder.finish(), nil
}

func (s *state) walkChildren(b *blockBuilder, parent *xhtml.Node, stack *markStack) error {
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		if err := s.walk(b, child, stack); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) walk(b *blockBuilder, node *xhtml.Node, stack *markStack) error {
	switch node.Type {
	case xhtml.TextNode:
		b.appendText(collapseWhitespace(node.Data), stack.current())
		return nil
	case xhtml.ElementNode:
		if err := s.checkContext(); err != nil {
			return err
		}
		return s.walkElement(b, node, stack)
	case xhtml.DocumentNode:
		return s.walkChildren(b, node, stack)
	default:
		return nil
	}
}

func (s *state) walkElement(b *blockBuilder, node *xhtml.Node, stack *markStack) error {
	tag := strings.ToLower(node.Data)

	switch tag {
	case "p":
		prev := b.open(document.TypeParagraph, s.blockAttrs(node))
		err := s.walkChildren(b, node, stack)
		b.close(prev)
		return err

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1]-'0') + s.config.HeadingOffset
		attrs := s.blockAttrs(node)
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		attrs["level"] = document.ClampHeadingLevel(level)
		prev := b.open(document.TypeHeading, attrs)
		err := s.walkChildren(b, node, stack)
		b.close(prev)
		return err

	case "blockquote":
		content, err := s.convertBlocks(node, stack)
		if err != nil {
			return err
		}
		b.addBlock(document.Node{Type: document.TypeBlockquote, Content: content})
		return nil

	case "ul", "ol":
		list, err := s.convertList(node, stack)
		if err != nil {
			return err
		}
		b.addBlock(list)
		return nil

	case "pre":
		b.addBlock(s.convertCodeBlock(node))
		return nil

	case "hr":
		b.addBlock(document.Node{Type: document.TypeRule})
		return nil

	case "img":
		if image, ok := s.convertImage(node); ok {
			b.addBlock(image)
		}
		return nil

	case "br":
		b.appendHardBreak()
		return nil

	case "table":
		return s.flattenTable(b, node, stack)

	case "div", "section", "article", "main", "header", "footer", "nav", "aside",
		"figure", "figcaption", "picture", "body", "html", "center", "address",
		"details", "summary", "dl", "dt", "dd", "li", "form", "fieldset", "caption":
		b.flush()
		err := s.walkChildren(b, node, stack)
		b.flush()
		return err

	case "source", "track", "wbr", "col", "colgroup":
		return nil
	}

	marks, known := s.inlineMarks(node)
	if !known {
		switch s.config.UnknownNodes {
		case UnknownError:
			return fmt.Errorf("unsupported element <%s>", tag)
		case UnknownDrop:
			s.addWarning(document.WarningUnknownNode, tag, fmt.Sprintf("unsupported element <%s> dropped", tag))
			return nil
		default:
			s.addWarning(document.WarningUnknownNode, tag, fmt.Sprintf("unsupported element <%s> flattened to text", tag))
		}
	}

	pushed := make([]string, 0, len(marks))
	for _, mark := range marks {
		if stack.push(mark) {
			pushed = append(pushed, mark.Type)
		}
	}
	err := s.walkChildren(b, node, stack)
	for i := len(pushed) - 1; i >= 0; i-- {
		stack.popByType(pushed[i])
	}
	return err
}

func (s *state) blockAttrs(node *xhtml.Node) map[string]interface{} {
	attrs := map[string]interface{}{}

	if s.config.Direction == DirectionKeep {
		if dir, ok := getHTMLAttr(node, "dir"); ok {
			dir = strings.ToLower(strings.TrimSpace(dir))
			if dir == "rtl" || dir == "ltr" {
				attrs["dir"] = dir
			}
		}
	}

	if s.config.Alignment == AlignmentKeep {
		align, _ := getHTMLAttr(node, "align")
		if style, ok := getHTMLAttr(node, "style"); ok {
			if value, found := styleValue(style, "text-align"); found {
				align = value
			}
		}
		switch align = strings.ToLower(strings.TrimSpace(align)); align {
		case "left", "right", "center", "justify", "start", "end":
			attrs["align"] = align
		}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func (s *state) convertImage(node *xhtml.Node) (document.Node, bool) {
	src, _ := getHTMLAttr(node, "src")
	src = strings.TrimSpace(src)
	if src == "" {
		s.addWarning(document.WarningMissingAttribute, document.TypeImage, "image without src dropped")
		return document.Node{}, false
	}
	if !document.SafeURL(src) {
		s.addWarning(document.WarningDroppedFeature, document.TypeImage, fmt.Sprintf("unsafe image source %q dropped", src))
		return document.Node{}, false
	}

	alt, _ := getHTMLAttr(node, "alt")
	image := document.Image(src, alt)
	for _, key := range []string{"width", "height"} {
		if value := getIntHTMLAttr(node, key); value > 0 {
			image.Attrs[key] = value
		}
	}
	return image, true
}

func (s *state) convertCodeBlock(node *xhtml.Node) document.Node {
	block := document.Node{Type: document.TypeCodeBlock}

	language := languageFromClass(node)
	if code := findHTMLElement(node, "code"); code != nil && language == "" {
		language = languageFromClass(code)
	}
	if language != "" {
		block.Attrs = map[string]interface{}{"language": language}
	}

	text := strings.TrimSuffix(extractHTMLNodeText(node), "\n")
	if text != "" {
		block.Content = []document.Node{newTextNode(text, nil)}
	}
	return block
}

func languageFromClass(node *xhtml.Node) string {
	class, ok := getHTMLAttr(node, "class")
	if !ok {
		return ""
	}
	for _, name := range strings.Fields(class) {
		for _, prefix := range []string{"language-", "lang-"} {
			if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
				return strings.TrimPrefix(name, prefix)
			}
		}
	}
	return ""
}

func findHTMLElement(node *xhtml.Node, tag string) *xhtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == xhtml.ElementNode && strings.EqualFold(node.Data, tag) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findHTMLElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func getIntHTMLAttr(node *xhtml.Node, key string) int {
	value, ok := getHTMLAttr(node, key)
	if !ok {
		return 0
	}
	parsed, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if err != nil {
		return 0
	}
	return parsed
}

func extractHTMLNodeText(node *xhtml.Node) string {
	var builder strings.Builder

	var walk func(current *xhtml.Node)
	walk = func(current *xhtml.Node) {
		switch current.Type {
		case xhtml.TextNode:
			builder.WriteString(current.Data)
		case xhtml.ElementNode:
			if strings.EqualFold(current.Data, "br") {
				builder.WriteString("\n")
				return
			}
			for child := current.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		default:
			for child := current.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}

	return builder.String()
}
