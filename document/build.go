package document

import "strings"

// Text returns a text node carrying the given marks.
func Text(value string, marks ...Mark) Node {
	node := Node{Type: TypeText, Text: value}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

// Paragraph returns a paragraph node.
func Paragraph(content ...Node) Node {
	return Node{Type: TypeParagraph, Content: content}
}

// Heading returns a heading node; level is clamped to 1..6.
func Heading(level int, content ...Node) Node {
	return Node{
		Type:    TypeHeading,
		Content: content,
		Attrs:   map[string]interface{}{"level": clampLevel(level)},
	}
}

// Image returns an image node. Empty alt text is omitted.
func Image(src, alt string) Node {
	attrs := map[string]interface{}{"src": src}
	if strings.TrimSpace(alt) != "" {
		attrs["alt"] = alt
	}
	return Node{Type: TypeImage, Attrs: attrs}
}

// Link returns a link mark.
func Link(href string) Mark {
	return Mark{Type: MarkLink, Attrs: map[string]interface{}{"href": href}}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// ClampHeadingLevel keeps a heading level inside 1..6.
func ClampHeadingLevel(level int) int {
	return clampLevel(level)
}

// SafeURL reports whether a link or image reference uses a scheme that is safe to render.
func SafeURL(raw string) bool {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, value)
	for _, scheme := range []string{"javascript:", "vbscript:"} {
		if strings.HasPrefix(value, scheme) {
			return false
		}
	}
	return true
}
