package document

import (
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// Images returns the image sources of the document in document order.
func (d Doc) Images() []string {
	var sources []string
	walk(d.Content, func(node Node) {
		if node.Type != TypeImage {
			return
		}
		if src := node.StringAttr("src"); src != "" {
			sources = append(sources, src)
		}
	})
	return sources
}

// PlainText returns the text of the document with blocks separated by newlines.
func (d Doc) PlainText() string {
	var blocks []string
	for _, node := range d.Content {
		if text := strings.TrimSpace(nodeText(node)); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n")
}

// WordCount counts whitespace-separated words in the document text.
func (d Doc) WordCount() int {
	return len(strings.Fields(d.PlainText()))
}

// ReadingTime estimates reading time in minutes, never less than one.
func ReadingTime(words int) int {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func nodeText(node Node) string {
	switch node.Type {
	case TypeText:
		return node.Text
	case TypeHardBreak:
		return "\n"
	}

	var sb strings.Builder
	for idx, child := range node.Content {
		if idx > 0 && IsBlock(child.Type) {
			sb.WriteString("\n")
		}
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

func walk(nodes []Node, visit func(Node)) {
	for _, node := range nodes {
		visit(node)
		walk(node.Content, visit)
	}
}
