package editor

import (
	"errors"
	"fmt"

	"github.com/rgonek/contentdesk/document"
)

var (
	// ErrBlockOutOfRange is returned when a command addresses a missing block.
	ErrBlockOutOfRange = errors.New("block index out of range")
	// ErrUnsupportedMark is returned for marks that cannot be toggled without attributes.
	ErrUnsupportedMark = errors.New("mark cannot be toggled")
)

// InsertImage inserts an image block at index; a negative or too large index appends.
func (s *Session) InsertImage(index int, src, alt string) (string, error) {
	if src == "" {
		return "", errors.New("image source is required")
	}
	return s.Apply(func(doc *document.Doc) error {
		doc.Content = insertBlock(doc.Content, index, document.Image(src, alt))
		return nil
	})
}

// AppendParagraph appends a plain text paragraph.
func (s *Session) AppendParagraph(text string) (string, error) {
	return s.Apply(func(doc *document.Doc) error {
		paragraph := document.Paragraph()
		if text != "" {
			paragraph.Content = []document.Node{document.Text(text)}
		}
		doc.Content = append(doc.Content, paragraph)
		return nil
	})
}

// ToggleMark applies markType to every text node of the block at index, or
// removes it when all of them already carry it.
func (s *Session) ToggleMark(index int, markType string) (string, error) {
	if !document.IsKnownMark(markType) || markType == document.MarkLink || markType == document.MarkSubSup {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMark, markType)
	}

	return s.Apply(func(doc *document.Doc) error {
		if index < 0 || index >= len(doc.Content) {
			return fmt.Errorf("%w: %d", ErrBlockOutOfRange, index)
		}
		block := &doc.Content[index]
		remove := allTextHasMark(block.Content, markType)
		setMark(block.Content, markType, remove)
		return nil
	})
}

func insertBlock(content []document.Node, index int, node document.Node) []document.Node {
	if index < 0 || index >= len(content) {
		return append(content, node)
	}
	content = append(content, document.Node{})
	copy(content[index+1:], content[index:])
	content[index] = node
	return content
}

func allTextHasMark(nodes []document.Node, markType string) bool {
	found := false
	for _, node := range nodes {
		if node.Type == document.TypeText {
			if !hasMark(node.Marks, markType) {
				return false
			}
			found = true
			continue
		}
		if len(node.Content) > 0 {
			if !allTextHasMark(node.Content, markType) {
				return false
			}
			found = true
		}
	}
	return found
}

func setMark(nodes []document.Node, markType string, remove bool) {
	for idx := range nodes {
		node := &nodes[idx]
		if node.Type != document.TypeText {
			setMark(node.Content, markType, remove)
			continue
		}
		if remove {
			node.Marks = withoutMark(node.Marks, markType)
		} else if !hasMark(node.Marks, markType) {
			node.Marks = append(node.Marks, document.Mark{Type: markType})
		}
	}
}

func hasMark(marks []document.Mark, markType string) bool {
	for _, mark := range marks {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

func withoutMark(marks []document.Mark, markType string) []document.Mark {
	var kept []document.Mark
	for _, mark := range marks {
		if mark.Type != markType {
			kept = append(kept, mark)
		}
	}
	return kept
}
