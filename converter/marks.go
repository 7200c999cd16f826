package converter

import (
	"fmt"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderInline appends inline content to parent. Adjacent text nodes share
// mark elements for as long as their leading marks agree.
func (s *state) renderInline(parent *xhtml.Node, content []document.Node) error {
	var activeMarks []document.Mark
	var openElements []*xhtml.Node

	target := func() *xhtml.Node {
		if len(openElements) == 0 {
			return parent
		}
		return openElements[len(openElements)-1]
	}

	for _, node := range content {
		switch node.Type {
		case document.TypeText:
			if node.Text == "" {
				continue
			}
			currentMarks, err := s.renderableMarks(node.Marks)
			if err != nil {
				return err
			}

			keep := len(activeMarks) - len(getMarksToClose(activeMarks, currentMarks))
			activeMarks = activeMarks[:keep]
			openElements = openElements[:keep]

			for _, mark := range getMarksToOpen(activeMarks, currentMarks) {
				el := s.markElement(mark)
				target().AppendChild(el)
				activeMarks = append(activeMarks, mark)
				openElements = append(openElements, el)
			}
			target().AppendChild(textNode(node.Text))

		case document.TypeHardBreak:
			target().AppendChild(element(atom.Br))

		default:
			if s.config.UnknownNodes == UnknownError {
				return fmt.Errorf("unexpected inline node type: %s", node.Type)
			}
			s.addWarning(document.WarningUnknownNode, node.Type, fmt.Sprintf("inline node %q skipped", node.Type))
		}
	}

	return nil
}

// getMarksToClose returns the active marks that do not continue into currentMarks.
func getMarksToClose(activeMarks, currentMarks []document.Mark) []document.Mark {
	for i, activeMark := range activeMarks {
		if i >= len(currentMarks) || !document.MarkEqual(activeMark, currentMarks[i]) {
			return activeMarks[i:]
		}
	}
	return nil
}

// getMarksToOpen returns marks after the common prefix.
func getMarksToOpen(activeMarks, currentMarks []document.Mark) []document.Mark {
	commonLen := 0
	for i := 0; i < len(activeMarks) && i < len(currentMarks); i++ {
		if !document.MarkEqual(activeMarks[i], currentMarks[i]) {
			break
		}
		commonLen++
	}
	if commonLen < len(currentMarks) {
		return currentMarks[commonLen:]
	}
	return nil
}

func (s *state) renderableMarks(marks []document.Mark) ([]document.Mark, error) {
	if len(marks) == 0 {
		return nil, nil
	}

	result := make([]document.Mark, 0, len(marks))
	for _, mark := range marks {
		if !document.IsKnownMark(mark.Type) {
			switch s.config.UnknownMarks {
			case UnknownError:
				return nil, fmt.Errorf("unknown mark type: %s", mark.Type)
			default:
				s.addWarning(document.WarningUnknownMark, mark.Type, fmt.Sprintf("unknown mark %q ignored", mark.Type))
				continue
			}
		}

		if mark.Type == document.MarkLink {
			href, _ := mark.Attrs["href"].(string)
			if href == "" {
				s.addWarning(document.WarningMissingAttribute, document.MarkLink, "link without href ignored")
				continue
			}
			if !document.SafeURL(href) {
				s.addWarning(document.WarningDroppedFeature, document.MarkLink, fmt.Sprintf("unsafe link %q ignored", href))
				continue
			}
		}

		result = append(result, mark)
	}
	return result, nil
}

func (s *state) markElement(mark document.Mark) *xhtml.Node {
	switch mark.Type {
	case document.MarkStrong:
		return element(atom.Strong)
	case document.MarkEm:
		return element(atom.Em)
	case document.MarkUnderline:
		return element(atom.U)
	case document.MarkStrike:
		return element(atom.S)
	case document.MarkCode:
		return element(atom.Code)
	case document.MarkSubSup:
		if kind, _ := mark.Attrs["type"].(string); kind == "sup" {
			return element(atom.Sup)
		}
		return element(atom.Sub)
	case document.MarkLink:
		href, _ := mark.Attrs["href"].(string)
		attrs := []xhtml.Attribute{{Key: "href", Val: href}}
		if title, _ := mark.Attrs["title"].(string); title != "" {
			attrs = append(attrs, xhtml.Attribute{Key: "title", Val: title})
		}
		return element(atom.A, attrs...)
	default:
		return element(atom.Span)
	}
}
