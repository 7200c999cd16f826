package converter

import (
	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (s *state) renderList(node document.Node) (*xhtml.Node, error) {
	list := element(atom.Ul)
	if node.Type == document.TypeOrderedList {
		list = element(atom.Ol)
		if order := node.IntAttr("order", 1); order != 1 {
			list.Attr = append(list.Attr, intAttr("start", order))
		}
	}

	for _, child := range node.Content {
		item := child
		if item.Type != document.TypeListItem {
			item = document.Node{Type: document.TypeListItem, Content: []document.Node{child}}
		}
		rendered, err := s.renderListItem(item)
		if err != nil {
			return nil, err
		}
		list.AppendChild(rendered)
	}
	return list, nil
}

// renderListItem writes a leading plain paragraph inline, the way editors emit
// tight list items, and any further blocks as elements.
func (s *state) renderListItem(node document.Node) (*xhtml.Node, error) {
	item := element(atom.Li)
	content := node.Content

	if len(content) > 0 && content[0].Type == document.TypeParagraph &&
		len(content[0].Attrs) == 0 && len(content[0].Content) > 0 {
		if err := s.renderInline(item, content[0].Content); err != nil {
			return nil, err
		}
		content = content[1:]
	}

	children, err := s.renderBlocks(content)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		item.AppendChild(child)
	}
	return item, nil
}
