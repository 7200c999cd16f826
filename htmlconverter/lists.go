package htmlconverter

import (
	"strconv"
	"strings"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
)

func (s *state) convertList(node *xhtml.Node, stack *markStack) (document.Node, error) {
	list := document.Node{Type: document.TypeBulletList}
	if strings.EqualFold(node.Data, "ol") {
		list.Type = document.TypeOrderedList
		if start, ok := getHTMLAttr(node, "start"); ok {
			if order, err := strconv.Atoi(strings.TrimSpace(start)); err == nil && order != 1 {
				list.Attrs = map[string]interface{}{"order": order}
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == xhtml.ElementNode && strings.EqualFold(child.Data, "li"):
			item, err := s.convertListItem(child, stack)
			if err != nil {
				return document.Node{}, err
			}
			list.Content = append(list.Content, item)

		case child.Type == xhtml.ElementNode && (strings.EqualFold(child.Data, "ul") || strings.EqualFold(child.Data, "ol")):
			nested, err := s.convertList(child, stack)
			if err != nil {
				return document.Node{}, err
			}
			if len(list.Content) == 0 {
				list.Content = append(list.Content, document.Node{Type: document.TypeListItem})
			}
			last := &list.Content[len(list.Content)-1]
			last.Content = append(last.Content, nested)

		case child.Type == xhtml.TextNode && strings.TrimSpace(child.Data) == "":
			continue

		default:
			builder := newBlockBuilder()
			if err := s.walk(builder, child, stack); err != nil {
				return document.Node{}, err
			}
			if content := builder.finish(); len(content) > 0 {
				list.Content = append(list.Content, document.Node{Type: document.TypeListItem, Content: content})
			}
		}
	}

	return list, nil
}

func (s *state) convertListItem(node *xhtml.Node, stack *markStack) (document.Node, error) {
	content, err := s.convertBlocks(node, stack)
	if err != nil {
		return document.Node{}, err
	}
	return document.Node{Type: document.TypeListItem, Content: content}, nil
}
