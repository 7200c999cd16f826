package htmlconverter

import "github.com/rgonek/contentdesk/document"

type markStack struct {
	items []document.Mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

// push adds a mark unless an equal mark is already active; the return value
// tells the caller whether a matching pop is needed.
func (s *markStack) push(mark document.Mark) bool {
	for _, active := range s.items {
		if document.MarkEqual(active, mark) {
			return false
		}
	}
	s.items = append(s.items, document.CloneMark(mark))
	return true
}

func (s *markStack) popByType(markType string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type != markType {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}

	return false
}

func (s *markStack) current() []document.Mark {
	if len(s.items) == 0 {
		return nil
	}

	marks := make([]document.Mark, 0, len(s.items))
	for _, mark := range s.items {
		marks = append(marks, document.CloneMark(mark))
	}

	return marks
}

func newTextNode(textValue string, marks []document.Mark) document.Node {
	node := document.Node{
		Type: document.TypeText,
		Text: textValue,
	}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

func appendInlineNode(content []document.Node, next document.Node) []document.Node {
	if next.Type == document.TypeText && next.Text == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if last.Type == document.TypeText && next.Type == document.TypeText && document.MarksEqual(last.Marks, next.Marks) {
		last.Text += next.Text
		return content
	}

	return append(content, next)
}
