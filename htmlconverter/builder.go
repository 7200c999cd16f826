package htmlconverter

import (
	"strings"

	"github.com/rgonek/contentdesk/document"
)

// blockBuilder collects the blocks of one container. Inline content is
// buffered until a block boundary and then emitted as the pending block type.
type blockBuilder struct {
	blocks  []document.Node
	inline  []document.Node
	pending pendingBlock
}

type pendingBlock struct {
	nodeType string
	attrs    map[string]interface{}
	explicit bool
	start    int
}

func newBlockBuilder() *blockBuilder {
	return &blockBuilder{pending: pendingBlock{nodeType: document.TypeParagraph}}
}

// open starts an explicit block element and returns the block it replaces.
func (b *blockBuilder) open(nodeType string, attrs map[string]interface{}) pendingBlock {
	b.flush()
	prev := b.pending
	b.pending = pendingBlock{
		nodeType: nodeType,
		attrs:    attrs,
		explicit: true,
		start:    len(b.blocks),
	}
	return prev
}

// close ends an explicit block. An element that produced nothing at all is
// kept as an empty block.
func (b *blockBuilder) close(prev pendingBlock) {
	content := trimInline(b.inline)
	b.inline = nil
	if len(content) > 0 || (b.pending.explicit && len(b.blocks) == b.pending.start) {
		b.blocks = append(b.blocks, b.pendingNode(content))
	}
	b.pending = prev
}

func (b *blockBuilder) flush() {
	content := trimInline(b.inline)
	b.inline = nil
	if len(content) == 0 {
		return
	}
	b.blocks = append(b.blocks, b.pendingNode(content))
}

func (b *blockBuilder) pendingNode(content []document.Node) document.Node {
	node := document.Node{Type: b.pending.nodeType}
	if len(content) > 0 {
		node.Content = content
	}
	if b.pending.attrs != nil {
		node.Attrs = make(map[string]interface{}, len(b.pending.attrs))
		for key, value := range b.pending.attrs {
			node.Attrs[key] = value
		}
	}
	return node
}

func (b *blockBuilder) addBlock(node document.Node) {
	b.flush()
	b.blocks = append(b.blocks, node)
}

func (b *blockBuilder) finish() []document.Node {
	b.flush()
	return b.blocks
}

func (b *blockBuilder) appendText(text string, marks []document.Mark) {
	if text == "" {
		return
	}
	if strings.HasPrefix(text, " ") && b.endsWithSpace() {
		text = strings.TrimLeft(text, " ")
	}
	b.inline = appendInlineNode(b.inline, newTextNode(text, marks))
}

func (b *blockBuilder) appendHardBreak() {
	b.inline = trimTrailingSpace(b.inline)
	b.inline = append(b.inline, document.Node{Type: document.TypeHardBreak})
}

func (b *blockBuilder) endsWithSpace() bool {
	if len(b.inline) == 0 {
		return true
	}
	last := b.inline[len(b.inline)-1]
	switch last.Type {
	case document.TypeHardBreak:
		return true
	case document.TypeText:
		return strings.HasSuffix(last.Text, " ")
	default:
		return false
	}
}

func trimTrailingSpace(content []document.Node) []document.Node {
	for len(content) > 0 {
		last := &content[len(content)-1]
		if last.Type != document.TypeText {
			return content
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			return content
		}
		content = content[:len(content)-1]
	}
	return content
}

// trimInline drops trailing hard breaks and edge whitespace of an inline run.
func trimInline(content []document.Node) []document.Node {
	for len(content) > 0 {
		last := content[len(content)-1]
		if last.Type == document.TypeHardBreak {
			content = content[:len(content)-1]
			continue
		}
		if last.Type == document.TypeText && strings.TrimRight(last.Text, " ") == "" {
			content = content[:len(content)-1]
			continue
		}
		break
	}
	content = trimTrailingSpace(content)

	if len(content) > 0 && content[0].Type == document.TypeText {
		content[0].Text = strings.TrimLeft(content[0].Text, " ")
	}
	return content
}
