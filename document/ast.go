// Package document defines the structured document tree edited in the dashboard.
package document

// Node type names.
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeText        = "text"
	TypeHardBreak   = "hardBreak"
	TypeImage       = "image"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeListItem    = "listItem"
	TypeBlockquote  = "blockquote"
	TypeCodeBlock   = "codeBlock"
	TypeRule        = "rule"
)

// Mark type names.
const (
	MarkStrong    = "strong"
	MarkEm        = "em"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkLink      = "link"
	MarkSubSup    = "subsup"
)

// CurrentVersion is the document format version written by NewDoc.
const CurrentVersion = 1

// Doc represents the root of a structured document.
type Doc struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node represents any node in the document tree (e.g., paragraph, text, image).
type Node struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Content []Node                 `json:"content,omitempty"`
	Marks   []Mark                 `json:"marks,omitempty"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
}

// Mark represents text formatting applied to a node (e.g., strong, em, link).
type Mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// NewDoc returns an empty document.
func NewDoc() Doc {
	return Doc{Version: CurrentVersion, Type: TypeDoc}
}

// IsEmpty reports whether the document has no visible content.
func (d Doc) IsEmpty() bool {
	for _, node := range d.Content {
		if !node.isBlank() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (d Doc) Clone() Doc {
	cloned := d
	cloned.Content = CloneNodes(d.Content)
	return cloned
}

func (n Node) isBlank() bool {
	switch n.Type {
	case TypeText:
		return n.Text == ""
	case TypeImage, TypeRule:
		return false
	case TypeHardBreak:
		return true
	}
	for _, child := range n.Content {
		if !child.isBlank() {
			return false
		}
	}
	return true
}

// IsBlock reports whether a node type is a block-level type.
func IsBlock(nodeType string) bool {
	switch nodeType {
	case TypeParagraph, TypeHeading, TypeImage, TypeBulletList, TypeOrderedList,
		TypeListItem, TypeBlockquote, TypeCodeBlock, TypeRule:
		return true
	default:
		return false
	}
}

// IsKnownMark reports whether a mark type is supported.
func IsKnownMark(markType string) bool {
	switch markType {
	case MarkStrong, MarkEm, MarkUnderline, MarkStrike, MarkCode, MarkLink, MarkSubSup:
		return true
	default:
		return false
	}
}

// CloneNodes deep-copies a node slice.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	cloned := make([]Node, len(nodes))
	for idx, node := range nodes {
		cloned[idx] = CloneNode(node)
	}
	return cloned
}

// CloneNode deep-copies a node.
func CloneNode(node Node) Node {
	cloned := node
	cloned.Content = CloneNodes(node.Content)
	cloned.Attrs = cloneAttrs(node.Attrs)
	if node.Marks != nil {
		cloned.Marks = make([]Mark, len(node.Marks))
		for idx, mark := range node.Marks {
			cloned.Marks[idx] = CloneMark(mark)
		}
	}
	return cloned
}

// CloneMark deep-copies a mark.
func CloneMark(mark Mark) Mark {
	cloned := mark
	cloned.Attrs = cloneAttrs(mark.Attrs)
	return cloned
}

func cloneAttrs(attrs map[string]interface{}) map[string]interface{} {
	if attrs == nil {
		return nil
	}
	cloned := make(map[string]interface{}, len(attrs))
	for key, value := range attrs {
		cloned[key] = value
	}
	return cloned
}

// MarksEqual compares two mark lists, including the attributes that identify a mark.
func MarksEqual(left, right []Mark) bool {
	if len(left) != len(right) {
		return false
	}
	for idx := range left {
		if !MarkEqual(left[idx], right[idx]) {
			return false
		}
	}
	return true
}

// MarkEqual compares two marks. For link and subsup marks the attributes are compared as well.
func MarkEqual(m1, m2 Mark) bool {
	if m1.Type != m2.Type {
		return false
	}

	switch m1.Type {
	case MarkLink:
		return markAttrsEqual(m1.Attrs, m2.Attrs, []string{"href", "title"})
	case MarkSubSup:
		return markAttrsEqual(m1.Attrs, m2.Attrs, []string{"type"})
	}

	return true
}

func markAttrsEqual(attrs1, attrs2 map[string]any, keys []string) bool {
	for _, key := range keys {
		val1, has1 := attrs1[key]
		val2, has2 := attrs2[key]
		if has1 != has2 {
			return false
		}
		if has1 && val1 != val2 {
			return false
		}
	}
	return true
}

// StringAttr returns a string attribute or "" when missing.
func (n Node) StringAttr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	if value, ok := n.Attrs[key].(string); ok {
		return value
	}
	return ""
}

// IntAttr returns an integer attribute, accepting the numeric types produced by JSON decoding.
func (n Node) IntAttr(key string, fallback int) int {
	if n.Attrs == nil {
		return fallback
	}
	switch value := n.Attrs[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return fallback
	}
}
