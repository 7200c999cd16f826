package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocIsEmpty(t *testing.T) {
	doc := NewDoc()
	assert.Equal(t, TypeDoc, doc.Type)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.True(t, doc.IsEmpty())

	doc.Content = append(doc.Content, Paragraph(), Paragraph(Node{Type: TypeHardBreak}))
	assert.True(t, doc.IsEmpty())

	doc.Content = append(doc.Content, Image("https://x/a.png", ""))
	assert.False(t, doc.IsEmpty())
}

func TestImagesInDocumentOrder(t *testing.T) {
	doc := NewDoc()
	doc.Content = []Node{
		Image("/uploads/1.png", "first"),
		{Type: TypeBulletList, Content: []Node{
			{Type: TypeListItem, Content: []Node{Image("/uploads/2.png", "")}},
		}},
		Paragraph(Text("tail")),
		{Type: TypeImage},
	}

	assert.Equal(t, []string{"/uploads/1.png", "/uploads/2.png"}, doc.Images())
}

func TestPlainTextAndReadingTime(t *testing.T) {
	doc := NewDoc()
	doc.Content = []Node{
		Heading(2, Text("Title")),
		Paragraph(Text("one "), Text("two", Mark{Type: MarkStrong}), Node{Type: TypeHardBreak}, Text("three")),
	}

	assert.Equal(t, "Title\none two\nthree", doc.PlainText())
	assert.Equal(t, 4, doc.WordCount())

	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadingTime(tt.words), "words=%d", tt.words)
	}
}

func TestHeadingLevelClamped(t *testing.T) {
	assert.Equal(t, 1, Heading(0).IntAttr("level", 0))
	assert.Equal(t, 6, Heading(9).IntAttr("level", 0))
	assert.Equal(t, 3, Heading(3).IntAttr("level", 0))
}

func TestIntAttrAcceptsJSONNumbers(t *testing.T) {
	var node Node
	require.NoError(t, json.Unmarshal([]byte(`{"type":"heading","attrs":{"level":4}}`), &node))
	assert.Equal(t, 4, node.IntAttr("level", 1))
	assert.Equal(t, 7, node.IntAttr("missing", 7))
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDoc()
	doc.Content = []Node{Paragraph(Text("x", Link("https://a")))}

	cloned := doc.Clone()
	cloned.Content[0].Content[0].Marks[0].Attrs["href"] = "https://b"
	cloned.Content[0].Content[0].Text = "y"

	assert.Equal(t, "https://a", doc.Content[0].Content[0].Marks[0].Attrs["href"])
	assert.Equal(t, "x", doc.Content[0].Content[0].Text)
}

func TestMarksEqual(t *testing.T) {
	assert.True(t, MarksEqual([]Mark{{Type: MarkStrong}, Link("a")}, []Mark{{Type: MarkStrong}, Link("a")}))
	assert.False(t, MarksEqual([]Mark{Link("a")}, []Mark{Link("b")}))
	assert.False(t, MarksEqual([]Mark{{Type: MarkStrong}}, []Mark{{Type: MarkEm}}))
	assert.False(t, MarksEqual([]Mark{{Type: MarkStrong}}, nil))
	assert.True(t, MarksEqual(nil, []Mark{}))
}

func TestImageOmitsBlankAlt(t *testing.T) {
	img := Image("https://x/a.png", "  ")
	_, hasAlt := img.Attrs["alt"]
	assert.False(t, hasAlt)
	assert.Equal(t, "https://x/a.png", img.StringAttr("src"))
}

func TestSafeURL(t *testing.T) {
	assert.True(t, SafeURL("https://example.com/a.png"))
	assert.True(t, SafeURL("/uploads/a.png"))
	assert.True(t, SafeURL("mailto:a@b.c"))
	assert.False(t, SafeURL("javascript:alert(1)"))
	assert.False(t, SafeURL("  JavaScript:alert(1)"))
	assert.False(t, SafeURL("java\nscript:alert(1)"))
	assert.False(t, SafeURL("vbscript:x"))
}
