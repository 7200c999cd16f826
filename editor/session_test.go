package editor

import (
	"testing"

	"github.com/rgonek/contentdesk/converter"
	"github.com/rgonek/contentdesk/document"
	"github.com/rgonek/contentdesk/htmlconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) onChange(html string) {
	r.calls = append(r.calls, html)
}

func newTestSession(t *testing.T, parserCfg htmlconverter.Config) (*Session, *recorder) {
	t.Helper()

	parser, err := htmlconverter.New(parserCfg)
	require.NoError(t, err)
	renderer, err := converter.New(converter.Config{})
	require.NoError(t, err)

	rec := &recorder{}
	return NewSession(parser, renderer, rec.onChange), rec
}

func TestLoadParsesOnlyOnce(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	assert.NotEmpty(t, session.ID())
	assert.False(t, session.Loaded())

	doc := session.Load("<p>first</p>")
	assert.Equal(t, []document.Node{document.Paragraph(document.Text("first"))}, doc.Content)
	assert.True(t, session.Loaded())

	doc = session.Load("<p>second</p>")
	assert.Equal(t, []document.Node{document.Paragraph(document.Text("first"))}, doc.Content)
	assert.Empty(t, rec.calls)
}

func TestLoadEmptyHTMLGivesEmptyDocument(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})

	doc := session.Load("")
	assert.True(t, doc.IsEmpty())
	assert.Empty(t, session.Warnings())
	assert.Empty(t, rec.calls)
}

func TestParseFailureFallsBackWithoutTouchingDraft(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{UnknownNodes: htmlconverter.UnknownError})

	doc := session.Load("<p><blink>x</blink></p>")
	assert.Equal(t, document.NewDoc(), doc)
	require.Len(t, session.Warnings(), 1)
	assert.Equal(t, document.WarningParseFailed, session.Warnings()[0].Type)
	assert.Empty(t, rec.calls)

	html, err := session.AppendParagraph("fresh")
	require.NoError(t, err)
	assert.Equal(t, "<p>fresh</p>", html)
	assert.Equal(t, []string{"<p>fresh</p>"}, rec.calls)
}

func TestOnEditSerializesAndReports(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>Hello</p>")

	doc := session.Document()
	doc.Content = append(doc.Content, document.Image("https://x/a.png", ""))

	html, err := session.OnEdit(doc)
	require.NoError(t, err)
	assert.Equal(t, `<p>Hello</p><img src="https://x/a.png"/>`, html)
	assert.Equal(t, []string{html}, rec.calls)
	assert.Equal(t, doc, session.Document())
}

func TestEditBeforeLoadWins(t *testing.T) {
	session, _ := newTestSession(t, htmlconverter.Config{})

	_, err := session.AppendParagraph("typed")
	require.NoError(t, err)

	doc := session.Load("<p>stored</p>")
	assert.Equal(t, []document.Node{document.Paragraph(document.Text("typed"))}, doc.Content)
}

func TestResetReloads(t *testing.T) {
	session, _ := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>old</p>")

	doc := session.Reset("<h2>new</h2>")
	assert.Equal(t, []document.Node{document.Heading(2, document.Text("new"))}, doc.Content)
}

func TestOnEditRenderFailureKeepsDocument(t *testing.T) {
	parser, err := htmlconverter.New(htmlconverter.Config{})
	require.NoError(t, err)
	renderer, err := converter.New(converter.Config{UnknownNodes: converter.UnknownError})
	require.NoError(t, err)

	rec := &recorder{}
	session := NewSession(parser, renderer, rec.onChange)
	session.Load("<p>keep</p>")

	broken := session.Document()
	broken.Content = append(broken.Content, document.Node{Type: "mystery"})

	_, err = session.OnEdit(broken)
	require.Error(t, err)
	assert.Empty(t, rec.calls)
	assert.Equal(t, []document.Node{document.Paragraph(document.Text("keep"))}, session.Document().Content)
}
