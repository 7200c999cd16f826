package editor

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rgonek/contentdesk/document"
	"github.com/rgonek/contentdesk/htmlconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertImage(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>a</p><p>b</p>")

	html, err := session.InsertImage(1, "/uploads/x.png", "X")
	require.NoError(t, err)
	assert.Equal(t, `<p>a</p><img src="/uploads/x.png" alt="X"/><p>b</p>`, html)

	html, err = session.InsertImage(-1, "/uploads/y.png", "")
	require.NoError(t, err)
	assert.Equal(t, `<p>a</p><img src="/uploads/x.png" alt="X"/><p>b</p><img src="/uploads/y.png"/>`, html)
	assert.Len(t, rec.calls, 2)

	_, err = session.InsertImage(0, "", "")
	require.Error(t, err)
	assert.Len(t, rec.calls, 2)
}

func TestToggleMark(t *testing.T) {
	session, _ := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>plain <b>bold</b></p>")

	html, err := session.ToggleMark(0, document.MarkStrong)
	require.NoError(t, err)
	assert.Equal(t, `<p><strong>plain bold</strong></p>`, html)

	html, err = session.ToggleMark(0, document.MarkStrong)
	require.NoError(t, err)
	assert.Equal(t, `<p>plain bold</p>`, html)
}

func TestToggleMarkErrors(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>x</p>")

	_, err := session.ToggleMark(3, document.MarkEm)
	assert.ErrorIs(t, err, ErrBlockOutOfRange)

	_, err = session.ToggleMark(0, document.MarkLink)
	assert.ErrorIs(t, err, ErrUnsupportedMark)

	_, err = session.ToggleMark(0, "glitter")
	assert.ErrorIs(t, err, ErrUnsupportedMark)

	assert.Empty(t, rec.calls)
}

func TestImageSlotAppendsImages(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>body</p>")

	slot := session.ImageSlot()
	assert.Equal(t, 0, slot.Len())

	require.NoError(t, slot.Put("https://cdn/1.png"))
	require.NoError(t, slot.Put("https://cdn/2.png"))

	assert.Equal(t, 2, slot.Len())
	assert.Equal(t, []string{"https://cdn/1.png", "https://cdn/2.png"}, session.Document().Images())
	require.Len(t, rec.calls, 2)
	assert.Equal(t, `<p>body</p><img src="https://cdn/1.png"/><img src="https://cdn/2.png"/>`, rec.calls[1])
}

func TestConcurrentEditsAreNotLost(t *testing.T) {
	session, rec := newTestSession(t, htmlconverter.Config{})
	session.Load("<p>body</p>")

	const writers = 16
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, session.ImageSlot().Put(fmt.Sprintf("https://cdn/%d.png", i)))
				return
			}
			_, err := session.AppendParagraph(fmt.Sprintf("p%d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc := session.Document()
	assert.Len(t, doc.Content, writers+1)
	assert.Len(t, doc.Images(), writers/2)

	require.Len(t, rec.calls, writers)
	last, err := session.OnEdit(doc)
	require.NoError(t, err)
	assert.Equal(t, last, rec.calls[len(rec.calls)-1])
	assert.Equal(t, rec.calls[writers-1], last)
}
