package editor

import "fmt"

// ImageSlot inserts uploaded images at the end of a session document.
type ImageSlot struct {
	session *Session
}

// ImageSlot returns an upload target that appends one image block per URL.
func (s *Session) ImageSlot() *ImageSlot {
	return &ImageSlot{session: s}
}

// Len returns the number of images already in the document.
func (i *ImageSlot) Len() int {
	return len(i.session.Document().Images())
}

// Put appends an image block and serializes the document.
func (i *ImageSlot) Put(url string) error {
	if _, err := i.session.InsertImage(-1, url, ""); err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}
