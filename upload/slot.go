package upload

import "errors"

// Slot is the place in a draft that uploaded URLs are folded into.
type Slot interface {
	// Len returns the number of images already present.
	Len() int
	// Put stores one resolved URL.
	Put(url string) error
}

// FieldSlot writes into a single string field.
func FieldSlot(field *string) Slot {
	return fieldSlot{field: field}
}

type fieldSlot struct {
	field *string
}

func (s fieldSlot) Len() int {
	if s.field == nil || *s.field == "" {
		return 0
	}
	return 1
}

func (s fieldSlot) Put(url string) error {
	if s.field == nil {
		return errors.New("field slot has no target")
	}
	*s.field = url
	return nil
}

// GallerySlot appends to a list of URLs.
func GallerySlot(urls *[]string) Slot {
	return gallerySlot{urls: urls}
}

type gallerySlot struct {
	urls *[]string
}

func (s gallerySlot) Len() int {
	if s.urls == nil {
		return 0
	}
	return len(*s.urls)
}

func (s gallerySlot) Put(url string) error {
	if s.urls == nil {
		return errors.New("gallery slot has no target")
	}
	*s.urls = append(*s.urls, url)
	return nil
}

// SlotFunc adapts a callback into an empty slot.
type SlotFunc func(url string) error

// Len implements Slot.
func (f SlotFunc) Len() int {
	return 0
}

// Put implements Slot.
func (f SlotFunc) Put(url string) error {
	return f(url)
}
