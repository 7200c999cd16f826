package upload

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Mode decides how a successful upload lands in its slot.
type Mode string

const (
	// ModeOverwrite replaces a single value.
	ModeOverwrite Mode = "overwrite"
	// ModeAppend adds to a collection, bounded by MaxImages.
	ModeAppend Mode = "append"
	// ModeInsert places the image into a document.
	ModeInsert Mode = "insert"
)

// DefaultAccept limits uploads to images.
var DefaultAccept = []string{"image/*"}

// DefaultExtensions are the image extensions the media library takes.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Policy configures one drop zone.
type Policy struct {
	// Accept lists MIME patterns such as image/*. Empty accepts any type.
	Accept []string
	// Extensions, when set, must contain the file extension as well.
	Extensions []string
	// MaxFiles caps the files taken from one call. Zero means no cap,
	// except in overwrite mode where it is always one.
	MaxFiles int
	Mode     Mode
	// MaxImages caps the slot size. Zero means no cap.
	MaxImages int
}

// SinglePolicy is the featured-image drop zone: one image replacing the
// current value.
func SinglePolicy() Policy {
	return Policy{
		Accept:   cloneStrings(DefaultAccept),
		MaxFiles: 1,
		Mode:     ModeOverwrite,
	}
}

// GalleryPolicy appends images up to maxImages in total. A maxImages of zero
// leaves the gallery unbounded.
func GalleryPolicy(maxImages int) Policy {
	return Policy{
		Accept:    cloneStrings(DefaultAccept),
		Mode:      ModeAppend,
		MaxImages: maxImages,
	}
}

// InlinePolicy inserts one image into rich-text content.
func InlinePolicy() Policy {
	return Policy{
		Accept:   cloneStrings(DefaultAccept),
		MaxFiles: 1,
		Mode:     ModeInsert,
	}
}

func (p Policy) applyDefaults() Policy {
	out := p.clone()
	if out.Mode == "" {
		out.Mode = ModeAppend
	}
	if out.Mode == ModeOverwrite {
		out.MaxFiles = 1
	}
	for i, ext := range out.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out.Extensions[i] = ext
	}
	return out
}

func (p Policy) clone() Policy {
	out := p
	out.Accept = cloneStrings(p.Accept)
	out.Extensions = cloneStrings(p.Extensions)
	return out
}

// Validate checks the policy after defaults are applied.
func (p Policy) Validate() error {
	switch p.Mode {
	case ModeOverwrite, ModeAppend, ModeInsert:
	default:
		return fmt.Errorf("invalid mode %q", p.Mode)
	}
	if p.MaxFiles < 0 {
		return fmt.Errorf("invalid max files %d", p.MaxFiles)
	}
	if p.MaxImages < 0 {
		return fmt.Errorf("invalid max images %d", p.MaxImages)
	}
	for _, pattern := range p.Accept {
		if _, err := path.Match(pattern, "x/y"); err != nil {
			return fmt.Errorf("invalid accept pattern %q", pattern)
		}
	}
	return nil
}

// Accepts reports whether the file type passes the policy.
func (p Policy) Accepts(f File) bool {
	if len(p.Extensions) > 0 && !p.hasExtension(f.Name) {
		return false
	}
	if len(p.Accept) == 0 {
		return true
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = detectContentType(f.Name, nil)
	}
	contentType = strings.ToLower(contentType)
	for _, pattern := range p.Accept {
		if ok, _ := path.Match(strings.ToLower(pattern), contentType); ok {
			return true
		}
	}
	return false
}

func (p Policy) hasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range p.Extensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// capacity returns how many uploads the slot can still take, or -1 for no limit.
func (p Policy) capacity(current int) int {
	if p.Mode == ModeOverwrite || p.MaxImages == 0 {
		return -1
	}
	return max(p.MaxImages-current, 0)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
