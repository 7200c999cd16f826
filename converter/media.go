package converter

import (
	"fmt"
	"sort"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (s *state) renderImage(node document.Node) (*xhtml.Node, error) {
	src := node.StringAttr("src")
	if src == "" {
		s.addWarning(document.WarningMissingAttribute, document.TypeImage, "image without src skipped")
		return nil, nil
	}
	if !document.SafeURL(src) {
		s.addWarning(document.WarningDroppedFeature, document.TypeImage, fmt.Sprintf("unsafe image source %q skipped", src))
		return nil, nil
	}

	alt := node.StringAttr("alt")
	width := node.IntAttr("width", 0)
	height := node.IntAttr("height", 0)

	var extra map[string]string
	output, handled, err := s.applyImageRenderHook(ImageRenderInput{
		Src:    src,
		Alt:    alt,
		Width:  width,
		Height: height,
		Attrs:  node.Attrs,
	})
	if err != nil {
		return nil, err
	}
	if handled {
		src = output.Src
		if output.Alt != "" {
			alt = output.Alt
		}
		extra = output.Extra
	}

	attrs := []xhtml.Attribute{{Key: "src", Val: src}}
	if alt != "" {
		attrs = append(attrs, xhtml.Attribute{Key: "alt", Val: alt})
	}
	if width > 0 {
		attrs = append(attrs, intAttr("width", width))
	}
	if height > 0 {
		attrs = append(attrs, intAttr("height", height))
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		switch key {
		case "src", "alt", "width", "height":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		attrs = append(attrs, xhtml.Attribute{Key: key, Val: extra[key]})
	}

	return element(atom.Img, attrs...), nil
}
