package htmlconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
)

// inlineMarks maps an inline element to the marks it applies. The second
// return value is false for elements the converter does not recognize.
func (s *state) inlineMarks(node *xhtml.Node) ([]document.Mark, bool) {
	switch strings.ToLower(node.Data) {
	case "strong", "b":
		return []document.Mark{{Type: document.MarkStrong}}, true
	case "em", "i":
		return []document.Mark{{Type: document.MarkEm}}, true
	case "u", "ins":
		return []document.Mark{{Type: document.MarkUnderline}}, true
	case "s", "strike", "del":
		return []document.Mark{{Type: document.MarkStrike}}, true
	case "code", "kbd", "samp", "tt":
		return []document.Mark{{Type: document.MarkCode}}, true
	case "sub", "sup":
		return []document.Mark{{
			Type:  document.MarkSubSup,
			Attrs: map[string]interface{}{"type": strings.ToLower(node.Data)},
		}}, true
	case "a":
		return s.linkMarks(node), true
	case "span", "font", "small", "big", "mark", "abbr", "cite", "q", "time", "label",
		"bdi", "bdo", "var", "dfn", "data":
		return styleMarks(node), true
	default:
		return nil, false
	}
}

func (s *state) linkMarks(node *xhtml.Node) []document.Mark {
	href, _ := getHTMLAttr(node, "href")
	href = strings.TrimSpace(href)
	if href == "" {
		return nil
	}
	if !document.SafeURL(href) {
		s.addWarning(document.WarningDroppedFeature, "link", fmt.Sprintf("unsafe link %q dropped", href))
		return nil
	}

	mark := document.Link(href)
	if title, ok := getHTMLAttr(node, "title"); ok && strings.TrimSpace(title) != "" {
		mark.Attrs["title"] = strings.TrimSpace(title)
	}
	return []document.Mark{mark}
}

func styleMarks(node *xhtml.Node) []document.Mark {
	style, ok := getHTMLAttr(node, "style")
	if !ok {
		return nil
	}

	var marks []document.Mark
	if weight, found := styleValue(style, "font-weight"); found {
		switch weight {
		case "bold", "bolder", "600", "700", "800", "900":
			marks = append(marks, document.Mark{Type: document.MarkStrong})
		}
	}
	if fontStyle, found := styleValue(style, "font-style"); found && fontStyle == "italic" {
		marks = append(marks, document.Mark{Type: document.MarkEm})
	}

	decoration, found := styleValue(style, "text-decoration-line")
	if !found {
		decoration, _ = styleValue(style, "text-decoration")
	}
	if strings.Contains(decoration, "underline") {
		marks = append(marks, document.Mark{Type: document.MarkUnderline})
	}
	if strings.Contains(decoration, "line-through") {
		marks = append(marks, document.Mark{Type: document.MarkStrike})
	}

	return marks
}

// styleValue returns the lower-cased value of one declaration in an inline style attribute.
func styleValue(style, property string) (string, bool) {
	for _, declaration := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(declaration, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.ToLower(strings.TrimSpace(value)), true
		}
	}
	return "", false
}

// collapseWhitespace folds runs of HTML whitespace into a single space.
func collapseWhitespace(value string) string {
	var sb strings.Builder
	sb.Grow(len(value))

	inSpace := false
	for _, r := range value {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
		default:
			sb.WriteRune(r)
			inSpace = false
		}
	}
	return sb.String()
}
