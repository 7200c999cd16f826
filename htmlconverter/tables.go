package htmlconverter

import (
	"strings"

	"github.com/rgonek/contentdesk/document"
	xhtml "golang.org/x/net/html"
)

const tableCellSeparator = " | "

// flattenTable emits one paragraph per table row with cells joined by a separator.
func (s *state) flattenTable(b *blockBuilder, table *xhtml.Node, stack *markStack) error {
	s.addWarning(document.WarningDroppedFeature, "table", "table flattened to plain text")

	for _, row := range collectTableRows(table) {
		b.flush()
		first := true
		for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != xhtml.ElementNode {
				continue
			}
			tag := strings.ToLower(cell.Data)
			if tag != "td" && tag != "th" {
				continue
			}
			if !first {
				b.appendText(tableCellSeparator, nil)
			}
			first = false
			if err := s.walkChildren(b, cell, stack); err != nil {
				return err
			}
		}
		b.flush()
	}
	return nil
}

func collectTableRows(table *xhtml.Node) []*xhtml.Node {
	var rows []*xhtml.Node
	for child := table.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xhtml.ElementNode {
			continue
		}
		switch strings.ToLower(child.Data) {
		case "thead", "tbody", "tfoot":
			rows = append(rows, collectTableRows(child)...)
		case "tr":
			rows = append(rows, child)
		}
	}
	return rows
}
