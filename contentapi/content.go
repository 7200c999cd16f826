package contentapi

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rgonek/contentdesk/document"
)

// ContentStats summarizes an HTML body.
type ContentStats struct {
	Words       int
	ReadingTime int // minutes
	// Images are the img sources in document order.
	Images       []string
	UnsafeImages []string
}

// AnalyzeContent counts words and collects image sources of an HTML body.
func AnalyzeContent(html string) (ContentStats, error) {
	if strings.TrimSpace(html) == "" {
		return ContentStats{ReadingTime: document.ReadingTime(0)}, nil
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ContentStats{}, fmt.Errorf("failed to parse content: %w", err)
	}
	page.Find("script, style").Remove()

	var stats ContentStats
	page.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			return
		}
		if !document.SafeURL(src) {
			stats.UnsafeImages = append(stats.UnsafeImages, src)
			return
		}
		stats.Images = append(stats.Images, src)
	})

	// Block boundaries must separate words.
	page.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, br, div").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})

	stats.Words = len(strings.Fields(page.Text()))
	stats.ReadingTime = document.ReadingTime(stats.Words)
	return stats, nil
}
