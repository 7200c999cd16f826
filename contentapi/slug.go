package contentapi

import (
	"regexp"
	"strings"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^\w\x{0600}-\x{06FF}-]+`)
	slugHyphens = regexp.MustCompile(`--+`)
)

// GenerateSlug derives a URL slug from a title. Latin letters are lowercased,
// Arabic letters are kept, and other punctuation is removed.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = strings.ReplaceAll(slug, "&", "-and-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	return slugHyphens.ReplaceAllString(slug, "-")
}
