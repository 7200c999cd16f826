package contentapi

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxExcerptLength is the longest excerpt a blog post may carry, in characters.
const MaxExcerptLength = 300

// ErrInvalidDraft wraps every draft validation failure.
var ErrInvalidDraft = errors.New("invalid draft")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDraft, fmt.Sprintf(format, args...))
}

// Clean drops empty hero features, empty CTA benefits and section items
// with neither title nor description. It fills the slug from the title
// when missing.
func (s *Service) Clean() {
	s.Hero.Features = nonBlank(s.Hero.Features)
	s.CTA.Benefits = nonBlank(s.CTA.Benefits)
	sections := make([]Section, len(s.Sections))
	for i, section := range s.Sections {
		items := make([]SectionItem, 0, len(section.Items))
		for _, item := range section.Items {
			if strings.TrimSpace(item.Title) != "" || strings.TrimSpace(item.Description) != "" {
				items = append(items, item)
			}
		}
		section.Items = items
		sections[i] = section
	}
	s.Sections = sections
	if strings.TrimSpace(s.Slug) == "" {
		s.Slug = GenerateSlug(s.Title)
	}
}

// Validate checks the fields the API requires.
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return invalid("service title is required")
	}
	if strings.TrimSpace(s.Slug) == "" {
		return invalid("service slug is required")
	}
	for i, section := range s.Sections {
		switch section.Type {
		case SectionTextImage, SectionFAQAccordion:
		default:
			return invalid("section %d has unknown type %q", i, section.Type)
		}
	}
	for i, t := range s.Testimonials {
		if t.Rating < 0 || t.Rating > 5 {
			return invalid("testimonial %d rating %d out of range", i, t.Rating)
		}
	}
	return nil
}

func (s *Service) prepare() error {
	s.Clean()
	return s.Validate()
}

// Clean fills the slug from the title and defaults the status to draft.
func (b *Blog) Clean() {
	b.Tags = nonBlank(b.Tags)
	if strings.TrimSpace(b.Slug) == "" {
		b.Slug = GenerateSlug(b.Title)
	}
	if b.Status == "" {
		b.Status = BlogDraft
	}
}

// Validate checks required fields and the images embedded in the content.
func (b *Blog) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return invalid("blog title is required")
	}
	if strings.TrimSpace(b.Excerpt) == "" {
		return invalid("blog excerpt is required")
	}
	if n := utf8.RuneCountInString(b.Excerpt); n > MaxExcerptLength {
		return invalid("blog excerpt is %d characters, limit is %d", n, MaxExcerptLength)
	}
	if strings.TrimSpace(b.Category) == "" {
		return invalid("blog category is required")
	}
	switch b.Status {
	case BlogDraft, BlogPublished:
	default:
		return invalid("unknown blog status %q", b.Status)
	}

	stats, err := AnalyzeContent(b.Content)
	if err != nil {
		return err
	}
	if stats.Words == 0 && len(stats.Images) == 0 {
		return invalid("blog content is required")
	}
	if len(stats.UnsafeImages) > 0 {
		return invalid("blog content has an image with unsafe source %q", stats.UnsafeImages[0])
	}
	return nil
}

func (b *Blog) prepare() error {
	b.Clean()
	return b.Validate()
}

// Clean fills the slug from the name.
func (c *Category) Clean() {
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = GenerateSlug(c.Name)
	}
}

// Validate checks name and type.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("category name is required")
	}
	switch c.Type {
	case CategoryService, CategoryBlog:
	default:
		return invalid("unknown category type %q", c.Type)
	}
	return nil
}

func (c *Category) prepare() error {
	c.Clean()
	return c.Validate()
}

// Validate checks the category name.
func (f *FAQCategory) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("faq category name is required")
	}
	return nil
}

func (f *FAQCategory) prepare() error {
	return f.Validate()
}

// Validate checks question and answer.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return invalid("question text is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return invalid("answer text is required")
	}
	return nil
}

// FilterCategories keeps categories of the given type. An empty type keeps all.
func FilterCategories(categories []Category, kind CategoryType) []Category {
	if kind == "" {
		return categories
	}
	var out []Category
	for _, c := range categories {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	return out
}

// FilterBlogs keeps posts whose title or excerpt contains query and whose
// status matches. Empty arguments match everything.
func FilterBlogs(blogs []Blog, query string, status BlogStatus) []Blog {
	var out []Blog
	for _, b := range blogs {
		if status != "" && b.Status != status {
			continue
		}
		if query != "" && !strings.Contains(b.Title, query) && !strings.Contains(b.Excerpt, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
