package contentapi

import "time"

// SEO holds search metadata of a service page.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Hero is the top block of a service page.
type Hero struct {
	Image       string   `json:"image"`
	ImageAlt    string   `json:"imageAlt"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// SectionType names the layout of a service section.
type SectionType string

const (
	SectionTextImage    SectionType = "text-image"
	SectionFAQAccordion SectionType = "faq-accordion"
)

// SectionItem is one entry of an accordion section.
type SectionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Section is a content block of a service page. Content is HTML.
type Section struct {
	ID      string        `json:"id"`
	Type    SectionType   `json:"type"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Image   string        `json:"image"`
	Items   []SectionItem `json:"items"`
}

// CTA is the call-to-action block of a service page.
type CTA struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// Testimonial is a customer quote shown on a service page.
type Testimonial struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Service  string `json:"service"`
}

// Service is a service page.
type Service struct {
	ID           string        `json:"_id,omitempty"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Icon         string        `json:"icon"`
	IsActive     bool          `json:"isActive"`
	Order        int           `json:"order,omitempty"`
	SEO          SEO           `json:"seo"`
	Hero         Hero          `json:"hero"`
	Sections     []Section     `json:"sections"`
	CTA          CTA           `json:"cta"`
	Testimonials []Testimonial `json:"testimonials"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
}

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// Blog is a blog post. Content is HTML.
type Blog struct {
	ID              string     `json:"_id,omitempty"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Image           string     `json:"image"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Featured        bool       `json:"featured"`
	Status          BlogStatus `json:"status"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	RelatedServices []string   `json:"relatedServices"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// CategoryType says which content a category groups.
type CategoryType string

const (
	CategoryService CategoryType = "service"
	CategoryBlog    CategoryType = "blog"
)

// Category groups services or blog posts.
type Category struct {
	ID          string       `json:"_id,omitempty"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Type        CategoryType `json:"type"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"isActive"`
	Order       int          `json:"order,omitempty"`
}

// Question is one FAQ entry.
type Question struct {
	ID       string `json:"_id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order,omitempty"`
	IsActive bool   `json:"isActive"`
}

// FAQCategory groups FAQ questions.
type FAQCategory struct {
	ID          string     `json:"_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions,omitempty"`
	Order       int        `json:"order,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// Stats are the dashboard counters.
type Stats struct {
	Services struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"services"`
	Blogs struct {
		Total     int `json:"total"`
		Published int `json:"published"`
		Drafts    int `json:"drafts"`
	} `json:"blogs"`
	Categories int `json:"categories"`
	Media      int `json:"media"`
}
