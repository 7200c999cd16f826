package contentapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "latin", title: "  Air Conditioning Repair ", want: "air-conditioning-repair"},
		{name: "ampersand", title: "Heating & Cooling", want: "heating-and-cooling"},
		{name: "punctuation", title: "What's new?!", want: "whats-new"},
		{name: "arabic", title: "صيانة المكيفات", want: "صيانة-المكيفات"},
		{name: "mixed", title: "AC - صيانة", want: "ac-صيانة"},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestBlogPrepare(t *testing.T) {
	blog := Blog{
		Title:    "First Post",
		Excerpt:  "short",
		Category: "guides",
		Content:  "<p>Hello world</p>",
		Tags:     []string{"a", " "},
	}
	require.NoError(t, blog.prepare())
	assert.Equal(t, "first-post", blog.Slug)
	assert.Equal(t, BlogDraft, blog.Status)
	assert.Equal(t, []string{"a"}, blog.Tags)
}

func TestBlogValidate(t *testing.T) {
	valid := func() Blog {
		return Blog{Title: "T", Excerpt: "E", Category: "c", Content: "<p>x</p>", Status: BlogPublished}
	}

	tests := []struct {
		name   string
		mutate func(b *Blog)
		ok     bool
	}{
		{name: "valid", mutate: func(*Blog) {}, ok: true},
		{name: "image only content", mutate: func(b *Blog) { b.Content = `<img src="/uploads/a.png">` }, ok: true},
		{name: "missing title", mutate: func(b *Blog) { b.Title = "" }},
		{name: "long excerpt", mutate: func(b *Blog) { b.Excerpt = strings.Repeat("ن", MaxExcerptLength+1) }},
		{name: "excerpt at limit", mutate: func(b *Blog) { b.Excerpt = strings.Repeat("ن", MaxExcerptLength) }, ok: true},
		{name: "missing category", mutate: func(b *Blog) { b.Category = "" }},
		{name: "bad status", mutate: func(b *Blog) { b.Status = "archived" }},
		{name: "empty content", mutate: func(b *Blog) { b.Content = "<p> </p>" }},
		{name: "unsafe image", mutate: func(b *Blog) { b.Content = `<p>x</p><img src="javascript:alert(1)">` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(&b)
			err := b.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDraft)
		})
	}
}

func TestServiceValidate(t *testing.T) {
	s := Service{Title: "AC", Slug: "ac", Sections: []Section{{Type: "video"}}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidDraft)

	s.Sections[0].Type = SectionTextImage
	s.Testimonials = []Testimonial{{Name: "A", Rating: 6}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidDraft)

	s.Testimonials[0].Rating = 5
	assert.NoError(t, s.Validate())
}

func TestCategoryClean(t *testing.T) {
	c := Category{Name: "Split Units", Type: CategoryService}
	require.NoError(t, c.prepare())
	assert.Equal(t, "split-units", c.Slug)
}

func TestFilterCategories(t *testing.T) {
	categories := []Category{
		{Name: "a", Type: CategoryService},
		{Name: "b", Type: CategoryBlog},
		{Name: "c", Type: CategoryService},
	}

	services := FilterCategories(categories, CategoryService)
	require.Len(t, services, 2)
	assert.Equal(t, "c", services[1].Name)
	assert.Len(t, FilterCategories(categories, ""), 3)
	assert.Empty(t, FilterCategories(categories, "faq"))
}

func TestFilterBlogs(t *testing.T) {
	blogs := []Blog{
		{Title: "Cooling tips", Excerpt: "summer", Status: BlogPublished},
		{Title: "Heating", Excerpt: "winter cooling", Status: BlogDraft},
		{Title: "Other", Status: BlogPublished},
	}

	assert.Len(t, FilterBlogs(blogs, "cooling", ""), 1)
	assert.Len(t, FilterBlogs(blogs, "", BlogPublished), 2)
	assert.Len(t, FilterBlogs(blogs, "Heating", BlogPublished), 0)
	assert.Len(t, FilterBlogs(blogs, "", ""), 3)
}

func TestAnalyzeContent(t *testing.T) {
	stats, err := AnalyzeContent(`<h2>Title here</h2><p>one two<br>three</p><img src="/a.png"><script>var x = 1</script><img src="">`)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Words)
	assert.Equal(t, 1, stats.ReadingTime)
	assert.Equal(t, []string{"/a.png"}, stats.Images)
	assert.Empty(t, stats.UnsafeImages)

	long, err := AnalyzeContent("<p>" + strings.Repeat("word ", 401) + "</p>")
	require.NoError(t, err)
	assert.Equal(t, 3, long.ReadingTime)

	empty, err := AnalyzeContent("")
	require.NoError(t, err)
	assert.Equal(t, 1, empty.ReadingTime)
	assert.Zero(t, empty.Words)
}
