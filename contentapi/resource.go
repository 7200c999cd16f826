package contentapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rgonek/contentdesk/apiclient"
)

// preparer is implemented by drafts that clean and validate themselves
// before they are sent.
type preparer interface {
	prepare() error
}

// Resource is the CRUD surface shared by every content collection.
type Resource[T any] struct {
	api  *apiclient.Client
	path string
	name string
}

func newResource[T any](api *apiclient.Client, path, name string) Resource[T] {
	return Resource[T]{api: api, path: path, name: name}
}

func (r Resource[T]) itemPath(id string, parts ...string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s id is required", r.name)
	}
	segments := append([]string{r.path, url.PathEscape(id)}, parts...)
	return strings.Join(segments, "/"), nil
}

// List returns every item of the collection.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.api.DoJSON(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.path, err)
	}
	return items, nil
}

// Get returns one item.
func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	path, err := r.itemPath(id)
	if err != nil {
		return item, err
	}
	if err := r.api.DoJSON(ctx, http.MethodGet, path, nil, &item); err != nil {
		return item, fmt.Errorf("failed to get %s %s: %w", r.name, id, err)
	}
	return item, nil
}

// Create cleans and validates draft, then stores it.
func (r Resource[T]) Create(ctx context.Context, draft T) (T, error) {
	var created T
	if err := prepare(&draft); err != nil {
		return created, err
	}
	if err := r.api.DoJSON(ctx, http.MethodPost, r.path, draft, &created); err != nil {
		return created, fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return created, nil
}

// Update cleans and validates draft, then replaces the item with it.
func (r Resource[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	var updated T
	path, err := r.itemPath(id)
	if err != nil {
		return updated, err
	}
	if err := prepare(&draft); err != nil {
		return updated, err
	}
	if err := r.api.DoJSON(ctx, http.MethodPut, path, draft, &updated); err != nil {
		return updated, fmt.Errorf("failed to update %s %s: %w", r.name, id, err)
	}
	return updated, nil
}

// Delete removes one item.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	path, err := r.itemPath(id)
	if err != nil {
		return err
	}
	if err := r.api.DoJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.name, id, err)
	}
	return nil
}

// patch sends a body-less PATCH to an item action such as toggle. The
// returned item is zero when the API answers without data.
func (r Resource[T]) patch(ctx context.Context, id, action string) (T, error) {
	var item T
	path, err := r.itemPath(id, action)
	if err != nil {
		return item, err
	}
	if err := r.api.DoJSON(ctx, http.MethodPatch, path, nil, &item); err != nil {
		return item, fmt.Errorf("failed to %s %s %s: %w", action, r.name, id, err)
	}
	return item, nil
}

func prepare[T any](draft *T) error {
	if p, ok := any(draft).(preparer); ok {
		return p.prepare()
	}
	return nil
}

// Services manages service pages.
type Services struct {
	Resource[Service]
}

// Toggle flips the active flag.
func (s Services) Toggle(ctx context.Context, id string) (Service, error) {
	return s.patch(ctx, id, "toggle")
}

// Blogs manages blog posts.
type Blogs struct {
	Resource[Blog]
}

// ToggleFeatured flips the featured flag.
func (b Blogs) ToggleFeatured(ctx context.Context, id string) (Blog, error) {
	return b.patch(ctx, id, "featured")
}

// TogglePublish switches between draft and published.
func (b Blogs) TogglePublish(ctx context.Context, id string) (Blog, error) {
	return b.patch(ctx, id, "publish")
}

// Categories manages service and blog categories.
type Categories struct {
	Resource[Category]
}

// Toggle flips the active flag.
func (c Categories) Toggle(ctx context.Context, id string) (Category, error) {
	return c.patch(ctx, id, "toggle")
}

// FAQ manages FAQ categories and their questions. Question calls answer
// with the whole updated category.
type FAQ struct {
	Resource[FAQCategory]
}

// Toggle flips the active flag of a category.
func (f FAQ) Toggle(ctx context.Context, id string) (FAQCategory, error) {
	return f.patch(ctx, id, "toggle")
}

// AddQuestion appends a question to a category.
func (f FAQ) AddQuestion(ctx context.Context, categoryID string, q Question) (FAQCategory, error) {
	if err := q.Validate(); err != nil {
		return FAQCategory{}, err
	}
	path, err := f.itemPath(categoryID, "questions")
	if err != nil {
		return FAQCategory{}, err
	}
	return f.questionCall(ctx, http.MethodPost, path, q)
}

// UpdateQuestion replaces a question.
func (f FAQ) UpdateQuestion(ctx context.Context, categoryID, questionID string, q Question) (FAQCategory, error) {
	if err := q.Validate(); err != nil {
		return FAQCategory{}, err
	}
	path, err := f.questionPath(categoryID, questionID)
	if err != nil {
		return FAQCategory{}, err
	}
	return f.questionCall(ctx, http.MethodPut, path, q)
}

// DeleteQuestion removes a question.
func (f FAQ) DeleteQuestion(ctx context.Context, categoryID, questionID string) (FAQCategory, error) {
	path, err := f.questionPath(categoryID, questionID)
	if err != nil {
		return FAQCategory{}, err
	}
	return f.questionCall(ctx, http.MethodDelete, path, nil)
}

// ToggleQuestion flips the active flag of a question.
func (f FAQ) ToggleQuestion(ctx context.Context, categoryID, questionID string) (FAQCategory, error) {
	path, err := f.questionPath(categoryID, questionID)
	if err != nil {
		return FAQCategory{}, err
	}
	return f.questionCall(ctx, http.MethodPatch, path+"/toggle", nil)
}

func (f FAQ) questionPath(categoryID, questionID string) (string, error) {
	if strings.TrimSpace(questionID) == "" {
		return "", errors.New("question id is required")
	}
	return f.itemPath(categoryID, "questions", url.PathEscape(questionID))
}

func (f FAQ) questionCall(ctx context.Context, method, path string, body any) (FAQCategory, error) {
	var category FAQCategory
	if err := f.api.DoJSON(ctx, method, path, body, &category); err != nil {
		return category, fmt.Errorf("faq question request failed: %w", err)
	}
	return category, nil
}
