// Package contentapi is the client for the services, blogs, categories and
// FAQ collections of the content API, plus the draft rules applied before
// anything is sent.
package contentapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rgonek/contentdesk/apiclient"
)

// Client groups the collections behind one API client.
type Client struct {
	api *apiclient.Client
}

// New creates a content client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Services returns the service collection.
func (c *Client) Services() Services {
	return Services{newResource[Service](c.api, "/api/services", "service")}
}

// Blogs returns the blog collection.
func (c *Client) Blogs() Blogs {
	return Blogs{newResource[Blog](c.api, "/api/blogs", "blog")}
}

// Categories returns the category collection.
func (c *Client) Categories() Categories {
	return Categories{newResource[Category](c.api, "/api/categories", "category")}
}

// FAQ returns the FAQ collection.
func (c *Client) FAQ() FAQ {
	return FAQ{newResource[FAQCategory](c.api, "/api/faq", "faq category")}
}

// Stats returns the dashboard counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.api.DoJSON(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}
