// Package mediastore talks to the media library endpoints of the content API.
package mediastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/rgonek/contentdesk/apiclient"
	"github.com/rs/zerolog"
)

const (
	uploadPath = "/api/media/upload"
	mediaPath  = "/api/media"

	// FormField is the multipart field the upload endpoint reads the file from.
	FormField = "file"
)

// Asset is a stored media file as reported by the API.
type Asset struct {
	ID           string    `json:"_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client uploads, lists and deletes media.
type Client struct {
	api         *apiclient.Client
	resolveBase *url.URL
	logger      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithResolveBase resolves relative asset URLs against base instead of the
// API base URL. Requests still go to the API.
func WithResolveBase(base *url.URL) Option {
	return func(c *Client) {
		c.resolveBase = base
	}
}

// New creates a media client on top of an authorized API client.
func New(api *apiclient.Client, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadAsset sends body as a single multipart file and returns the stored asset.
// The asset URL is returned as the server reported it.
func (c *Client) UploadAsset(ctx context.Context, name, contentType string, body io.Reader) (Asset, error) {
	if strings.TrimSpace(name) == "" {
		return Asset{}, errors.New("file name is required")
	}

	payload, formType, err := encodeForm(name, contentType, body)
	if err != nil {
		return Asset{}, err
	}

	req, err := c.api.NewRequest(ctx, http.MethodPost, uploadPath, payload)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", formType)

	resp, err := c.api.Do(req)
	if err != nil {
		return Asset{}, err
	}
	defer resp.Body.Close()

	var asset Asset
	if err := apiclient.DecodeEnvelope(resp, &asset); err != nil {
		return Asset{}, err
	}
	if asset.URL == "" {
		return Asset{}, fmt.Errorf("%w: upload response carries no url", apiclient.ErrMalformedResponse)
	}

	c.logger.Debug().
		Str("name", name).
		Str("url", asset.URL).
		Msg("Media uploaded")
	return asset, nil
}

// Upload stores one file and returns its absolute URL, resolved against the
// API base when the server answers with a relative path.
func (c *Client) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	asset, err := c.UploadAsset(ctx, name, contentType, body)
	if err != nil {
		return "", err
	}
	return c.URL(asset)
}

// List returns all stored media, newest first as ordered by the server.
func (c *Client) List(ctx context.Context) ([]Asset, error) {
	var assets []Asset
	if err := c.api.DoJSON(ctx, http.MethodGet, mediaPath, nil, &assets); err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return assets, nil
}

// Delete removes the asset with the given ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("media id is required")
	}
	if err := c.api.DoJSON(ctx, http.MethodDelete, mediaPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete media %s: %w", id, err)
	}
	return nil
}

// URL returns the absolute address of an asset.
func (c *Client) URL(asset Asset) (string, error) {
	if c.resolveBase != nil {
		return apiclient.ResolveAgainst(c.resolveBase, asset.URL)
	}
	return c.api.Resolve(asset.URL)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeForm(name, contentType string, body io.Reader) (*bytes.Buffer, string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
