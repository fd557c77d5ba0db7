// Package client is the REST client for the remote-API deployment mode. It
// speaks the wire interface served by pkg/showcase/api and plugs into the
// service as both its Store (Load/Save) and its ImageStore (Store/Remove).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// Client talks to a remote showcase server. All methods report non-2xx
// responses as an *APIError carrying the raw response body.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option represents a functional option for configuring the client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:3001/api").
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// APIError is a non-2xx response. Body is the raw response body, which the
// server uses as the error message.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: status %d: %s", e.Status, e.Body)
}

// showcase.Store implementation

// Load fetches the full collection. GET /showcase
func (c *Client) Load(ctx context.Context) (*showcase.ShowcaseData, error) {
	var data showcase.ShowcaseData
	if err := c.doJSON(ctx, http.MethodGet, "/showcase", nil, &data); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, showcase.ErrDataNotFound
		}
		return nil, err
	}
	return &data, nil
}

// Save replaces the server-side collection wholesale. POST /showcase/import
func (c *Client) Save(ctx context.Context, data *showcase.ShowcaseData) error {
	return c.doJSON(ctx, http.MethodPost, "/showcase/import", data, nil)
}

// showcase.ImageStore implementation

// Store uploads the file to the remote upload endpoint and returns the
// server-assigned filename as ID and the served URL as Src.
// POST /images/upload (multipart, field "image")
func (c *Client) Store(ctx context.Context, req showcase.StoreImageRequest) (*showcase.StoredImage, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, req.Reader); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/upload", &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var uploaded struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := c.do(httpReq, &uploaded); err != nil {
		return nil, err
	}

	return &showcase.StoredImage{ID: uploaded.Filename, Src: uploaded.URL}, nil
}

// Remove deletes an uploaded image by its server-assigned filename.
// DELETE /images/{filename}
func (c *Client) Remove(ctx context.Context, image showcase.StoredImage) error {
	path := "/images/" + url.PathEscape(image.ID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Item-level endpoints, for callers that address the server directly instead
// of going through a local service.

// ListItems fetches all items. GET /items
func (c *Client) ListItems(ctx context.Context) ([]showcase.ShowcaseItem, error) {
	var items []showcase.ShowcaseItem
	if err := c.doJSON(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches one item by id. GET /items/{id}
func (c *Client) GetItem(ctx context.Context, id string) (*showcase.ShowcaseItem, error) {
	var item showcase.ShowcaseItem
	if err := c.doJSON(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates an item server-side. POST /items
func (c *Client) CreateItem(ctx context.Context, req showcase.CreateItemRequest) (*showcase.ShowcaseItem, error) {
	var item showcase.ShowcaseItem
	if err := c.doJSON(ctx, http.MethodPost, "/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update. PUT /items/{id}
func (c *Client) UpdateItem(ctx context.Context, id string, req showcase.UpdateItemRequest) (*showcase.ShowcaseItem, error) {
	var item showcase.ShowcaseItem
	if err := c.doJSON(ctx, http.MethodPut, "/items/"+url.PathEscape(id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item. DELETE /items/{id}
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

// UpdateMetadata replaces the collection title and description.
// PUT /showcase/metadata
func (c *Client) UpdateMetadata(ctx context.Context, req showcase.UpdateMetadataRequest) (*showcase.ShowcaseData, error) {
	var data showcase.ShowcaseData
	if err := c.doJSON(ctx, http.MethodPut, "/showcase/metadata", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// doJSON sends an optional JSON body and decodes an optional JSON response.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
