// Package client is a Go client for the cv-builder REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/render"

	"github.com/google/uuid"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cv-builder: %d %s", e.Status, e.Message)
}

// Client talks to one cv-builder server. Transport failures are wrapped in
// domain.ErrNetwork; idempotent requests are retried with backoff first.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	Backoff  time.Duration
}

// New returns a client for baseURL, falling back to CV_API_URL and then localhost.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("CV_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Attempts: 3,
		Backoff:  time.Second,
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = b
	}

	attempts := 1
	if idempotent(method) && c.Attempts > 1 {
		attempts = c.Attempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return readResponse(resp)
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-time.After(c.Backoff * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, lastErr)
}

func readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return b, nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &msg) == nil && msg.Message != "" {
		apiErr.Message = msg.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return nil, apiErr
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	b, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(b, out)
}

func (c *Client) List(ctx context.Context, ownerID string) ([]domain.CVSummary, error) {
	path := "/cv"
	if ownerID != "" {
		path += "?ownerId=" + url.QueryEscape(ownerID)
	}
	var out []domain.CVSummary
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	var out domain.CVRecord
	err := c.doJSON(ctx, http.MethodGet, "/cv/"+id.String(), nil, &out)
	return out, err
}

type createReq struct {
	OwnerID  string         `json:"ownerId,omitempty"`
	Name     string         `json:"name"`
	Template string         `json:"template,omitempty"`
	Data     model.Document `json:"data"`
}

func (c *Client) Create(ctx context.Context, ownerID, name string, d model.Document) (domain.CVRecord, error) {
	var out domain.CVRecord
	err := c.doJSON(ctx, http.MethodPost, "/cv", createReq{OwnerID: ownerID, Name: name, Data: d}, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, name string, d model.Document) (domain.CVRecord, error) {
	var out domain.CVRecord
	err := c.doJSON(ctx, http.MethodPut, "/cv/"+id.String(), createReq{Name: name, Data: d}, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/cv/"+id.String(), nil, nil)
}

func (c *Client) Duplicate(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	var out domain.CVRecord
	err := c.doJSON(ctx, http.MethodPost, "/cv/"+id.String()+"/duplicate", nil, &out)
	return out, err
}

// GeneratePDF asks the server to export d and returns the PDF bytes.
func (c *Client) GeneratePDF(ctx context.Context, d model.Document, template string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/pdf/generate", map[string]interface{}{
		"cvData":   d,
		"template": template,
	})
}

// Preview returns the server-side layout of d.
func (c *Client) Preview(ctx context.Context, d model.Document) (render.Layout, error) {
	var out render.Layout
	err := c.doJSON(ctx, http.MethodPost, "/preview", d, &out)
	return out, err
}
