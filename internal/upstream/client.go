// Package upstream talks to the remote TelconGH API. It owns the request
// description type, the configured HTTP connector, and nothing else:
// response interpretation belongs to the normalize package.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RawResponse is the transport-level result of a call. A non-2xx status
// is still a RawResponse; only failing to reach the server at all is an
// error.
type RawResponse struct {
	Status  int
	Body    []byte
	Headers http.Header
}

// OK reports whether the status is in the 2xx range.
func (r RawResponse) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// Config holds client configuration.
type Config struct {
	// BaseURL is the remote API root, e.g. https://api.telcongh.example.
	BaseURL string
	// APIKey is an optional bearer fallback used when a spec carries no
	// Authorization header of its own.
	APIKey string
	// Timeout applies to every call. Zero means 30 seconds.
	Timeout time.Duration
	// DefaultHeaders are merged into every request; per-spec headers win
	// on conflict.
	DefaultHeaders map[string]string
	// HTTPClient overrides the underlying client; used by tests.
	HTTPClient *http.Client
}

// Client is the single configured connector to the remote API.
type Client struct {
	baseURL        string
	apiKey         string
	defaultHeaders map[string]string
	httpClient     *http.Client
}

// New creates a client for the remote TelconGH API.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:        baseURL,
		apiKey:         cfg.APIKey,
		defaultHeaders: cfg.DefaultHeaders,
		httpClient:     httpClient,
	}, nil
}

// Send executes a RequestSpec. Transport failures (unreachable host,
// timeout) return an error; anything the server answered, including
// error statuses, comes back as a RawResponse.
func (c *Client) Send(ctx context.Context, spec RequestSpec) (RawResponse, error) {
	var (
		bodyReader  io.Reader
		contentType string
	)

	switch {
	case spec.Form != nil:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for _, part := range spec.Form {
			if part.Content != nil {
				fw, err := w.CreateFormFile(part.Name, part.Filename)
				if err != nil {
					return RawResponse{}, fmt.Errorf("build multipart body: %w", err)
				}
				if _, err := fw.Write(part.Content); err != nil {
					return RawResponse{}, fmt.Errorf("build multipart body: %w", err)
				}
				continue
			}
			if err := w.WriteField(part.Name, part.Value); err != nil {
				return RawResponse{}, fmt.Errorf("build multipart body: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return RawResponse{}, fmt.Errorf("build multipart body: %w", err)
		}
		bodyReader = buf
		contentType = w.FormDataContentType()

	case spec.Body != nil:
		jsonBody, err := json.Marshal(spec.Body)
		if err != nil {
			return RawResponse{}, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, c.buildURL(spec), bodyReader)
	if err != nil {
		return RawResponse{}, fmt.Errorf("build request: %w", err)
	}

	for k, v := range c.mergeHeaders(spec.Headers) {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get("Authorization") == "" && c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return RawResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return RawResponse{
		Status:  resp.StatusCode,
		Body:    respBody,
		Headers: resp.Header,
	}, nil
}

func (c *Client) buildURL(spec RequestSpec) string {
	u := c.baseURL + spec.Path
	if len(spec.Query) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range spec.Query {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

// mergeHeaders combines default headers with per-spec headers; the spec
// wins on conflict.
func (c *Client) mergeHeaders(extra map[string]string) map[string]string {
	headers := make(map[string]string, len(c.defaultHeaders)+len(extra))
	for k, v := range c.defaultHeaders {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}
	return headers
}
