package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Yamashou/scalegen/metadata"
)

type Client struct {
	client   *http.Client
	header   http.Header
	endpoint string
}

// NewClient creates a new http client wrapper.
func NewClient(endpoint string, options ...Option) *Client {
	client := &Client{
		endpoint: endpoint,
		client:   http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}

	return client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

func WithHTTPHeader(header http.Header) Option {
	return func(c *Client) {
		c.header = header
	}
}

// Get fetches the endpoint and returns the response body and its content type.
func (c *Client) Get(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create get request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("http status code: %d, response body: %s", resp.StatusCode, body)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// Registry fetches and decodes the type registry served by the endpoint.
// YAML is used when the server says so; anything else is decoded as JSON.
func (c *Client) Registry(ctx context.Context) (*metadata.Registry, error) {
	body, contentType, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}

	format := metadata.FormatJSON
	if strings.Contains(contentType, "yaml") {
		format = metadata.FormatYAML
	}

	registry, err := metadata.Decode(body, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.endpoint, err)
	}

	return registry, nil
}
