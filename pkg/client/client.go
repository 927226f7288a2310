// Package client is a small HTTP client for the docview REST API. It
// satisfies loader.Fetcher, so a progressive loader can stream chunks
// from a remote docview process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dshills/docview-mcp/pkg/types"
)

// Client talks to a docview HTTP API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// New creates a client for the API at baseURL, e.g. "http://127.0.0.1:7333".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL, httpc: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PutContent stores text under id and returns the entry metadata.
// A zero chunkSize uses the server's default.
func (c *Client) PutContent(ctx context.Context, id, text string, chunkSize int) (types.EntryInfo, error) {
	body := map[string]any{"id": id, "text": text, "chunk_size": chunkSize}
	var info types.EntryInfo
	err := c.do(ctx, http.MethodPost, "/v1/content", body, &info)
	return info, err
}

// GetInfo fetches entry metadata.
func (c *Client) GetInfo(ctx context.Context, id string) (types.EntryInfo, error) {
	var info types.EntryInfo
	err := c.do(ctx, http.MethodGet, "/v1/content/"+url.PathEscape(id), nil, &info)
	return info, err
}

// FetchChunk fetches one chunk by index. This is the loader.Fetcher method.
func (c *Client) FetchChunk(ctx context.Context, id string, index int) (types.ChunkResponse, error) {
	var resp types.ChunkResponse
	path := "/v1/content/" + url.PathEscape(id) + "/chunks/" + strconv.Itoa(index)
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

// FetchChunkAt fetches the chunk owning the given character offset.
func (c *Client) FetchChunkAt(ctx context.Context, id string, offset int) (types.ChunkResponse, error) {
	var resp types.ChunkResponse
	path := "/v1/content/" + url.PathEscape(id) + "/chunks?offset=" + strconv.Itoa(offset)
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

// FetchAll fetches an entry's whole content in one response. Fails with
// types.ErrTooLarge when the entry spans more than one chunk.
func (c *Client) FetchAll(ctx context.Context, id string) (types.ChunkResponse, error) {
	var resp types.ChunkResponse
	err := c.do(ctx, http.MethodGet, "/v1/content/"+url.PathEscape(id)+"/full", nil, &resp)
	return resp, err
}

// Format runs a named transform on the entry server-side and returns the
// derived entry's metadata.
func (c *Client) Format(ctx context.Context, id, transform string, chunkSize int) (types.EntryInfo, error) {
	body := map[string]any{"transform": transform, "chunk_size": chunkSize}
	var info types.EntryInfo
	err := c.do(ctx, http.MethodPost, "/v1/content/"+url.PathEscape(id)+"/format", body, &info)
	return info, err
}

// Clear removes an entry. Clearing an absent entry is not an error.
func (c *Client) Clear(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/content/"+url.PathEscape(id), nil, nil)
}

// Transforms lists the transform names the server supports.
func (c *Client) Transforms(ctx context.Context) ([]string, error) {
	var body map[string][]string
	if err := c.do(ctx, http.MethodGet, "/v1/transforms", nil, &body); err != nil {
		return nil, err
	}
	return body["transforms"], nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError converts an error response back into the sentinel errors the
// rest of the code matches on, so errors.Is works the same against a remote
// server as against an in-process service.
func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, types.ErrNotFound)
	case http.StatusRequestedRangeNotSatisfiable:
		return fmt.Errorf("%s: %w", msg, types.ErrOutOfRange)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%s: %w", msg, types.ErrTooLarge)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, types.ErrInvalidArgument)
	case http.StatusUnprocessableEntity:
		return types.NewTransformError("", fmt.Errorf("%s", msg))
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}
