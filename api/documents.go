package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/request"
)

// Documents reads the crawled document store.
type Documents struct {
	c *Client
}

// Indices returns the document count of every index.
func (d *Documents) Indices(ctx context.Context) (map[string]int64, error) {
	return call[map[string]int64](ctx, d.c, request.Config{
		URL:    "/api/documents/indices",
		Method: http.MethodGet,
	})
}

// Page returns one page of documents of index. page and size start at 1.
func (d *Documents) Page(ctx context.Context, index string, page, size int) ([]map[string]any, error) {
	if index == "" {
		return nil, errors.BadRequest("index is required")
	}
	if page < 1 || size < 1 {
		return nil, errors.BadRequest("page and size must be at least 1, got page=%d size=%d", page, size)
	}
	return call[[]map[string]any](ctx, d.c, request.Config{
		URL:    "/api/documents/" + url.PathEscape(index),
		Method: http.MethodGet,
		Params: map[string]any{"page": page, "size": size},
	})
}
