package api

import (
	"context"
	"net/http"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/request"
)

// QueryWithPrompt is a query plus the prompts the agent runs it with.
type QueryWithPrompt struct {
	Index           string `json:"index"`
	Query           string `json:"query"`
	PromptEsRAGMode string `json:"promptEsRAGMode"`
	PromptChatMode  string `json:"promptChatMode"`
}

// SearchAgent drives the retrieval agent.
type SearchAgent struct {
	c *Client
}

// Invoke answers query with a saved setting; setting is the path returned by Settings.
func (s *SearchAgent) Invoke(ctx context.Context, query, setting string) (string, error) {
	return call[string](ctx, s.c, request.Config{
		URL:    "/api/searchagent",
		Method: http.MethodPost,
		Data:   map[string]string{"query": query, "setting": setting},
	})
}

// Test answers q.Query with the prompts given inline.
func (s *SearchAgent) Test(ctx context.Context, q QueryWithPrompt) (string, error) {
	return call[string](ctx, s.c, request.Config{
		URL:    "/api/searchagent/test",
		Method: http.MethodPost,
		Data:   q,
	})
}

// SaveSetting stores the prompts of q.Index on the backend.
func (s *SearchAgent) SaveSetting(ctx context.Context, q QueryWithPrompt) (string, error) {
	if q.Index == "" {
		return "", errors.BadRequest("index is required")
	}
	return call[string](ctx, s.c, request.Config{
		URL:    "/api/searchagent/setting",
		Method: http.MethodPost,
		Data:   q,
	})
}

// Settings lists the saved setting files of index.
func (s *SearchAgent) Settings(ctx context.Context, index string) ([]string, error) {
	if index == "" {
		return nil, errors.BadRequest("index is required")
	}
	return call[[]string](ctx, s.c, request.Config{
		URL:    "/api/searchagent/setting",
		Method: http.MethodGet,
		Params: map[string]any{"index": index},
	})
}
