package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/request"
)

// backend mimics the crawler-agent controllers.
func backend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ok := func(c *gin.Context, data any) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": data})
	}
	fail := func(c *gin.Context, status int, msg string) {
		c.JSON(status, gin.H{"code": status, "msg": msg, "data": nil})
	}

	r.GET("/api/documents/indices", func(c *gin.Context) {
		ok(c, map[string]int64{"boss_jobs": 42, "news": 7})
	})
	r.GET("/api/documents/:index", func(c *gin.Context) {
		if c.Param("index") == "broken" {
			fail(c, http.StatusInternalServerError, "failed to get docs by pages: es down")
			return
		}
		ok(c, []map[string]any{{"index": c.Param("index"), "page": c.Query("page"), "size": c.Query("size")}})
	})
	r.POST("/api/searchagent", func(c *gin.Context) {
		var body struct{ Query, Setting string }
		require.NoError(t, c.ShouldBindJSON(&body))
		ok(c, "answer to "+body.Query+" using "+body.Setting)
	})
	r.POST("/api/searchagent/test", func(c *gin.Context) {
		var q QueryWithPrompt
		require.NoError(t, c.ShouldBindJSON(&q))
		ok(c, q.PromptChatMode+":"+q.Query)
	})
	r.POST("/api/searchagent/setting", func(c *gin.Context) {
		ok(c, "saved")
	})
	r.GET("/api/searchagent/setting", func(c *gin.Context) {
		if c.Query("index") == "none" {
			// the backend reports a business failure with HTTP 200 in some paths
			c.JSON(http.StatusOK, gin.H{"code": 404, "msg": "no setting file found for index: none"})
			return
		}
		ok(c, []string{"prompts/" + c.Query("index") + "_20250101120000.json"})
	})
	r.GET("/api/plain", func(c *gin.Context) { c.String(http.StatusOK, "not an envelope") })

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestDocuments(t *testing.T) {
	c := New(backend(t).URL, request.New())
	ctx := context.Background()

	counts, err := c.Documents().Indices(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"boss_jobs": 42, "news": 7}, counts)

	docs, err := c.Documents().Page(ctx, "boss jobs", 2, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "boss jobs", docs[0]["index"])
	assert.Equal(t, "2", docs[0]["page"])
	assert.Equal(t, "10", docs[0]["size"])
}

func TestDocumentsPageArguments(t *testing.T) {
	calls := 0
	stub := request.DoerFunc(func(context.Context, *request.Config) (*request.Response, error) {
		calls++
		return &request.Response{}, nil
	})
	c := New("", request.New(request.WithDoer(stub)))

	_, err := c.Documents().Page(context.Background(), "news", 0, 10)
	assert.Equal(t, http.StatusBadRequest, errors.Code(err))
	_, err = c.Documents().Page(context.Background(), "", 1, 10)
	assert.Equal(t, http.StatusBadRequest, errors.Code(err))
	assert.Zero(t, calls)
}

func TestUpstreamEnvelopeError(t *testing.T) {
	c := New(backend(t).URL, request.New())

	_, err := c.Documents().Page(context.Background(), "broken", 1, 10)
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
	assert.Equal(t, "failed to get docs by pages: es down", e.Message)
	assert.Equal(t, http.MethodGet, e.Metadata["method"])
	assert.NotNil(t, errors.Unwrap(err))
}

func TestUpstreamLongEnvelopeError(t *testing.T) {
	msg := "failed to stream: " + strings.Repeat("模型超时", 60)

	r := gin.New()
	r.POST("/api/searchagent/test", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": msg, "data": nil})
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	_, err := New(server.URL, request.New()).SearchAgent().Test(context.Background(), QueryWithPrompt{Index: "boss_jobs", Query: "go"})

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
	assert.Equal(t, msg, e.Message)
	assert.True(t, utf8.ValidString(e.Message))
	assert.Equal(t, http.MethodPost, e.Metadata["method"])
}

func TestSearchAgent(t *testing.T) {
	c := New(backend(t).URL+"/", request.New())
	ctx := context.Background()

	answer, err := c.SearchAgent().Invoke(ctx, "golang jobs", "prompts/boss_jobs.json")
	require.NoError(t, err)
	assert.Equal(t, "answer to golang jobs using prompts/boss_jobs.json", answer)

	answer, err = c.SearchAgent().Test(ctx, QueryWithPrompt{Index: "boss_jobs", Query: "go", PromptChatMode: "chat"})
	require.NoError(t, err)
	assert.Equal(t, "chat:go", answer)

	saved, err := c.SearchAgent().SaveSetting(ctx, QueryWithPrompt{Index: "boss_jobs"})
	require.NoError(t, err)
	assert.Equal(t, "saved", saved)

	files, err := c.SearchAgent().Settings(ctx, "boss_jobs")
	require.NoError(t, err)
	assert.Equal(t, []string{"prompts/boss_jobs_20250101120000.json"}, files)

	_, err = c.SearchAgent().Settings(ctx, "none")
	assert.Equal(t, http.StatusNotFound, errors.Code(err))

	_, err = c.SearchAgent().Settings(ctx, "")
	assert.Equal(t, http.StatusBadRequest, errors.Code(err))
}

func TestWrapperErrorUnchanged(t *testing.T) {
	sentinel := context.DeadlineExceeded
	stub := request.DoerFunc(func(context.Context, *request.Config) (*request.Response, error) {
		return nil, sentinel
	})

	_, err := New("", request.New(request.WithDoer(stub))).Documents().Indices(context.Background())
	assert.True(t, err == sentinel)
}

func TestUnexpectedBody(t *testing.T) {
	c := New(backend(t).URL, request.New())

	_, err := call[string](context.Background(), c, request.Config{URL: "/api/plain", Method: http.MethodGet})
	assert.Equal(t, http.StatusBadGateway, errors.Code(err))
}

func TestQueryWithPromptJSON(t *testing.T) {
	b, err := json.Marshal(QueryWithPrompt{Index: "i", Query: "q", PromptEsRAGMode: "rag", PromptChatMode: "chat"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":"i","query":"q","promptEsRAGMode":"rag","promptChatMode":"chat"}`, string(b))
}
