package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/crawlerweb/api"
	"github.com/kochabx/crawlerweb/conf"
	"github.com/kochabx/crawlerweb/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/api/documents/indices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": gin.H{"news": 7, "boss_jobs": 42}})
	})
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": "pong"})
	})
	r.POST("/api/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		var v any
		require.NoError(t, json.Unmarshal(body, &v))
		c.JSON(http.StatusOK, gin.H{"body": v, "lang": c.Query("lang")})
	})
	r.GET("/api/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": "es down"})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func testEngine(t *testing.T, baseURL string) *gin.Engine {
	t.Helper()
	cfg := conf.Default()
	cfg.Backend.BaseURL = baseURL

	engine, err := newEngine(cfg, api.New("", newRequester(cfg)))
	require.NoError(t, err)
	return engine
}

func serveHTTP(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestEngineHome(t *testing.T) {
	r := testEngine(t, backend(t).URL)

	w := serveHTTP(r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("tr.index").Length())
	assert.Equal(t, "boss_jobs", doc.Find("tr.index").First().AttrOr("data-index", ""))
	assert.Equal(t, 0, doc.Find(".alert").Length())
}

func TestEngineNoRoute(t *testing.T) {
	r := testEngine(t, backend(t).URL)

	w := serveHTTP(r, http.MethodGet, "/unlisted")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestEngineProxy(t *testing.T) {
	r := testEngine(t, backend(t).URL)

	w := serveHTTP(r, http.MethodGet, "/api/documents/indices")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"msg":"success","data":{"news":7,"boss_jobs":42}}`, w.Body.String())

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	r = testEngine(t, down.URL)

	w = serveHTTP(r, http.MethodGet, "/api/documents/indices")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"code":502,"msg":"backend unavailable"}`, w.Body.String())

	// the home page still renders and shows the failure
	w = serveHTTP(r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".alert").Length())
}

func TestEngineProxyDisabled(t *testing.T) {
	cfg := conf.Default()
	cfg.Proxy.Enabled = false

	engine, err := newEngine(cfg, api.New(backend(t).URL, nil))
	require.NoError(t, err)

	w := serveHTTP(engine, http.MethodGet, "/api/documents/indices")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCmd(t *testing.T) {
	out, err := execute(t, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
	assert.Regexp(t, `/\s+Home\s+home\.html`, out)
}

func TestRequestCmd(t *testing.T) {
	base := backend(t).URL

	out, err := execute(t, "request", "--url", base+"/api/ping")
	require.NoError(t, err)
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "pong", env["data"])

	out, err = execute(t, "request", "--base-url", base, "--url", "/api/echo", "-X", "post",
		"--data", `{"x":1}`, "--param", "lang=en")
	require.NoError(t, err)
	assert.JSONEq(t, `{"body":{"x":1},"lang":"en"}`, out)

	_, err = execute(t, "request", "--url", base+"/api/fail")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, errors.Code(err))

	_, err = execute(t, "request")
	assert.Equal(t, http.StatusBadRequest, errors.Code(err))
}

func TestRequestOptionsConfig(t *testing.T) {
	cfg := (&requestOptions{url: "/a", method: "post", data: "plain text"}).config()
	assert.Equal(t, "POST", cfg.Method)
	assert.Equal(t, "plain text", cfg.Data)
	assert.Nil(t, cfg.Params)

	cfg = (&requestOptions{url: "/a", method: "get", params: map[string]string{"page": "1"}}).config()
	assert.Equal(t, map[string]any{"page": "1"}, cfg.Params)
	assert.Nil(t, cfg.Data)
}
