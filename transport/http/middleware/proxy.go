package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/crawlerweb/transport/http/response"
)

// ProxyConfig is loaded from the proxy section of the config file.
type ProxyConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" default:"true"`
	Prefix  string `json:"prefix" mapstructure:"prefix" default:"/api" validate:"startswith=/"`
}

// Proxy forwards requests to target, keeping path and query. The request id
// travels upstream in X-Request-ID. When the backend cannot be reached the
// client gets a 502 envelope.
func Proxy(target *url.URL) gin.HandlerFunc {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn().Err(err).Str("uri", r.RequestURI).Msg("backend unreachable")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(response.Failure(http.StatusBadGateway, "backend unavailable"))
		},
	}

	return func(c *gin.Context) {
		if id := RequestIDFrom(c); id != "" {
			c.Request.Header.Set(RequestIDHeader, id)
		}
		rp.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

// MountProxy registers Proxy for every method under prefix.
func MountProxy(r gin.IRouter, prefix string, target *url.URL) {
	prefix = "/" + strings.Trim(prefix, "/")
	r.Any(prefix+"/*path", Proxy(target))
}
