// Package middleware holds the gin middleware the front-end server installs.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	klog "github.com/kochabx/crawlerweb/log"
)

var log = klog.G

// SetLogger replaces the logger used by every middleware in this package.
func SetLogger(logger *klog.Logger) {
	log = logger
}

func skippedPathPrefixes(c *gin.Context, prefixes ...string) bool {
	path := c.Request.URL.Path
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, strings.TrimRight(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
