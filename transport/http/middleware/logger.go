package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerConfig 访问日志配置
type LoggerConfig struct {
	HeaderEnabled  bool
	HandlerEnabled bool
	// SkipPaths 按路径前缀匹配
	SkipPaths []string
	Filter    func(c *gin.Context) bool
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths: []string{"/health", "/metrics", "/static"},
	}
}

// Logger 每个请求输出一条访问日志
func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipLogging(c, config) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		}
		event = event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("uri", c.Request.RequestURI).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP())

		if config.HeaderEnabled {
			event = event.Any("headers", c.Request.Header)
		}
		if config.HandlerEnabled {
			event = event.Str("handler", c.HandlerName())
		}
		if id := RequestIDFrom(c); id != "" {
			event = event.Str("request_id", id)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		event.Send()
	}
}

func shouldSkipLogging(c *gin.Context, config LoggerConfig) bool {
	if config.Filter != nil {
		return config.Filter(c)
	}
	return skippedPathPrefixes(c, config.SkipPaths...)
}
