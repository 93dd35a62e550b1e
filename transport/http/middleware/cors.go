package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CorsConfig is loaded from the cors section of the config file.
type CorsConfig struct {
	Enabled          bool     `json:"enabled" mapstructure:"enabled"`
	AllowOrigins     []string `json:"allow_origins" mapstructure:"allow_origins" default:"*"`
	AllowMethods     []string `json:"allow_methods" mapstructure:"allow_methods" default:"GET,POST,PUT,DELETE,PATCH,OPTIONS"`
	AllowHeaders     []string `json:"allow_headers" mapstructure:"allow_headers" default:"Origin,Content-Type,Accept,X-Request-ID"`
	AllowCredentials bool     `json:"allow_credentials" mapstructure:"allow_credentials"`
	ExposeHeaders    []string `json:"expose_headers" mapstructure:"expose_headers" default:"X-Request-ID"`
	MaxAge           int      `json:"max_age" mapstructure:"max_age" default:"43200"`
}

func Cors() gin.HandlerFunc {
	return CorsWithConfig(CorsConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        43200,
	})
}

// CorsWithConfig answers preflight requests itself. "*" in AllowOrigins
// echoes back any origin.
func CorsWithConfig(config CorsConfig) gin.HandlerFunc {
	anyOrigin := slices.Contains(config.AllowOrigins, "*")
	methods := strings.Join(config.AllowMethods, ",")
	headers := strings.Join(config.AllowHeaders, ",")
	expose := strings.Join(config.ExposeHeaders, ",")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || (!anyOrigin && !slices.Contains(config.AllowOrigins, origin)) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)
		if config.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if expose != "" {
			h.Set("Access-Control-Expose-Headers", expose)
		}
		h.Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
