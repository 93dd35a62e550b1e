package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecureConfig is loaded from the secure section of the config file.
type SecureConfig struct {
	Enabled               bool   `json:"enabled" mapstructure:"enabled" default:"true"`
	SSLRedirect           bool   `json:"ssl_redirect" mapstructure:"ssl_redirect"`
	STSSeconds            int64  `json:"sts_seconds" mapstructure:"sts_seconds"`
	ContentSecurityPolicy string `json:"content_security_policy" mapstructure:"content_security_policy" default:"default-src 'self'; style-src 'self' 'unsafe-inline'"`
	ReferrerPolicy        string `json:"referrer_policy" mapstructure:"referrer_policy" default:"strict-origin-when-cross-origin"`
}

// Secure sets the usual browser hardening headers on every response.
func Secure(config SecureConfig) gin.HandlerFunc {
	sc := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: config.ContentSecurityPolicy,
		ReferrerPolicy:        config.ReferrerPolicy,
	}
	if config.SSLRedirect {
		sc.SSLRedirect = true
		sc.SSLProxyHeaders = map[string]string{"X-Forwarded-Proto": "https"}
	}
	if config.STSSeconds > 0 {
		sc.STSSeconds = config.STSSeconds
		sc.STSIncludeSubdomains = true
	}
	return secure.New(sc)
}
