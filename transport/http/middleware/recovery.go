package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	kerrors "github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/transport/http/response"
)

// RecoveryConfig controls the panic handler.
type RecoveryConfig struct {
	StackTrace bool `json:"stack_trace" mapstructure:"stack_trace"`
}

// Recovery turns a panic into a 500. API paths get the JSON envelope, pages a
// plain text body. Broken client connections are only logged.
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{StackTrace: true}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			dump, _ := httputil.DumpRequest(c.Request, false)

			if isBrokenPipe(rec) {
				log.Warn().
					Str("error", fmt.Sprint(rec)).
					Bytes("request", dump).
					Msg("broken pipe")
				_ = c.Error(fmt.Errorf("%v", rec))
				c.Abort()
				return
			}

			event := log.Error().
				Str("error", fmt.Sprint(rec)).
				Bytes("request", dump)
			if cfg.StackTrace {
				event = event.Bytes("stack", debug.Stack())
			}
			event.Msg("panic recovered")

			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				response.Error(c, kerrors.Internal("internal server error"))
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var ne *net.OpError
	if !errors.As(err, &ne) {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
