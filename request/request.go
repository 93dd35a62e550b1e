// Package request issues a single HTTP call described by a Config and hands
// back the decoded response body. Failures are returned exactly as the
// underlying client produced them.
package request

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kochabx/crawlerweb/core/validator"
	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/log"
)

var (
	ErrMissingURL    = errors.BadRequest("request url is required")
	ErrMissingMethod = errors.BadRequest("request method is required")
)

// Config describes one call. Data is the body and Params the query string;
// both are optional and a nil value means absent.
type Config struct {
	URL    string         `json:"url" validate:"required"`
	Method string         `json:"method" validate:"required"`
	Data   any            `json:"data,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is what a Doer returns. Data is the decoded body.
type Response struct {
	Status int
	Header http.Header
	Data   any
}

// Doer performs the HTTP call.
type Doer interface {
	Do(ctx context.Context, cfg *Config) (*Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(ctx context.Context, cfg *Config) (*Response, error)

func (f DoerFunc) Do(ctx context.Context, cfg *Config) (*Response, error) {
	return f(ctx, cfg)
}

// Requester sends Configs through a Doer.
type Requester struct {
	doer   Doer
	trace  bool
	logger *log.Logger
}

func New(opts ...Option) *Requester {
	r := &Requester{}
	for _, opt := range opts {
		opt(r)
	}
	if r.doer == nil {
		r.doer = NewHTTPDoer(nil)
	}
	return r
}

// Do checks cfg, makes exactly one call and returns the response data.
// Errors from the Doer are returned as is.
func (r *Requester) Do(ctx context.Context, cfg Config) (any, error) {
	if err := check(&cfg); err != nil {
		return nil, err
	}

	resp, err := r.doer.Do(ctx, &cfg)
	if r.trace {
		r.traceCall(&cfg, resp, err)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Data, nil
}

func (r *Requester) traceCall(cfg *Config, resp *Response, err error) {
	logger := r.logger
	if logger == nil {
		logger = log.G
	}

	event := logger.Debug().Str("method", cfg.Method).Str("url", cfg.URL)
	if resp != nil {
		event = event.Int("status", resp.Status).Interface("data", resp.Data)
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("request")
}

func check(cfg *Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return ErrMissingURL
	}
	err := validator.Validate.Struct(cfg)
	switch {
	case err == nil:
		return nil
	case validator.HasFieldError(err, "url"):
		return ErrMissingURL
	case validator.HasFieldError(err, "method"):
		return ErrMissingMethod
	default:
		return errors.BadRequest("invalid request config").WithCause(err)
	}
}

var std = New()

// SetDefault replaces the Requester used by the package level Do.
func SetDefault(r *Requester) {
	std = r
}

// Default returns the Requester used by the package level Do.
func Default() *Requester {
	return std
}

// Do sends cfg with the default Requester.
func Do(ctx context.Context, cfg Config) (any, error) {
	return std.Do(ctx, cfg)
}

// Decode re-types untyped response data into T through a JSON round trip.
func Decode[T any](data any) (T, error) {
	var out T
	if data == nil {
		return out, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
