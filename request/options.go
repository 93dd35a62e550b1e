package request

import (
	"github.com/kochabx/crawlerweb/log"
)

type Option func(*Requester)

// WithDoer replaces the HTTP client used to make calls.
func WithDoer(d Doer) Option {
	return func(r *Requester) {
		r.doer = d
	}
}

// WithTrace logs every call at debug level.
func WithTrace(enabled bool) Option {
	return func(r *Requester) {
		r.trace = enabled
	}
}

// WithLogger sets the trace logger; log.G is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(r *Requester) {
		r.logger = l
	}
}
