package request

import (
	"context"
	"reflect"

	khttp "github.com/kochabx/crawlerweb/core/net/http"
)

type httpDoer struct {
	client khttp.Clienter
}

// NewHTTPDoer sends calls through client, or a fresh khttp.Client when nil.
// Non-2xx responses come back as *errors.Error carrying the status code.
func NewHTTPDoer(client khttp.Clienter) Doer {
	if client == nil {
		client = khttp.New()
	}
	return &httpDoer{client: client}
}

func (d *httpDoer) Do(ctx context.Context, cfg *Config) (*Response, error) {
	resp, err := d.client.Request(cfg.Method, cfg.URL, absent(cfg.Data),
		khttp.WithContext(ctx),
		khttp.WithQuery(cfg.Params),
	)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Data:   resp.Data(),
	}, nil
}

// absent maps typed nils to an untyped nil so they send no body.
func absent(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}
