// Package http is a small pooled HTTP client that reads whole responses and
// reports non-2xx statuses as coded errors.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	kerrors "github.com/kochabx/crawlerweb/errors"
)

const (
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024
)

// Observer is notified once per finished request. status is 0 when no
// response was received.
type Observer func(method string, status int, elapsed time.Duration)

// Client sends requests with pooled option and buffer objects.
type Client struct {
	client         *http.Client
	timeout        time.Duration
	baseURL        string
	header         map[string]string
	observer       Observer
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

// Option configures the HTTP client
type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout bounds each request, including reading the body. It applies to
// a copy of the client given with WithClient, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL is prefixed to request URLs that carry no scheme.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithDefaultHeader is sent with every request; per-request headers win.
func WithDefaultHeader(header map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.header, header)
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{},
		header: make(map[string]string),
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.timeout > 0 {
		cp := *c.client
		cp.Timeout = c.timeout
		c.client = &cp
	}

	return c
}

// RequestOption holds per-request settings.
type RequestOption struct {
	ctx      context.Context
	header   map[string]string
	query    map[string]any
	response any
}

func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.header, header)
	}
}

// WithQuery appends params to the URL query. Nil values are skipped and
// slices repeat the key.
func WithQuery(params map[string]any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.query = params
	}
}

// WithResponse unmarshals a successful JSON body into response.
func WithResponse(response any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.response = response
	}
}

func (opt *RequestOption) reset(defaults map[string]string) {
	opt.ctx = nil
	clear(opt.header)
	opt.header["Accept"] = ContentTypeJSON + ", " + ContentTypeText + ", */*"
	maps.Copy(opt.header, defaults)
	opt.query = nil
	opt.response = nil
}

// Request sends one request and reads the whole response. A non-2xx status
// yields a *errors.Error whose code is the status; transport failures are
// wrapped as 503, or 504 on timeout, keeping the cause.
func (cli *Client) Request(method, url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	target, err := cli.resolve(url, opt.query)
	if err != nil {
		return nil, kerrors.Wrap(err, 400, "invalid url %q", url)
	}

	ctx := opt.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := cli.createRequest(ctx, method, target, body)
	if err != nil {
		return nil, kerrors.Wrap(err, 400, "build request %s %s", method, target)
	}
	for k, v := range opt.header {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType(body))
	}

	start := time.Now()
	resp, err := cli.client.Do(req)
	if err != nil {
		cli.observe(method, 0, start)
		return nil, transportError(err, method, target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	cli.observe(method, resp.StatusCode, start)
	if err != nil {
		return nil, transportError(err, method, target)
	}

	return cli.processResponse(method, target, &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, opt.response)
}

func (cli *Client) Get(ctx context.Context, url string, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodGet, url, nil, append(opts, WithContext(ctx))...)
}

func (cli *Client) Post(ctx context.Context, url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodPost, url, body, append(opts, WithContext(ctx))...)
}

func (cli *Client) resolve(raw string, query map[string]any) (string, error) {
	if cli.baseURL != "" && !strings.Contains(raw, "://") {
		raw = cli.baseURL + "/" + strings.TrimLeft(raw, "/")
	}
	if len(query) == 0 {
		return raw, nil
	}

	b, err := FromURL(raw)
	if err != nil {
		return "", err
	}
	return b.QueryAny(query).String(), nil
}

func (cli *Client) createRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequestWithContext(ctx, method, url, nil)
	case io.Reader:
		return http.NewRequestWithContext(ctx, method, url, v)
	case string:
		return http.NewRequestWithContext(ctx, method, url, strings.NewReader(v))
	case []byte:
		return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(v))
	default:
		buf := cli.getBuffer()
		defer cli.putBuffer(buf)

		if err := json.NewEncoder(buf).Encode(v); err != nil {
			return nil, err
		}
		// the pooled buffer is reused, so the request gets its own copy
		return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bytes.Clone(buf.Bytes())))
	}
}

func (cli *Client) processResponse(method, url string, resp *Response, dest any) (*Response, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, kerrors.Upstream(resp.StatusCode, method, url, resp.Body)
	}

	if dest != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, dest); err != nil {
			return resp, kerrors.Wrap(err, 502, "decode response of %s %s", method, url)
		}
	}
	return resp, nil
}

func (cli *Client) observe(method string, status int, start time.Time) {
	if cli.observer != nil {
		cli.observer(method, status, time.Since(start))
	}
}

func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset(cli.header)
	return opt
}

func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

func contentType(body any) string {
	switch body.(type) {
	case string, []byte, io.Reader:
		return ContentTypeText
	default:
		return ContentTypeJSON
	}
}

func transportError(err error, method, url string) error {
	meta := map[string]string{"method": method, "url": url}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return kerrors.GatewayTimeout("timeout").WithMetadata(meta).WithCause(err)
	}
	return kerrors.ServiceUnavailable("network error").WithMetadata(meta).WithCause(err)
}
