package http

import (
	"fmt"
	"net/url"
	"path"
	"reflect"
	"slices"
	"strings"
)

// URLBuilder 链式构建 URL
type URLBuilder struct {
	scheme   string
	host     string
	port     string
	path     strings.Builder
	query    url.Values
	fragment string
}

func NewURLBuilder() *URLBuilder {
	return &URLBuilder{
		query: make(url.Values),
	}
}

func (b *URLBuilder) Scheme(scheme string) *URLBuilder {
	b.scheme = scheme
	return b
}

func (b *URLBuilder) Host(host string) *URLBuilder {
	b.host = host
	return b
}

// Port 设置端口，忽略 "" 和 "0"
func (b *URLBuilder) Port(port string) *URLBuilder {
	if port != "" && port != "0" {
		b.port = port
	}
	return b
}

// Path replaces the path. An empty path is ignored.
func (b *URLBuilder) Path(p string) *URLBuilder {
	if p != "" {
		b.path.Reset()
		b.path.WriteString(p)
	}
	return b
}

// AppendPath 追加路径段，跳过空段
func (b *URLBuilder) AppendPath(segments ...string) *URLBuilder {
	joined := Join(b.path.String(), segments...)
	b.path.Reset()
	b.path.WriteString(joined)
	return b
}

func (b *URLBuilder) Query(key, value string) *URLBuilder {
	b.query.Add(key, value)
	return b
}

func (b *URLBuilder) SetQuery(key, value string) *URLBuilder {
	b.query.Set(key, value)
	return b
}

// QueryAny adds loosely typed params. Nil values are skipped, slices and
// arrays add one value per element, everything else is formatted with %v.
func (b *URLBuilder) QueryAny(params map[string]any) *URLBuilder {
	for k, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				b.query.Add(k, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		b.query.Add(k, fmt.Sprint(v))
	}
	return b
}

func (b *URLBuilder) Fragment(fragment string) *URLBuilder {
	b.fragment = fragment
	return b
}

// Build returns the URL. Query keys are sorted by url.Values.Encode.
func (b *URLBuilder) Build() string {
	u := &url.URL{
		Scheme:   b.scheme,
		Host:     b.buildHost(),
		Path:     b.path.String(),
		Fragment: b.fragment,
	}
	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}
	return u.String()
}

func (b *URLBuilder) String() string {
	return b.Build()
}

func (b *URLBuilder) Clone() *URLBuilder {
	c := &URLBuilder{
		scheme:   b.scheme,
		host:     b.host,
		port:     b.port,
		fragment: b.fragment,
		query:    make(url.Values, len(b.query)),
	}
	c.path.WriteString(b.path.String())
	for k, v := range b.query {
		c.query[k] = slices.Clone(v)
	}
	return c
}

func (b *URLBuilder) buildHost() string {
	if b.host == "" || b.port == "" {
		return b.host
	}
	return b.host + ":" + b.port
}

// FromURL 从完整 URL 或路径创建构建器
func FromURL(rawURL string) (*URLBuilder, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	b := &URLBuilder{
		scheme:   u.Scheme,
		host:     u.Hostname(),
		port:     u.Port(),
		fragment: u.Fragment,
		query:    u.Query(),
	}
	b.path.WriteString(u.Path)
	return b, nil
}

// Join is path.Join that skips empty segments.
func Join(base string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if base != "" {
		parts = append(parts, base)
	}
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return path.Join(parts...)
}
