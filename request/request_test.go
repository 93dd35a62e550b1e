package request

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/log"
)

type stubDoer struct {
	calls []Config
	resp  *Response
	err   error
	// echo copies the request body into the response data.
	echo bool
}

func (s *stubDoer) Do(_ context.Context, cfg *Config) (*Response, error) {
	s.calls = append(s.calls, *cfg)
	if s.err != nil {
		return nil, s.err
	}
	if s.echo {
		return &Response{Status: 200, Data: cfg.Data}, nil
	}
	return s.resp, nil
}

func TestDoReturnsData(t *testing.T) {
	stub := &stubDoer{resp: &Response{Status: 200, Data: "pong"}}

	data, err := New(WithDoer(stub)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	require.NoError(t, err)
	assert.Equal(t, "pong", data)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "/api/ping", stub.calls[0].URL)
}

func TestDoEchoesBody(t *testing.T) {
	stub := &stubDoer{echo: true}
	body := map[string]any{"x": 1}

	data, err := New(WithDoer(stub)).Do(context.Background(), Config{URL: "/api/echo", Method: "POST", Data: body})
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestDoPropagatesErrorIdentity(t *testing.T) {
	sentinel := io.ErrUnexpectedEOF
	stub := &stubDoer{err: sentinel}

	data, err := New(WithDoer(stub)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	assert.Nil(t, data)
	assert.True(t, err == sentinel)
	assert.Len(t, stub.calls, 1)

	coded := errors.BadGateway("bad gateway")
	stub = &stubDoer{err: coded}
	_, err = New(WithDoer(stub)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	assert.Same(t, coded, err)
}

func TestDoAbsentEqualsNil(t *testing.T) {
	omitted := &stubDoer{resp: &Response{Data: "ok"}}
	explicit := &stubDoer{resp: &Response{Data: "ok"}}

	a, errA := New(WithDoer(omitted)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	b, errB := New(WithDoer(explicit)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET", Data: nil, Params: nil})

	assert.Equal(t, a, b)
	assert.Equal(t, errA, errB)
	assert.Equal(t, omitted.calls, explicit.calls)
}

func TestDoPreconditions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "missing url", cfg: Config{Method: "GET"}, want: ErrMissingURL},
		{name: "blank url", cfg: Config{URL: "  ", Method: "GET"}, want: ErrMissingURL},
		{name: "missing method", cfg: Config{URL: "/api/ping"}, want: ErrMissingMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubDoer{resp: &Response{Data: "unused"}}
			_, err := New(WithDoer(stub)).Do(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 400, errors.Code(err))
			assert.Empty(t, stub.calls)
		})
	}
}

func TestDoNilResponse(t *testing.T) {
	data, err := New(WithDoer(DoerFunc(func(context.Context, *Config) (*Response, error) {
		return nil, nil
	}))).Do(context.Background(), Config{URL: "/", Method: "HEAD"})
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriter(&buf, log.WithLevel(zerolog.DebugLevel))
	stub := &stubDoer{resp: &Response{Status: 200, Data: "pong"}}

	r := New(WithDoer(stub), WithTrace(true), WithLogger(logger))
	_, err := r.Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/ping", line["url"])
	assert.EqualValues(t, 200, line["status"])

	buf.Reset()
	_, _ = New(WithDoer(stub), WithLogger(logger)).Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	assert.Zero(t, buf.Len())
}

func TestHTTPDoer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ping":
			assert.Equal(t, "10", r.URL.Query().Get("size"))
			assert.Zero(t, r.ContentLength)
			_, _ = io.WriteString(w, `"pong"`)
		case "/api/echo":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	r := New()
	ctx := context.Background()

	data, err := r.Do(ctx, Config{URL: server.URL + "/api/ping", Method: "GET", Params: map[string]any{"size": 10}})
	require.NoError(t, err)
	assert.Equal(t, "pong", data)

	data, err = r.Do(ctx, Config{URL: server.URL + "/api/echo", Method: "POST", Data: map[string]any{"x": 1}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": float64(1)}, data)

	var nilBody map[string]any
	data, err = r.Do(ctx, Config{URL: server.URL + "/api/ping", Method: "GET", Data: nilBody, Params: map[string]any{"size": 10}})
	require.NoError(t, err)
	assert.Equal(t, "pong", data)

	_, err = r.Do(ctx, Config{URL: server.URL + "/missing", Method: "GET"})
	assert.Equal(t, http.StatusNotFound, errors.Code(err))
}

func TestPackageDo(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(New(WithDoer(&stubDoer{resp: &Response{Data: "pong"}})))
	data, err := Do(context.Background(), Config{URL: "/api/ping", Method: "GET"})
	require.NoError(t, err)
	assert.Equal(t, "pong", data)
}

func TestDecode(t *testing.T) {
	type counts map[string]int64

	got, err := Decode[counts](map[string]any{"news": float64(12), "blog": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, counts{"news": 12, "blog": 3}, got)

	empty, err := Decode[[]string](nil)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = Decode[int]("not a number")
	assert.Error(t, err)
}
