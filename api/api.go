// Package api binds the crawler-agent backend endpoints on top of the
// request wrapper. Every endpoint answers with the {code, msg, data} envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/request"
	"github.com/kochabx/crawlerweb/transport/http/response"
)

// Client talks to one backend.
type Client struct {
	req  *request.Requester
	base string
}

// New binds baseURL (may be empty when the Requester resolves paths itself).
// A nil req uses request.Default().
func New(baseURL string, req *request.Requester) *Client {
	if req == nil {
		req = request.Default()
	}
	return &Client{
		req:  req,
		base: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) Documents() *Documents {
	return &Documents{c: c}
}

func (c *Client) SearchAgent() *SearchAgent {
	return &SearchAgent{c: c}
}

// call sends cfg and unwraps the envelope into T.
func call[T any](ctx context.Context, c *Client, cfg request.Config) (T, error) {
	var zero T
	path := cfg.URL
	cfg.URL = c.base + path

	data, err := c.req.Do(ctx, cfg)
	if err != nil {
		return zero, fromUpstream(err)
	}

	env, err := request.Decode[response.Envelope[T]](data)
	if err != nil {
		return zero, errors.BadGateway("unexpected response from %s", path).WithCause(err)
	}
	if err := env.Err(); err != nil {
		return zero, err
	}
	return env.Data, nil
}

// fromUpstream converts a non-2xx response carrying an envelope into the
// envelope's code and message. Anything else is returned unchanged.
func fromUpstream(err error) error {
	var e *errors.Error
	if !errors.As(err, &e) {
		return err
	}
	body := bytes.TrimSpace(e.Body())
	if !bytes.HasPrefix(body, []byte("{")) {
		return err
	}

	var env response.Envelope[json.RawMessage]
	if json.Unmarshal(body, &env) != nil || env.Code == 0 || env.Code == response.SuccessCode {
		return err
	}
	return errors.New(env.Code, "%s", env.Msg).WithMetadata(e.Metadata).WithCause(err)
}
