package http

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Data decodes the body the way a browser client would: JSON when it parses,
// the raw text otherwise, nil when the body is empty.
func (r *Response) Data() any {
	return DecodeBody(r.Body)
}

func DecodeBody(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err == nil {
		return v
	}
	return string(body)
}
