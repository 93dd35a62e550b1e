package errors

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Status constructors for the codes this front-end produces or maps upstream failures to.

func BadRequest(format string, args ...any) *Error {
	return New(400, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(404, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(500, format, args...)
}

func BadGateway(format string, args ...any) *Error {
	return New(502, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(503, format, args...)
}

func GatewayTimeout(format string, args ...any) *Error {
	return New(504, format, args...)
}

// MaxMessageBody caps how much of a failed response body becomes the message.
const MaxMessageBody = 512

// Upstream builds the error reported for a non-2xx backend response.
// Code is the HTTP status; method and url are kept as metadata. The message
// is the body cut to MaxMessageBody bytes on a rune boundary, Body keeps all of it.
func Upstream(status int, method, url string, body []byte) *Error {
	err := New(status, "request failed with status code %d", status)
	if msg := truncate(strings.TrimSpace(string(body)), MaxMessageBody); msg != "" {
		err = New(status, "%s", msg)
	}
	if len(body) > 0 {
		err.body = bytes.Clone(body)
	}
	return err.WithMetadata(map[string]string{"method": method, "url": url})
}

func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
