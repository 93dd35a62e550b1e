// Package response writes and reads the {code, msg, data} JSON envelope used
// by the crawler-agent backend.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/crawlerweb/errors"
)

const (
	// SuccessCode is the envelope code of a successful call.
	SuccessCode = http.StatusOK

	defaultSuccessMsg = "success"
	defaultErrorMsg   = "operation failed"
)

// Envelope is the body of every backend API response.
type Envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data T      `json:"data,omitempty"`
}

// Err returns nil for a successful envelope and a coded error otherwise.
func (e *Envelope[T]) Err() error {
	if e.Code == SuccessCode {
		return nil
	}
	msg := e.Msg
	if msg == "" {
		msg = defaultErrorMsg
	}
	return errors.New(e.Code, "%s", msg)
}

func Success[T any](data T) *Envelope[T] {
	return &Envelope[T]{
		Code: SuccessCode,
		Msg:  defaultSuccessMsg,
		Data: data,
	}
}

func Failure(code int, msg string) *Envelope[any] {
	if msg == "" {
		msg = defaultErrorMsg
	}
	return &Envelope[any]{
		Code: code,
		Msg:  msg,
	}
}

// JSON writes a success envelope with HTTP 200.
func JSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success(data))
}

// Error aborts with an error envelope. The HTTP status follows the error code
// when it is a valid status, 500 otherwise.
func Error(c *gin.Context, err error) {
	e := errors.FromError(err)
	if e == nil {
		e = errors.Internal(defaultErrorMsg)
	}
	c.AbortWithStatusJSON(httpStatus(e.Code), Failure(e.Code, e.Message))
}

func httpStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusInternalServerError
}
