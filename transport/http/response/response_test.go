package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/crawlerweb/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, "pong")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"msg":"success","data":"pong"}`, w.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "coded",
			err:        errors.BadGateway("backend unavailable"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"code":502,"msg":"backend unavailable"}`,
		},
		{
			name:       "business code",
			err:        errors.New(10001, "index exists"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":10001,"msg":"index exists"}`,
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":500,"msg":"boom"}`,
		},
		{
			name:       "nil",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":500,"msg":"operation failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestEnvelopeErr(t *testing.T) {
	var ok Envelope[map[string]int64]
	require.NoError(t, json.Unmarshal([]byte(`{"code":200,"msg":"success","data":{"news":3}}`), &ok))
	assert.NoError(t, ok.Err())
	assert.Equal(t, int64(3), ok.Data["news"])

	var failed Envelope[any]
	require.NoError(t, json.Unmarshal([]byte(`{"code":500,"msg":"es down"}`), &failed))
	err := failed.Err()
	assert.Equal(t, 500, errors.Code(err))
	assert.Equal(t, "es down", errors.FromError(err).Message)

	assert.Equal(t, "operation failed", errors.FromError((&Envelope[any]{Code: 400}).Err()).Message)
}
