package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type target struct {
	URL    string `json:"url" validate:"required"`
	Method string `json:"method" validate:"required,oneof=GET POST PUT DELETE PATCH HEAD OPTIONS"`
	Size   int    `json:"size" validate:"omitempty,gte=1"`
}

func TestStructValid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(&target{URL: "/api/ping", Method: "GET"}))
	assert.NoError(t, v.StructCtx(context.Background(), &target{URL: "/x", Method: "POST", Size: 3}))
}

func TestStructErrors(t *testing.T) {
	v := New()
	err := v.Struct(&target{Method: "FETCH", Size: -1})
	require.Error(t, err)

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors(), 3)

	assert.True(t, HasFieldError(err, "url"))
	assert.True(t, HasFieldError(err, "method"))
	assert.True(t, HasFieldError(err, "size"))
	assert.False(t, HasFieldError(err, "data"))
	assert.Contains(t, err.Error(), "url is a required field")
}

func TestTranslate(t *testing.T) {
	err := New().Struct(&target{Method: "GET"})
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)

	fe := ve.Errors()[0]
	assert.Equal(t, "url", fe.Field())
	assert.Equal(t, "required", fe.Tag())
	assert.NotEqual(t, fe.Message(), fe.Translate("zh"))
	assert.Equal(t, fe.Message(), fe.Translate("fr"))
}

func TestNilTarget(t *testing.T) {
	assert.Error(t, Validate.Struct(nil))
}
