package http

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLBuilderBuild(t *testing.T) {
	tests := []struct {
		name     string
		builder  *URLBuilder
		expected string
	}{
		{
			name: "full",
			builder: NewURLBuilder().
				Scheme("https").
				Host("example.com").
				Port("8080").
				Path("/api/v1").
				Query("param1", "value1").
				Query("param2", "value2").
				Fragment("section"),
			expected: "https://example.com:8080/api/v1?param1=value1&param2=value2#section",
		},
		{
			name:     "minimal",
			builder:  NewURLBuilder().Scheme("http").Host("localhost"),
			expected: "http://localhost",
		},
		{
			name:     "zero port ignored",
			builder:  NewURLBuilder().Scheme("http").Host("localhost").Port("0").Path("/x"),
			expected: "http://localhost/x",
		},
		{
			name:     "path only",
			builder:  NewURLBuilder().Path("/api/documents/indices"),
			expected: "/api/documents/indices",
		},
		{
			name:     "repeated query",
			builder:  NewURLBuilder().Scheme("http").Host("test.com").Query("filter", "a").Query("filter", "b"),
			expected: "http://test.com?filter=a&filter=b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.builder.Build())
		})
	}
}

func TestURLBuilderAppendPath(t *testing.T) {
	assert.Equal(t, "/api/v1/users", NewURLBuilder().Path("/api").AppendPath("", "v1", "", "users").String())
	assert.Equal(t, "api/v1", NewURLBuilder().AppendPath("api", "v1").String())
	assert.Equal(t, "/api", NewURLBuilder().Path("/api").AppendPath().String())
}

func TestURLBuilderQueryAny(t *testing.T) {
	got := NewURLBuilder().Path("/api/documents/news").QueryAny(map[string]any{
		"page":  2,
		"size":  10,
		"skip":  nil,
		"tags":  []string{"a", "b"},
		"exact": true,
	}).String()
	assert.Equal(t, "/api/documents/news?exact=true&page=2&size=10&tags=a&tags=b", got)
}

func TestURLBuilderSetQueryAndClone(t *testing.T) {
	original := NewURLBuilder().Path("/api").Query("k", "1").Query("k", "2")
	clone := original.Clone()
	clone.Query("k", "3")

	assert.Len(t, original.query["k"], 2)
	assert.Len(t, clone.query["k"], 3)

	original.SetQuery("k", "x")
	assert.Equal(t, "/api?k=x", original.String())
}

func TestFromURL(t *testing.T) {
	b, err := FromURL("https://example.com:8080/api/v1?param1=value1#section")
	require.NoError(t, err)
	assert.Equal(t, "https", b.scheme)
	assert.Equal(t, "example.com", b.host)
	assert.Equal(t, "8080", b.port)
	assert.Equal(t, "/api/v1", b.path.String())
	assert.Equal(t, "section", b.fragment)
	assert.Equal(t, "value1", b.query.Get("param1"))

	b, err = FromURL("/api/ping?x=1")
	require.NoError(t, err)
	assert.Equal(t, "/api/ping?x=1&y=2", b.Query("y", "2").String())

	_, err = FromURL("://invalid")
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/api/v1/users", Join("/api", "v1", "users"))
	assert.Equal(t, "api/v1", Join("", "api", "v1"))
	assert.Equal(t, "/api", Join("/api"))
	assert.Equal(t, "", Join("", "", ""))
}

func ExampleURLBuilder() {
	u := NewURLBuilder().
		Scheme("http").
		Host("127.0.0.1").
		Port("8080").
		AppendPath("api", "documents", "news").
		Query("page", "1").
		Query("size", "10").
		Build()

	fmt.Println(u)
	// Output: http://127.0.0.1:8080/api/documents/news?page=1&size=10
}
