package oxibooru

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/errors"
)

func newTestClient(t *testing.T, authHeader string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/", authHeader)
	require.NoError(t, err)
	return c
}

func TestTagCategories(t *testing.T) {
	t.Run("defaults and auth header", func(t *testing.T) {
		c := newTestClient(t, "Token dXNlcjp0b2tlbg==", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/tag-categories", r.URL.Path)
			assert.Equal(t, "Token dXNlcjp0b2tlbg==", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"results": [
				{"name": " Artist ", "color": "#ff0000", "order": 2},
				{"name": "meta", "color": null},
				{"name": "", "color": "#000000"}
			]}`))
		})

		categories, err := c.TagCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, catalogs.OriginCategory{Name: "Artist", Color: "#ff0000", Order: 2}, categories[0])
		assert.Equal(t, catalogs.OriginCategory{Name: "meta", Color: "#808080", Order: 0}, categories[1])

		// Blank names are dropped once indexed.
		assert.Equal(t, 2, catalogs.NewOriginCategories(categories).Len())
	})

	t.Run("no auth header", func(t *testing.T) {
		c := newTestClient(t, "  ", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{}`))
		})
		categories, err := c.TagCategories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("invalid results", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results": "nope"}`))
		})
		_, err := c.TagCategories(context.Background())
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestReverseSearch(t *testing.T) {
	payload, err := os.ReadFile(filepath.Join("testdata", "reverse_search.json"))
	require.NoError(t, err)

	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts/reverse-search", r.URL.Path)

		file, header, err := r.FormFile("content")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("jpeg-bytes"), data)
		assert.Equal(t, "dog.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		_, _ = w.Write(payload)
	})

	result, err := c.ReverseSearch(context.Background(), []byte("jpeg-bytes"), "dog.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Nil(t, result.Exact)
	require.Len(t, result.Similar, 2)

	first := result.Similar[0]
	assert.Equal(t, catalogs.NewDistance(0.031), first.Distance)
	assert.Equal(t, 501, first.Post.ID)
	assert.Equal(t, "Cat", first.Post.Tags[0].CanonicalName())
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, first.Post.Source.Values())

	assert.Equal(t, catalogs.NewDistance(0.2), result.Similar[1].Distance)
	assert.Empty(t, result.Similar[1].Post.Source.Values())
}

func TestReverseSearchErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"title": "Internal error"}`))
		})
		_, err := c.ReverseSearch(context.Background(), []byte("x"), "a.png", "image/png")
		assert.ErrorIs(t, err, errors.ErrServiceUnavailable)
		assert.Contains(t, err.Error(), "oxibooru reverse search failed: HTTP 500 - Internal error")
	})

	t.Run("payload not an object", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		_, err := c.ReverseSearch(context.Background(), []byte("x"), "a.png", "image/png")
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}
