package migrate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/internal/cmd/application"
	"github.com/agentstation/boorusync/internal/cmd/output"
	"github.com/agentstation/boorusync/internal/runlock"
	"github.com/agentstation/boorusync/pkg/errors"
	"github.com/agentstation/boorusync/pkg/logging"
)

// bakabooruServer serves one page with a single PNG post and records the
// writes it receives.
type bakabooruServer struct {
	mu      sync.Mutex
	writes  []string
	sources []string
}

func (s *bakabooruServer) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, r.Method+" "+r.URL.Path)
}

func (s *bakabooruServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tagcategories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	mux.HandleFunc("POST /tagcategories", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = io.WriteString(w, `{"id": 5, "name": "animal", "color": "#ff0000", "order": 2}`)
	})
	mux.HandleFunc("GET /tags", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"items": []}`)
	})
	mux.HandleFunc("POST /tags", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = io.WriteString(w, `{"id": 7, "name": "Cat", "categoryId": 5}`)
	})
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"items": [{"id": 1, "contentType": "image/png", "relativePath": "a/cat.png", "tags": []}]}`)
	})
	mux.HandleFunc("GET /posts/1/content", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("png-bytes"))
	})
	mux.HandleFunc("POST /posts/1/tags", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /posts/1/sources", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	mux.HandleFunc("PUT /posts/1/sources", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		var sources []string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sources))
		s.mu.Lock()
		s.sources = sources
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func oxibooruHandler(searchResult string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tag-categories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"results": [{"name": "animal", "color": "#ff0000", "order": 2}]}`)
	})
	mux.HandleFunc("POST /posts/reverse-search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, searchResult)
	})
	return mux
}

const exactMatch = `{
  "exactPost": {
    "id": 9,
    "tags": [{"names": ["Cat", "feline"], "category": "animal"}],
    "source": "https://example.com/cat"
  },
  "similarPosts": []
}`

func newSettings(t *testing.T, bakabooruURL, oxibooruURL string) *application.Settings {
	t.Helper()
	return &application.Settings{
		BakabooruAPI:       bakabooruURL,
		OxibooruAPI:        oxibooruURL,
		PageSize:           10,
		StartPage:          1,
		MaxSimilarDistance: 0.05,
		Timeout:            5 * time.Second,
		DJXLPath:           "djxl",
		LockDir:            t.TempDir(),
	}
}

func TestRun(t *testing.T) {
	target := &bakabooruServer{}
	baka := httptest.NewServer(target.handler(t))
	defer baka.Close()
	oxi := httptest.NewServer(oxibooruHandler(exactMatch))
	defer oxi.Close()

	settings := newSettings(t, baka.URL, oxi.URL)
	var out bytes.Buffer

	err := Run(context.Background(), logging.NewNopLogger(), settings, &out, nil, output.FormatJSON)
	require.NoError(t, err)

	var result boorusync.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Exact)
	assert.Equal(t, 1, result.Tags.Discovered)
	assert.Equal(t, 1, result.Tags.Added)
	assert.Equal(t, 1, result.Sources.Added)
	assert.Equal(t, 0, result.Failures)
	assert.NotEmpty(t, result.RunID)

	assert.Equal(t, []string{
		"POST /tagcategories",
		"POST /tags",
		"POST /posts/1/tags",
		"PUT /posts/1/sources",
	}, target.writes)
	assert.Equal(t, []string{"https://example.com/cat"}, target.sources)

	// The lock is released after the run.
	lock, err := runlock.Acquire(settings.LockDir, settings.BakabooruAPI)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}

func TestRunDryRun(t *testing.T) {
	target := &bakabooruServer{}
	baka := httptest.NewServer(target.handler(t))
	defer baka.Close()
	oxi := httptest.NewServer(oxibooruHandler(exactMatch))
	defer oxi.Close()

	settings := newSettings(t, baka.URL, oxi.URL)
	settings.DryRun = true
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), logging.NewNopLogger(), settings, &out, nil, output.FormatJSON))

	var result boorusync.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Tags.Added)
	assert.Empty(t, target.writes)
}

func TestRunInvalidSettings(t *testing.T) {
	settings := newSettings(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	settings.BakabooruUsername = "admin"

	var out bytes.Buffer
	err := Run(context.Background(), logging.NewNopLogger(), settings, &out, nil, output.FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Empty(t, out.String(), "no summary before a run starts")
}

func TestRunHeldLock(t *testing.T) {
	settings := newSettings(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	lock, err := runlock.Acquire(settings.LockDir, settings.BakabooruAPI)
	require.NoError(t, err)
	defer func() { _ = lock.Release() }()

	err = Run(context.Background(), logging.NewNopLogger(), settings, io.Discard, nil, output.FormatJSON)
	assert.ErrorIs(t, err, errors.ErrLocked)
}

func TestRunFatalErrorStillPrintsSummary(t *testing.T) {
	baka := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"description": "database offline"}`)
	}))
	defer baka.Close()
	oxi := httptest.NewServer(oxibooruHandler(exactMatch))
	defer oxi.Close()

	var out bytes.Buffer
	err := Run(context.Background(), logging.NewNopLogger(), newSettings(t, baka.URL, oxi.URL), &out, nil, output.FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database offline")
	assert.False(t, errors.IsConfigError(err))
	assert.Contains(t, out.String(), `"scanned": 0`)
}

func TestNewCommand(t *testing.T) {
	target := &bakabooruServer{}
	baka := httptest.NewServer(target.handler(t))
	defer baka.Close()
	oxi := httptest.NewServer(oxibooruHandler(`{"exactPost": null, "similarPosts": []}`))
	defer oxi.Close()

	app := &application.Mock{
		OutputFormatFunc: func() string { return "yaml" },
		SettingsFunc: func() (*application.Settings, error) {
			return newSettings(t, baka.URL, oxi.URL), nil
		},
	}

	cmd := NewCommand(app)
	var out, status bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&status)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "unmatched: 1")
	assert.Equal(t, "✓ Migration complete: 0 of 1 posts matched\n", status.String())
	assert.Empty(t, target.writes)

	for name := range flagKeys {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestNewCommandBadFormat(t *testing.T) {
	app := &application.Mock{OutputFormatFunc: func() string { return "xml" }}
	cmd := NewCommand(app)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.True(t, errors.IsConfigError(err))
}
