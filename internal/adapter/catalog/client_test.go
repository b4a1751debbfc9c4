package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		URL:        srv.URL,
		Token:      "token-123",
		MaxResults: 20,
		MaxRetries: 2,
	}, nil, nil)
	require.NoError(t, err)
	c.backoff = time.Millisecond
	return c
}

func TestNewClientRequiresURLAndToken(t *testing.T) {
	_, err := NewClient(Config{Token: "t"}, nil, nil)
	assert.Error(t, err)
	_, err = NewClient(Config{URL: "http://localhost"}, nil, nil)
	assert.Error(t, err)
}

func TestListLibrary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"books":[
			{"id":"a","title":"Dune","authors":["Frank Herbert"],"shelf":"currentlyReading",
			 "imageLinks":{"smallThumbnail":"http://img/a-small","thumbnail":"http://img/a"}},
			{"id":"b","title":"Emma","shelf":"read","imageLinks":{"thumbnail":"http://img/b"}},
			{"id":"c","title":"Odd","shelf":"someday"},
			{"id":"","title":"Broken"}
		]}`)
	})

	entries, err := c.ListLibrary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Dune", entries[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, entries[0].Authors)
	assert.Equal(t, domain.ShelfCurrentlyReading, entries[0].Shelf)
	assert.Equal(t, "http://img/a-small", entries[0].CoverURL)

	assert.Equal(t, domain.ShelfRead, entries[1].Shelf)
	assert.Equal(t, "http://img/b", entries[1].CoverURL)

	assert.Equal(t, domain.ShelfNone, entries[2].Shelf, "unknown shelves land on none")
}

func TestSearchByTerm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "art", req.Query)
		assert.Equal(t, 20, req.MaxResults)

		io.WriteString(w, `{"books":[{"id":"1","title":"The Art of War"},{"id":"2","title":"Art History"}]}`)
	})

	books, err := c.SearchByTerm(context.Background(), "art")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "The Art of War", books[0].Title)
}

func TestSearchByTermErrorMarker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"books":{"error":"empty query","items":[]}}`)
	})

	_, err := c.SearchByTerm(context.Background(), "zzzz")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestSetShelf(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/books/abc 1", r.URL.Path)

		var req UpdateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wantToRead", req.Shelf)

		io.WriteString(w, `{"currentlyReading":[],"wantToRead":["abc 1"],"read":[]}`)
	})

	require.NoError(t, c.SetShelf(context.Background(), "abc 1", domain.ShelfWantToRead))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSetShelfIsNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := c.SetShelf(context.Background(), "a", domain.ShelfRead)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestReadsRetryServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"books":[]}`)
	})

	entries, err := c.ListLibrary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestReadsGiveUpAfterMaxRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.ListLibrary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthFailed},
		{"forbidden", http.StatusForbidden, domain.ErrAuthFailed},
		{"not found", http.StatusNotFound, domain.ErrEntryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			err := c.SetShelf(context.Background(), "a", domain.ShelfRead)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{URL: url, Token: "t"}, nil, nil)
	require.NoError(t, err)

	err = c.SetShelf(context.Background(), "a", domain.ShelfRead)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"books":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListLibrary(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetShelfToleratesUnconfirmedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"id on another shelf", `{"currentlyReading":["a"],"wantToRead":[],"read":[]}`},
		{"unreadable body", `not json`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			assert.NoError(t, c.SetShelf(context.Background(), "a", domain.ShelfRead))
		})
	}
}

func TestSearchByTermUnreadableMarker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"books":"nothing here"}`)
	})

	_, err := c.SearchByTerm(context.Background(), "zzzz")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}
