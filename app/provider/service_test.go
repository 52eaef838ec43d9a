package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const postsJSON = `[
	{"id":1,"slug":"oyun-1","date":"2024-01-01T00:00:00","link":"https://example.com/oyun-1",
	 "title":{"rendered":"Oyun 1"},"content":{"rendered":"<p>birinci</p>"},"excerpt":{"rendered":""}},
	{"id":2,"slug":"oyun-2","date":"2024-01-02T00:00:00","link":"https://example.com/oyun-2",
	 "title":{"rendered":"Oyun 2"},"content":{"rendered":"<p>ikinci</p>"},"excerpt":{"rendered":""}}
]`

const postJSON = `{"id":7,"slug":"oyun-7","date":"2024-02-01T00:00:00","link":"https://example.com/oyun-7",
	"title":{"rendered":"Oyun 7"},"content":{"rendered":"<p>yedinci</p>"},"excerpt":{"rendered":""}}`

const categoriesJSON = `[
	{"id":3,"name":"Aksiyon","slug":"aksiyon","link":"https://example.com/category/aksiyon"},
	{"id":4,"name":"Yarış","slug":"yaris","link":"https://example.com/category/yaris"}
]`

// fakeWP serves a minimal WP REST API and counts requests.
type fakeWP struct {
	t     *testing.T
	calls int32
	srv   *httptest.Server

	postsStatus int
}

func newFakeWP(t *testing.T) *fakeWP {
	f := &fakeWP{t: t}

	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		if f.postsStatus != 0 {
			w.WriteHeader(f.postsStatus)
			return
		}
		_, err := w.Write([]byte(postsJSON))
		require.NoError(t, err)
	})
	mux.HandleFunc("/posts/7", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		_, err := w.Write([]byte(postJSON))
		require.NoError(t, err)
	})
	mux.HandleFunc("/posts/404", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/posts/500", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		_, err := w.Write([]byte(categoriesJSON))
		require.NoError(t, err)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeWP) callCount() int { return int(atomic.LoadInt32(&f.calls)) }

func (f *fakeWP) service(t *testing.T) *Service {
	cl, err := NewClient(slog.Default(), Config{BaseURL: f.srv.URL, PageSize: 10})
	require.NoError(t, err)
	return NewService(slog.Default(), cl, 5*time.Minute, 100)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(slog.Default(), Config{BaseURL: "not-a-url"})
	assert.Error(t, err)

	_, err = NewClient(slog.Default(), Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
}

func TestService_Games_CacheHit(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	first, err := svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Oyun 1", first[0].Title)

	second, err := svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, wp.callCount(), "second call must be served from cache")
}

func TestService_ClearCache_Refetches(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	_, err := svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)

	svc.ClearCache()

	_, err = svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, wp.callCount())
}

func TestService_ClearCacheKey(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	_, err := svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = svc.Games(context.Background(), 2, 10)
	require.NoError(t, err)

	svc.ClearCacheKey("games:1:10")

	_, err = svc.Games(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = svc.Games(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, wp.callCount(), "only the invalidated page refetches")
}

func TestService_Search_EmptyShortCircuits(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	games, err := svc.Search(context.Background(), "")
	require.NoError(t, err)

	assert.NotNil(t, games)
	assert.Empty(t, games)
	assert.Equal(t, 0, wp.callCount(), "empty query must not touch the network")
}

func TestService_Search(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	games, err := svc.Search(context.Background(), "witcher")
	require.NoError(t, err)
	assert.Len(t, games, 2)

	_, err = svc.Search(context.Background(), "witcher")
	require.NoError(t, err)
	assert.Equal(t, 1, wp.callCount())
}

func TestService_GameByID(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	g, err := svc.GameByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Oyun 7", g.Title)

	again, err := svc.GameByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, g, again)
	assert.Equal(t, 1, wp.callCount())
}

func TestService_GameByID_NotFound(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	g, err := svc.GameByID(context.Background(), 404)
	require.NoError(t, err, "upstream 404 is not an error")
	assert.Nil(t, g)

	g, err = svc.GameByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.Equal(t, 1, wp.callCount(), "not-found results are cached too")
}

func TestService_GameByID_TransportError(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	_, err := svc.GameByID(context.Background(), 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[wordpress] get game 500")
}

func TestService_GamesByCategory(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	games, err := svc.GamesByCategory(context.Background(), 3, 1, 10)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	_, err = svc.GamesByCategory(context.Background(), 3, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, wp.callCount())
}

func TestService_Categories(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Aksiyon", cats[0].Name)

	_, err = svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, wp.callCount())
}

func TestService_GamesPaginated(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	t.Run("full page implies next", func(t *testing.T) {
		page, err := svc.GamesPaginated(context.Background(), 2, 2)
		require.NoError(t, err)

		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.HasNextPage)
		assert.True(t, page.HasPreviousPage)
	})

	t.Run("short page implies last", func(t *testing.T) {
		page, err := svc.GamesPaginated(context.Background(), 1, 5)
		require.NoError(t, err)

		assert.Equal(t, 2, page.Total)
		assert.False(t, page.HasNextPage)
		assert.False(t, page.HasPreviousPage)
	})
}

func TestService_HealthCheck(t *testing.T) {
	wp := newFakeWP(t)
	svc := wp.service(t)

	assert.True(t, svc.HealthCheck(context.Background()))

	wp.postsStatus = http.StatusInternalServerError
	assert.False(t, svc.HealthCheck(context.Background()))
}

func TestService_Games_TransportErrorWrapped(t *testing.T) {
	wp := newFakeWP(t)
	wp.postsStatus = http.StatusBadGateway
	svc := wp.service(t)

	_, err := svc.Games(context.Background(), 3, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[wordpress] get page 3")
	assert.Contains(t, err.Error(), "bad status code: 502")
}
