package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/eazybee/internal/config"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCatalogClient(&config.Config{
		TMDBAPIKey:       "key123",
		TMDBBaseURL:      srv.URL,
		TMDBImageBaseURL: "https://image.tmdb.org/t/p",
		TMDBTimeout:      5 * time.Second,
	})
}

func TestCatalogAppendsAPIKeyAndReturnsBody(t *testing.T) {
	var gotPath, gotKey, gotQuery, gotPage string
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1,"unknown_field":"kept"}]}`))
	})

	payload, err := client.Search(context.Background(), "star wars & co", 0)
	require.NoError(t, err)
	assert.Equal(t, "/search/multi", gotPath)
	assert.Equal(t, "key123", gotKey)
	assert.Equal(t, "star wars & co", gotQuery)
	assert.Equal(t, "1", gotPage)

	results := payload["results"].([]any)
	assert.Equal(t, "kept", results[0].(map[string]any)["unknown_field"])
}

func TestCatalogPaths(t *testing.T) {
	var paths []string
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.Query().Get("with_genres"))
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := client.Trending(ctx, "all", "week")
	require.NoError(t, err)
	_, err = client.Popular(ctx, "tv")
	require.NoError(t, err)
	_, err = client.Details(ctx, "movie", 550)
	require.NoError(t, err)
	_, err = client.ByGenre(ctx, "movie", 28, 2)
	require.NoError(t, err)
	_, err = client.Genres(ctx, "tv")
	require.NoError(t, err)
	_, err = client.Videos(ctx, "movie", 550)
	require.NoError(t, err)
	_, err = client.Recommendations(ctx, "tv", 1399)
	require.NoError(t, err)
	_, err = client.Similar(ctx, "movie", 550)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/trending/all/week?",
		"/tv/popular?",
		"/movie/550?",
		"/discover/movie?28",
		"/genre/tv/list?",
		"/movie/550/videos?",
		"/tv/1399/recommendations?",
		"/movie/550/similar?",
	}, paths)
}

func TestCatalogErrorTaxonomy(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		kind    error
		message string
	}{
		{http.StatusNotFound, `{}`, ErrNotFound, "Content not found. It may have been removed or is unavailable."},
		{http.StatusTooManyRequests, `{}`, ErrRateLimited, "Too many requests. Please try again later."},
		{http.StatusUnauthorized, `{"status_message":"Invalid API key"}`, ErrRequestFailed, "Failed to fetch data: Invalid API key"},
		{http.StatusInternalServerError, `oops`, ErrRequestFailed, "Failed to fetch data: Internal Server Error"},
	}
	for _, tc := range cases {
		client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		})

		_, err := client.Details(context.Background(), "movie", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tc.kind), "status %d", tc.status)
		assert.Equal(t, tc.message, UserMessage(err))

		var ce *CatalogError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, tc.status, ce.Status)
	}
}

func TestCatalogNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewCatalogClient(&config.Config{TMDBBaseURL: url, TMDBTimeout: time.Second})
	_, err := client.Popular(context.Background(), "movie")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "Failed to fetch data. Please check your connection and try again.", UserMessage(err))
}

func TestCatalogMalformedBody(t *testing.T) {
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err := client.Popular(context.Background(), "movie")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestCatalogRejectsUnknownMediaType(t *testing.T) {
	var calls int32
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	_, err := client.Popular(context.Background(), "all")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.Trending(context.Background(), "movie", "month")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCatalogHonorsContext(t *testing.T) {
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Popular(ctx, "movie")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImageURL(t *testing.T) {
	client := NewCatalogClient(&config.Config{TMDBImageBaseURL: "https://image.tmdb.org/t/p"})
	assert.Equal(t, "/placeholder.svg", client.ImageURL("", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", client.ImageURL("/abc.jpg", "original"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", client.ImageURL("/abc.jpg", ""))
}

func TestTagResults(t *testing.T) {
	in := Payload{"page": 1.0, "results": []any{
		map[string]any{"id": 1.0},
		map[string]any{"id": 2.0, "media_type": "tv"},
	}}

	missing := TagResults(in, "movie", false)
	results := missing["results"].([]any)
	assert.Equal(t, "movie", results[0].(map[string]any)["media_type"])
	assert.Equal(t, "tv", results[1].(map[string]any)["media_type"])

	blank := TagResults(Payload{"results": []any{map[string]any{"id": 3.0, "media_type": ""}}}, "movie", false)
	assert.Equal(t, "movie", blank["results"].([]any)[0].(map[string]any)["media_type"])

	forced := TagResults(in, "movie", true)
	assert.Equal(t, "movie", forced["results"].([]any)[1].(map[string]any)["media_type"])

	// 原响应不被修改
	_, has := in["results"].([]any)[0].(map[string]any)["media_type"]
	assert.False(t, has)
	assert.Nil(t, TagResults(nil, "movie", true))
}

func TestCatalogCacheDedupesAndSkipsErrors(t *testing.T) {
	var calls int32
	fail := atomic.Bool{}
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if fail.Load() {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	cache := NewCatalogCache(client, 10, time.Minute)
	ctx := context.Background()

	_, err := cache.Popular(ctx, "movie")
	require.NoError(t, err)
	_, err = cache.Popular(ctx, "movie")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	fail.Store(true)
	_, err = cache.Popular(ctx, "tv")
	assert.ErrorIs(t, err, ErrRateLimited)
	_, err = cache.Popular(ctx, "tv")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	cache.Purge()
	fail.Store(false)
	_, err = cache.Popular(ctx, "movie")
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestCatalogCacheSharedFetchSurvivesCallerCancel(t *testing.T) {
	var calls int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	client := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"results":[{"id":1}]}`))
	})
	cache := NewCatalogCache(client, 10, time.Minute)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := cache.Popular(ctxA, "movie")
		errA <- err
	}()
	<-started

	type result struct {
		payload Payload
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		p, err := cache.Popular(context.Background(), "movie")
		resB <- result{p, err}
	}()

	cancelA()
	err := <-errA
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrRequestFailed)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Len(t, b.payload["results"], 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCatalogCacheImageURL(t *testing.T) {
	cache := NewCatalogCache(NewCatalogClient(&config.Config{TMDBImageBaseURL: "https://image.tmdb.org/t/p"}), 10, time.Minute)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", cache.ImageURL("/p.jpg", "w500"))
	assert.Equal(t, "/placeholder.svg", cache.ImageURL("", "original"))
}

func TestIDGeneratorIsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := &IDGenerator{now: func() time.Time { return fixed }}

	first := g.Next()
	assert.Equal(t, int64(1700000000000), first)
	assert.Equal(t, first+1, g.Next())
	assert.Equal(t, first+2, g.Next())

	seen := map[int64]bool{}
	gen := NewIDGenerator()
	for range 1000 {
		id := gen.Next()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
