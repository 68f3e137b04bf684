package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/spechtlabs/ecsview/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func getReady(t *testing.T, store cache.Store) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	newHealthRouter(store).ServeHTTP(w, req)
	return w
}

func TestReadyProbe(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		w := getReady(t, cache.NewMemoryStore(cache.DefaultPrefix, 0))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ready","reason":"cache store is reachable"}`, w.Body.String())
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = client.Close() })
		mr.Close()

		w := getReady(t, cache.NewRedisStoreFromClient(cache.DefaultPrefix, 0, client))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Contains(t, w.Body.String(), `"status":"not ready"`)
	})

	t.Run("no store", func(t *testing.T) {
		w := getReady(t, nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	newHealthRouter(cache.NewMemoryStore(cache.DefaultPrefix, 0)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "go_goroutines")
}
