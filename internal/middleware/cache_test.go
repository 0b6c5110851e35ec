package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newCacheRouter(t *testing.T) (*gin.Engine, *redis.Client, *int) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hits := 0
	router := gin.New()
	router.Use(ResponseCache(rdb, time.Minute))
	router.GET("/api/registry", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, []string{"plates"})
	})
	return router, rdb, &hits
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestResponseCacheServesSecondRead(t *testing.T) {
	router, _, hits := newCacheRouter(t)

	first := get(router, "/api/registry")
	require.Equal(t, http.StatusOK, first.Code)
	// Result() snapshots the headers as they went out on the wire, so this
	// fails if the miss marker is only set after the body was written.
	assert.Equal(t, "MISS", first.Result().Header.Get("X-Cache"))

	second := get(router, "/api/registry")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *hits, "the handler must only run on the miss")
}

func TestResponseCacheIgnoresOtherPaths(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router := gin.New()
	router.Use(ResponseCache(rdb, time.Minute))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := get(router, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.False(t, mr.Exists(RegistryCacheKey))
}

func TestCacheInvalidatorPurgesRegistry(t *testing.T) {
	router, rdb, hits := newCacheRouter(t)
	inv := NewCacheInvalidator(rdb)

	get(router, "/api/registry")
	require.Equal(t, 1, *hits)

	inv.PurgeRegistry(context.Background())

	w := get(router, "/api/registry")
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 2, *hits, "a purge must force the next read back to the handler")
}
