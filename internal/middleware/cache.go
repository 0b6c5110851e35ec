package middleware

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	RegistryCacheKey = "cache:registry:list"
	RSVPCacheKey     = "cache:rsvp:list"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

// cacheKeyFrom maps the two cacheable list endpoints to fixed keys. Everything
// else passes through uncached.
func cacheKeyFrom(c *gin.Context) string {
	if c.Request.Method != "GET" {
		return ""
	}
	switch c.FullPath() {
	case "/api/registry":
		return RegistryCacheKey
	case "/api/rsvp":
		return RSVPCacheKey
	default:
		return ""
	}
}

// ResponseCache serves the registry and guest lists out of Redis. Entries are
// short-lived and purged by the CacheInvalidator on every write path.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw

		// Headers leave with the first body write, so the miss marker must be
		// in place before the handler runs.
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		// Only 2xx responses are worth replaying.
		if bw.Status() >= 200 && bw.Status() < 300 {
			entry := cachedBody{
				Status: bw.Status(),
				Header: c.Writer.Header(),
				Body:   buf.Bytes(),
			}
			var out bytes.Buffer
			if err := gob.NewEncoder(&out).Encode(entry); err == nil {
				_ = rdb.Set(c.Request.Context(), key, out.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheInvalidator drops cached lists after a write so readers never see a
// stale registry total.
type CacheInvalidator struct {
	rdb *redis.Client
}

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb}
}

func (ci *CacheInvalidator) PurgeRegistry(ctx context.Context) {
	_ = ci.rdb.Del(ctx, RegistryCacheKey).Err()
}

func (ci *CacheInvalidator) PurgeRSVPs(ctx context.Context) {
	_ = ci.rdb.Del(ctx, RSVPCacheKey).Err()
}
