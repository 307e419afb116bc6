package middlewares_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/5w1tchy/course-library-api/internal/api/middlewares"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func hit(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/authors", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLocalRateLimiter(t *testing.T) {
	h := mw.NewLocalRateLimiter(0.001, 2, mw.PerIPKey("rl", nil)).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1").Code)
	rec := hit(h, "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2").Code, "buckets are per key")
}

func TestPerIPKey_ForwardedFor(t *testing.T) {
	proxies, err := mw.ParseProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)

	cases := []struct {
		name, remote, xff, realIP, want string
	}{
		{"untrusted peer ignores headers", "203.0.113.7:4000", "198.51.100.1", "198.51.100.2", "rl:203.0.113.7"},
		{"trusted peer", "10.1.2.3:4000", "203.0.113.9, 10.0.0.1", "", "rl:203.0.113.9"},
		{"spoofed leading hop", "192.0.2.1:4000", "1.1.1.1, 203.0.113.9", "", "rl:203.0.113.9"},
		{"real ip fallback", "10.1.2.3:4000", "", "203.0.113.5", "rl:203.0.113.5"},
		{"all hops trusted", "10.1.2.3:4000", "10.0.0.9", "", "rl:10.1.2.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}
			assert.Equal(t, tc.want, mw.PerIPKey("rl", proxies)(req))
		})
	}
}

func TestLocalRateLimiter_IgnoresForwardedForFromClients(t *testing.T) {
	h := mw.NewLocalRateLimiter(0.001, 1, mw.PerIPKey("tb", nil)).Middleware(okHandler)

	codes := make([]int, 0, 5)
	for i := range 5 {
		req := httptest.NewRequest(http.MethodGet, "/api/authors", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestParseProxies_Invalid(t *testing.T) {
	_, err := mw.ParseProxies([]string{"10.0.0.0/8", "not-an-ip"})
	assert.ErrorContains(t, err, "not-an-ip")
}

func TestRedisLimiters_FailOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	tb := mw.NewRedisTokenBucket(rdb, 1, 1, mw.PerIPKey("rl", nil), zap.NewNop()).Middleware(okHandler)
	assert.Equal(t, http.StatusOK, hit(tb, "10.0.0.1").Code)

	sw := mw.NewRedisSlidingWindow(rdb, 1, time.Minute, mw.PerIPKey("rl", nil), zap.NewNop()).Middleware(okHandler)
	assert.Equal(t, http.StatusOK, hit(sw, "10.0.0.1").Code)
}
