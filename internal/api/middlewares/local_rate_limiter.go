package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalRateLimiter is the in-process token bucket used when no Redis is
// configured. Limits are per key and per process.
type LocalRateLimiter struct {
	keyFn   KeyFunc
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	limiters map[string]*localEntry
	lastGC   time.Time
}

type localEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewLocalRateLimiter(ratePerSecond float64, burst int, keyFn KeyFunc) *LocalRateLimiter {
	return &LocalRateLimiter{
		keyFn:    keyFn,
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
		limiters: make(map[string]*localEntry),
	}
}

func (l *LocalRateLimiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.idleTTL {
		for k, e := range l.limiters {
			if now.Sub(e.seen) > l.idleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.seen = now
	return e.lim
}

func (l *LocalRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := l.now()
		lim := l.get(l.keyFn(r), now)

		res := lim.ReserveN(now, 1)
		w.Header().Set("X-RateLimit-Policy", "token-bucket")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.burst))

		if !res.OK() {
			tooManyRequests(w, 1)
			return
		}
		if delay := res.DelayFrom(now); delay > 0 {
			res.CancelAt(now)
			w.Header().Set("X-RateLimit-Remaining", "0")
			tooManyRequests(w, int64(math.Ceil(delay.Seconds())))
			return
		}
		remaining := int(math.Max(0, math.Floor(lim.TokensAt(now))))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}
