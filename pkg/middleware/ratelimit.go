package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"meeting-scheduler/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts hits for a key inside the current fixed window.
type Limiter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// RateLimit rejects clients exceeding limit requests per window. Limiter
// errors fail open so an unavailable Redis never blocks bookings.
func RateLimit(limiter Limiter, limit int, prefix string, logger *zap.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 60
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + clientKey(r)
			count, err := limiter.Incr(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limiter error", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.Int64("count", count))
				utils.ResponseTooManyRequests(w, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ==================== REDIS ====================

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter shares counters between API instances.
type RedisLimiter struct {
	rdb    redis.Scripter
	window time.Duration
}

func NewRedisLimiter(rdb redis.Scripter, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{rdb: rdb, window: window}
}

func (l *RedisLimiter) Incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// ==================== IN-MEMORY ====================

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiter is used when no Redis address is configured.
type MemoryLimiter struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryLimiter(w time.Duration) *MemoryLimiter {
	if w <= 0 {
		w = time.Minute
	}
	return &MemoryLimiter{
		window:  w,
		now:     time.Now,
		windows: map[string]*window{},
	}
}

func (l *MemoryLimiter) Incr(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	win := l.windows[key]
	if win == nil || !now.Before(win.resetAt) {
		win = &window{resetAt: now.Add(l.window)}
		l.windows[key] = win
	}
	win.count++

	if len(l.windows) > 10000 {
		for k, v := range l.windows {
			if !now.Before(v.resetAt) {
				delete(l.windows, k)
			}
		}
	}

	return win.count, nil
}
