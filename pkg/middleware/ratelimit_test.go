package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	h := RateLimit(limiter, 2, "test", zap.NewNop())(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", codes[2])
	}

	// another client has its own counter
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", rec.Code)
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 1; i <= 3; i++ {
		n, _ := limiter.Incr(context.Background(), "k")
		if n != int64(i) {
			t.Fatalf("hit %d: got count %d", i, n)
		}
	}

	now = now.Add(time.Minute)
	if n, _ := limiter.Incr(context.Background(), "k"); n != 1 {
		t.Fatalf("expected counter reset, got %d", n)
	}
}

type failingLimiter struct{}

func (failingLimiter) Incr(ctx context.Context, key string) (int64, error) {
	return 0, errors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(failingLimiter{}, 1, "test", zap.NewNop())(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected limiter errors to let requests through, got %d", rec.Code)
		}
	}
}
