package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRealIP_IgnoresForwardedHeaderFromUntrustedPeer(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	h := RealIP(nil)(RateLimit(limiter, 2, "test", zap.NewNop())(okHandler()))

	rejected := 0
	for i := range 10 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}

	if rejected != 8 {
		t.Fatalf("expected 8 rejected requests, got %d", rejected)
	}
}

func TestRealIP_TrustedProxyUsesRightmostUntrustedHop(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.5"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}

	limiter := NewMemoryLimiter(time.Minute)
	var seen []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.RemoteAddr)
		w.WriteHeader(http.StatusOK)
	})
	h := RealIP(trusted)(RateLimit(limiter, 2, "test", zap.NewNop())(inner))

	rejected := 0
	for i := range 5 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.2.3:4000"
		// spoofed leftmost entry, real client appended by the proxy chain
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.1.1.%d, 203.0.113.7, 192.168.1.5", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}

	if rejected != 3 {
		t.Fatalf("expected 3 rejected requests, got %d", rejected)
	}
	if len(seen) == 0 || seen[0] != "203.0.113.7" {
		t.Fatalf("expected client 203.0.113.7, got %v", seen)
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	if _, err := ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Fatal("expected error for invalid proxy")
	}
}
