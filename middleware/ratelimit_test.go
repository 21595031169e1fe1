// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, "test-salt")
	rl.now = func() time.Time { return now }

	// Burst of two, then blocked
	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("Expected burst requests to be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected third request to be limited")
	}

	// Other clients have their own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected a different client to be allowed")
	}

	// One token refills per second
	now = now.Add(time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestRateLimiter_SweepsStaleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, "test-salt")
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	now = now.Add(2 * visitorTTL)
	rl.Allow("10.0.0.3")

	if len(rl.visitors) != 1 {
		t.Errorf("Expected stale visitors to be swept, have %d", len(rl.visitors))
	}
	if _, ok := rl.visitors["10.0.0.3"]; ok {
		t.Error("Expected visitors to be keyed by hash, not raw IP")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, "test-salt")
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/ideas/1/vote", nil)
		req.RemoteAddr = "192.168.1.7:4000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 429], got %v", codes)
	}
}
