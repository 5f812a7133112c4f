package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/physai/bookrag/internal/config"
)

func TestIPRateLimiterAllowsBurstThenDenies(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 2)

	limiter := l.GetLimiter("10.0.0.1")
	if !limiter.Allow() || !limiter.Allow() {
		t.Fatal("burst requests must pass")
	}
	if limiter.Allow() {
		t.Error("request over the burst must be denied")
	}
}

func TestIPRateLimiterIsPerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	if !l.GetLimiter("10.0.0.1").Allow() {
		t.Fatal("first request from first address must pass")
	}
	if !l.GetLimiter("10.0.0.2").Allow() {
		t.Error("another address must have its own budget")
	}
}

func TestIPRateLimiterEvictsIdleEntries(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	idle := l.GetLimiter("10.0.0.1")
	idle.Allow()

	// Age the idle entry and the sweep clock past the eviction window.
	l.mu.Lock()
	l.ips["10.0.0.1"].lastSeen = time.Now().Add(-2 * config.RATE_LIMITER_IDLE_EVICTION)
	l.lastSweep = time.Now().Add(-2 * config.RATE_LIMITER_IDLE_EVICTION)
	l.mu.Unlock()

	l.GetLimiter("10.0.0.2")

	l.mu.Lock()
	_, stillThere := l.ips["10.0.0.1"]
	_, fresh := l.ips["10.0.0.2"]
	l.mu.Unlock()

	if stillThere {
		t.Error("idle address survived the sweep")
	}
	if !fresh {
		t.Error("active address must survive the sweep")
	}

	// The evicted address comes back with a full budget.
	if !l.GetLimiter("10.0.0.1").Allow() {
		t.Error("re-created entry must start with a fresh budget")
	}
}
