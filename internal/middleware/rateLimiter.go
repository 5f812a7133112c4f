package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/physai/bookrag/internal/config"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*ipEntry
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
	lastSweep time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*ipEntry),
		rateLimit: r,
		burstRate: b,
		lastSweep: time.Now(),
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	i.sweep(now)

	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipEntry{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops addresses not seen within the eviction window so the map
// does not grow with every client that ever connected. Caller holds mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(i.lastSweep) < config.RATE_LIMITER_IDLE_EVICTION {
		return
	}
	for ip, entry := range i.ips {
		if now.Sub(entry.lastSeen) >= config.RATE_LIMITER_IDLE_EVICTION {
			delete(i.ips, ip)
		}
	}
	i.lastSweep = now
}

//TODO: when the users grow
// I must offload this key-value to redis
