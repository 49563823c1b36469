package worker

import (
	"net"
	"sync"
	"time"

	"github.com/realDragonium/picocraft/config"
)

// ConnLimiter decides whether a freshly accepted connection gets served.
// Allow gets called from every connection goroutine at the same time.
type ConnLimiter interface {
	Allow(addr net.Addr) bool
}

type AlwaysAllowConnection struct{}

func (AlwaysAllowConnection) Allow(addr net.Addr) bool {
	return true
}

// NewAbsConnLimiter allows at most rateLimit connections per cooldown,
// no matter where they come from.
func NewAbsConnLimiter(rateLimit int, cooldown time.Duration) ConnLimiter {
	return &absoluteConnLimiter{
		rateLimit:    rateLimit,
		rateCooldown: cooldown,
	}
}

type absoluteConnLimiter struct {
	mu            sync.Mutex
	rateCounter   int
	rateStartTime time.Time
	rateLimit     int
	rateCooldown  time.Duration
}

func (r *absoluteConnLimiter) Allow(addr net.Addr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if time.Since(r.rateStartTime) >= r.rateCooldown {
		r.rateCounter = 0
		r.rateStartTime = time.Now()
	}
	if r.rateCounter < r.rateLimit {
		r.rateCounter++
		return true
	}
	return false
}

// NewConnLimiter builds the limiter the config asks for, a rate limit of
// zero disables limiting.
func NewConnLimiter(cfg config.ServerConfig) ConnLimiter {
	if cfg.RateLimit <= 0 {
		return AlwaysAllowConnection{}
	}
	cooldown, err := time.ParseDuration(cfg.RateCooldown)
	if err != nil || cooldown <= 0 {
		cooldown = time.Second
	}
	return NewAbsConnLimiter(cfg.RateLimit, cooldown)
}
