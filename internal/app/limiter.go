package app

import (
	"sync"
	"time"
)

// LoginLimiter is a sliding-window limit of failed login attempts per remote
// host. Successful logins are never counted.
type LoginLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time
}

// NewLoginLimiter returns nil when limit or interval is not positive; a nil
// limiter allows everything.
func NewLoginLimiter(limit int, interval time.Duration) *LoginLimiter {
	if limit <= 0 || interval <= 0 {
		return nil
	}
	return &LoginLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

// Allow reports whether host may attempt a login. It records nothing.
func (rl *LoginLimiter) Allow(host string) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.pruneLocked(host)) < rl.limit
}

// Fail records a failed login from host.
func (rl *LoginLimiter) Fail(host string) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.history[host] = append(rl.pruneLocked(host), rl.now())
}

// pruneLocked drops attempts older than the window and forgets hosts with
// none left.
func (rl *LoginLimiter) pruneLocked(host string) []time.Time {
	attempts, ok := rl.history[host]
	if !ok {
		return nil
	}
	windowStart := rl.now().Add(-rl.interval)
	fresh := attempts[:0]
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		delete(rl.history, host)
		return nil
	}
	rl.history[host] = fresh
	return fresh
}
