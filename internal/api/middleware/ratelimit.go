package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter keeps one token bucket per client IP and forgets clients that
// stay quiet long enough.
type clientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientEntry
	rps      rate.Limit
	burst    int
	lifetime time.Duration
	done     chan struct{}
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps rate.Limit, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients:  make(map[string]*clientEntry),
		rps:      rps,
		burst:    burst,
		lifetime: 10 * time.Minute,
		done:     make(chan struct{}),
	}
	go cl.evictLoop(time.Minute)
	return cl
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	entry, ok := cl.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (cl *clientLimiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cl.evictIdle()
		case <-cl.done:
			return
		}
	}
}

func (cl *clientLimiter) evictIdle() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for ip, entry := range cl.clients {
		if time.Since(entry.lastSeen) > cl.lifetime {
			delete(cl.clients, ip)
		}
	}
}

// stop ends the evict loop and releases its ticker.
func (cl *clientLimiter) stop() {
	close(cl.done)
}

// RateLimit returns a per-IP limiter middleware. Meant for the auth
// endpoints, where credential stuffing is the concern.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	cl := newClientLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
