package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"library-api/pkg/config"
)

// client holds a per-IP limiter and the time it was last seen, so stale
// entries can be evicted and the map stays bounded.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-IP token bucket. Each IP gets its own limiter
// seeded from cfg; a sweep once a minute drops IPs not seen for three
// minutes. Exhausted buckets answer 429.
func RateLimit(cfg config.LimitConfig) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		cl, found := clients[ip]
		if !found {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
