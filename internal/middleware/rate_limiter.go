package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/apierror"
)

// ipEntry tracks requests per IP within a sliding window.
type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	apiRateMap   = make(map[string]*ipEntry)
	apiRateMapMu sync.Mutex
)

// RateLimiter limits requests per IP within the given window. The sheet
// backend has its own per-minute quota; throttling at the edge keeps one
// misbehaving client from tripping the circuit breaker for everyone.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		apiRateMapMu.Lock()
		entry, exists := apiRateMap[ip]
		if !exists {
			entry = &ipEntry{}
			apiRateMap[ip] = entry
		}
		apiRateMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			// Reset sliding window
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests"))
			return
		}
		c.Next()
	}
}

// StartRateLimiterJanitor purges expired windows so the map does not grow
// without bound. Runs until the process exits.
func StartRateLimiterJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			apiRateMapMu.Lock()
			purged := 0
			for ip, entry := range apiRateMap {
				entry.mu.Lock()
				if now.After(entry.windowEnd) {
					delete(apiRateMap, ip)
					purged++
				}
				entry.mu.Unlock()
			}
			apiRateMapMu.Unlock()

			if purged > 0 {
				log.Debug().
					Int("entries_purged", purged).
					Int("entries_remaining", len(apiRateMap)).
					Msg("rate limiter map purged")
			}
		}
	}()
}
