package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sword9322/bezer-sub000/internal/infra"
)

// Pinger is implemented by the production sheet store; the in-memory store
// used in development has nothing to ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health returns a JSON health check response. Checks sheet backend and
// Redis connectivity plus circuit breaker state; never exposes credentials.
func Health(store Pinger, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		sheetStatus := "connected"
		if store == nil {
			sheetStatus = "in-memory"
		} else if store.Ping(ctx) != nil {
			sheetStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil {
			redisStatus = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if sheetStatus == "error" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		resp := gin.H{
			"ok":    status == http.StatusOK,
			"sheet": sheetStatus,
			"redis": redisStatus,
		}
		if cb != nil {
			resp["breaker"] = cb.State().String()
		}
		c.JSON(status, resp)
	}
}
