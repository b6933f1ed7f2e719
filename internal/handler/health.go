package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity plus the store breaker; never exposes
// credentials or internals. db and rdb may be nil when not configured
// (snapshot mode, no cache).
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "disabled"
		if db != nil {
			dbStatus = "connected"
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(ctx) != nil {
				dbStatus = "error"
			}
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		breaker := "closed"
		if cb != nil {
			breaker = cb.State().String()
		}

		// Redis only backs a cache, so it degrades health without failing it.
		status := http.StatusOK
		if dbStatus == "error" || breaker == infra.CBOpen.String() {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"db":      dbStatus,
			"redis":   redisStatus,
			"breaker": breaker,
		})
	}
}
