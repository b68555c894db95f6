package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
)

// HealthHandler reports the state of the backing stores
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a health handler; redisClient may be nil
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if err := database.HealthCheck(ctx, h.db); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// the cache and limiter degrade without Redis
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}

// RegisterRateLimitRoutes registers the endpoint reporting the caller's remaining search quota
func RegisterRateLimitRoutes(router *gin.RouterGroup, searchLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	{
		rateLimits.GET("/recipe-search", func(c *gin.Context) {
			remaining, resetTime, err := searchLimiter.GetRemainingRequests(c.Request.Context(), middleware.ClientKey(c))
			if err != nil {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Rate limit lookup failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"limit":      searchLimiter.Limit(),
				"remaining":  remaining,
				"reset_time": resetTime.Unix(),
				"window":     searchLimiter.Window().String(),
			})
		})
	}
}
