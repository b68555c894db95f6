package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// Dependencies are the services and settings the routes are built from
type Dependencies struct {
	DB                 *gorm.DB
	Redis              *redis.Client
	Recipes            service.IRecipeService
	Saved              service.ISavedRecipeService
	Auth               service.IAuthService
	Logger             zerolog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestContext(deps.Logger),
		middleware.Metrics(),
		middleware.ErrorHandler(),
		middleware.CORS(deps.AllowedOrigins),
	)

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Search limits apply only when Redis is available
	v1 := router.Group("/api/v1")
	var limits []gin.HandlerFunc
	if deps.Redis != nil && deps.RateLimitPerMinute > 0 {
		limiter := middleware.NewSearchRateLimiter(deps.Redis, deps.RateLimitPerMinute)
		limits = append(limits, limiter.RateLimitMiddleware())
		api.RegisterRateLimitRoutes(v1, limiter)
	}

	// API v1 routes
	api.NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	api.NewRecipeHandler(deps.Recipes).RegisterRoutes(v1, limits...)
	api.NewSavedRecipeHandler(deps.Saved, deps.Recipes, deps.Auth).RegisterRoutes(v1)

	return router
}
