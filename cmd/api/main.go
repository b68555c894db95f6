package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/router"
	"github.com/pageza/recipe-finder/backend/internal/server"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logging.NewDefault("info")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logging.NewDefault(cfg.LogLevel)
	log.Info().Str("environment", string(config.GetEnvironment())).Msg("Starting recipe finder API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("Server error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, migrationsDir(), log); err != nil {
		return err
	}

	// Redis backs the recipe cache and the search rate limit; both are skipped without it
	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without recipe cache and rate limiting")
	}

	notifier := notify.ContextNotifier{Logger: log}

	if !cfg.HasEdamamCredentials() {
		log.Warn().Msg("Edamam credentials are not configured, recipe searches will fail")
	}
	opts := []edamam.ClientOption{
		edamam.WithNotifier(notifier),
		edamam.WithLogger(log),
	}
	if cfg.EdamamBaseURL != "" {
		opts = append(opts, edamam.WithBaseURL(cfg.EdamamBaseURL))
	}
	if cfg.EdamamRatePerMinute > 0 {
		every := time.Minute / time.Duration(cfg.EdamamRatePerMinute)
		opts = append(opts, edamam.WithLimiter(rate.NewLimiter(rate.Every(every), 1)))
	}
	client := edamam.NewClient(edamam.Credentials{
		AppID:       cfg.EdamamAppID,
		AppKey:      cfg.EdamamAppKey,
		AccountUser: cfg.EdamamAccountUser,
	}, opts...)

	var recipeCache service.RecipeCache
	if redisClient != nil {
		recipeCache = cache.NewRecipeCache(redisClient, cache.DefaultRecipeTTL)
	}

	var images service.ImageMirror
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}
	if s3cfg != nil {
		if err := s3cfg.HeadBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", s3cfg.BucketName).Msg("S3 bucket not reachable, saved recipes keep their original images")
		} else {
			images = service.NewImageService(s3cfg.Client, s3cfg.BucketName, s3cfg.PublicURL, log)
		}
	}

	handler := router.SetupRouter(router.Dependencies{
		DB:                 db,
		Redis:              redisClient,
		Recipes:            service.NewRecipeService(client, recipeCache, notifier, log),
		Saved:              service.NewSavedRecipeService(db, images, notifier, log),
		Auth:               service.NewAuthService(db, cfg.JWTSecret),
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	return server.New(cfg.Addr(), handler, log).Run(ctx)
}

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "migrations"
}
