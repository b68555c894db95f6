package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/seed"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	cmd := &cli.Command{
		Name:  "seed",
		Usage: "Create demo users and save recipes from live search results",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "query",
				Usage: "search to take recipes from, repeatable",
				Value: seed.DefaultQueries,
			},
			&cli.IntFlag{
				Name:  "per-query",
				Value: 5,
				Usage: "recipes saved from each search",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logging.NewDefault(cfg.LogLevel)

			db, err := database.New(cfg, log)
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db, "migrations", log); err != nil {
				return err
			}

			opts := []edamam.ClientOption{
				edamam.WithLogger(log),
				edamam.WithNotifier(notify.ContextNotifier{Logger: log}),
			}
			if cfg.EdamamBaseURL != "" {
				opts = append(opts, edamam.WithBaseURL(cfg.EdamamBaseURL))
			}
			if cfg.EdamamRatePerMinute > 0 {
				opts = append(opts, edamam.WithLimiter(rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.EdamamRatePerMinute)), 1)))
			}
			client := edamam.NewClient(edamam.Credentials{
				AppID:       cfg.EdamamAppID,
				AppKey:      cfg.EdamamAppKey,
				AccountUser: cfg.EdamamAccountUser,
			}, opts...)

			seeder := seed.New(
				service.NewAuthService(db, cfg.JWTSecret),
				service.NewRecipeService(client, nil, nil, log),
				service.NewSavedRecipeService(db, nil, nil, log),
				log,
			)
			summary, err := seeder.Run(ctx, seed.DefaultUsers, cmd.StringSlice("query"), cmd.Int("per-query"))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created %d users, saved %d recipes\n", summary.UsersCreated, summary.RecipesSaved)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
