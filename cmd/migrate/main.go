package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending SQL migrations to the Postgres database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres connection string (defaults to the DB_* settings)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Value:   "migrations",
				Usage:   "directory holding the .sql migration files",
				Sources: cli.EnvVars("MIGRATIONS_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: migrate,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	log := logging.NewDefault(cmd.String("log-level"))

	dsn := cmd.String("database-url")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		dsn = database.PostgresDSN(cfg)
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(db, cmd.String("dir"), log); err != nil {
		return err
	}
	log.Info().Msg("Migrations are up to date")
	return nil
}
