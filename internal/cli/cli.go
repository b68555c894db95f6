// Package cli is the command-line front end of the recipe search: it runs searches and lookups
// against the Edamam API and prints result cards or the detail panel as JSON or YAML.
// Notifications are printed to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/notify"
)

const name = "recipes"

// overridden during build with ldflags
var version = "dev"

// stderrNotifier prints notifications the way a toast would show them
type stderrNotifier struct {
	w io.Writer
}

func (n stderrNotifier) Notify(_ context.Context, notification notify.Notification) {
	fmt.Fprintf(n.w, "%s: %s\n", notification.Level, notification.Message)
}

// NewCommand builds the root command writing results to stdout and everything else to stderr
func NewCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      name,
		Version:   version,
		Usage:     "Search recipes from the Edamam Recipe Search API",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "app-id",
				Usage:   "Edamam application id",
				Sources: cli.EnvVars("EDAMAM_APP_ID"),
			},
			&cli.StringFlag{
				Name:    "app-key",
				Usage:   "Edamam application key",
				Sources: cli.EnvVars("EDAMAM_APP_KEY"),
			},
			&cli.StringFlag{
				Name:    "account-user",
				Usage:   "value of the Edamam-Account-User header",
				Sources: cli.EnvVars("EDAMAM_ACCOUNT_USER"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Value:   edamam.DefaultBaseURL,
				Usage:   "recipe search endpoint",
				Sources: cli.EnvVars("EDAMAM_BASE_URL"),
			},
			&cli.IntFlag{
				Name:    "rate-per-minute",
				Usage:   "maximum API calls per minute (0 disables throttling)",
				Sources: cli.EnvVars("EDAMAM_RATE_PER_MINUTE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			formatFlag,
		},
		Commands: []*cli.Command{
			searchCmd(stdout, stderr),
			getCmd(stdout, stderr),
			optionsCmd(stdout),
		},
	}
}

// newClient builds an API client from the root flags
func newClient(cmd *cli.Command, stderr io.Writer) (*edamam.Client, zerolog.Logger) {
	log := logging.New(stderr, cmd.String("log-level"), false)

	opts := []edamam.ClientOption{
		edamam.WithBaseURL(cmd.String("base-url")),
		edamam.WithNotifier(stderrNotifier{w: stderr}),
		edamam.WithLogger(log),
	}
	if perMinute := cmd.Int("rate-per-minute"); perMinute > 0 {
		opts = append(opts, edamam.WithLimiter(rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)))
	}

	client := edamam.NewClient(edamam.Credentials{
		AppID:       cmd.String("app-id"),
		AppKey:      cmd.String("app-key"),
		AccountUser: cmd.String("account-user"),
	}, opts...)
	return client, log
}

// Execute runs the command line until it completes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
