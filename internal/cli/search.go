package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

var filterFlags = map[edamam.FilterCategory]string{
	edamam.Diet:        "diet",
	edamam.Health:      "health",
	edamam.CuisineType: "cuisine-type",
	edamam.MealType:    "meal-type",
	edamam.DishType:    "dish-type",
}

// searchOutput is what search prints
type searchOutput struct {
	Count   int            `json:"count" yaml:"count"`
	From    int            `json:"from" yaml:"from"`
	To      int            `json:"to" yaml:"to"`
	More    bool           `json:"more" yaml:"more"`
	Q       string         `json:"q" yaml:"q"`
	Recipes []recipes.Card `json:"recipes" yaml:"recipes"`
}

func searchCmd(stdout, stderr io.Writer) *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "from",
			Usage: "offset of the first result",
		},
		&cli.IntFlag{
			Name:  "to",
			Usage: "offset past the last result (default from+20)",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Value:   string(recipes.SortDefault),
			Usage:   fmt.Sprintf("sort order (supported values: %s)", sortValues()),
		},
	}
	for _, category := range edamam.Categories {
		flags = append(flags, &cli.StringSliceFlag{
			Name:  filterFlags[category],
			Usage: fmt.Sprintf("%s filter, repeatable", category),
		})
	}

	return &cli.Command{
		Name:      "search",
		Usage:     "Search recipes by keyword and filters",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if query == "" {
				return errors.New("a search query is required")
			}

			filters := edamam.Filters{}
			for _, category := range edamam.Categories {
				if values := cmd.StringSlice(filterFlags[category]); len(values) > 0 {
					filters[category] = values
				}
			}

			client, log := newClient(cmd, stderr)
			svc := service.NewRecipeService(client, nil, stderrNotifier{w: stderr}, log)

			result, err := svc.Search(ctx, service.SearchRequest{
				Query:   query,
				Filters: filters,
				From:    cmd.Int("from"),
				To:      cmd.Int("to"),
				Sort:    recipes.SortOption(cmd.String("sort")),
			})
			if err != nil {
				return err
			}

			return write(stdout, format, searchOutput{
				Count:   result.Count,
				From:    result.From,
				To:      result.To,
				More:    result.More,
				Q:       result.Query,
				Recipes: recipes.NewCards(result.Recipes),
			})
		},
	}
}

func getCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show the detail panel of one recipe",
		ArgsUsage: "<recipe id or uri>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			id := cmd.Args().First()
			if id == "" {
				return errors.New("a recipe id is required")
			}

			client, _ := newClient(cmd, stderr)
			recipe := client.GetByID(ctx, id)
			if recipe == nil {
				// failures were already reported as notifications
				return fmt.Errorf("no recipe for %q", id)
			}

			return write(stdout, format, recipes.NewDetail(*recipe))
		},
	}
}

func optionsCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "List filter options and sort orders",
		Action: func(_ context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			out := map[string][]edamam.Option{
				"sort": recipes.SortOptions,
			}
			for _, category := range edamam.Categories {
				out[string(category)] = edamam.OptionsFor(category)
			}
			return write(stdout, format, out)
		},
	}
}

func sortValues() string {
	values := make([]string, len(recipes.SortOptions))
	for i, o := range recipes.SortOptions {
		values[i] = o.Value
	}
	return strings.Join(values, ", ")
}

var _ notify.Notifier = stderrNotifier{}
