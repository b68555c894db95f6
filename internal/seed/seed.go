// Package seed fills a development database with demo accounts and saved recipes taken from
// live search results.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// searchConcurrency bounds parallel searches; the API client throttles on top of this
const searchConcurrency = 2

// DemoUser is an account to create
type DemoUser struct {
	Email    string
	Password string
}

// DefaultUsers are the accounts created when none are given
var DefaultUsers = []DemoUser{
	{Email: "john.doe@example.com", Password: "testpassword123"},
	{Email: "jane.smith@example.com", Password: "testpassword123"},
}

// DefaultQueries are searched to find recipes worth saving
var DefaultQueries = []string{"pasta", "vegan salad", "curry", "smoothie"}

// Summary reports what a run created
type Summary struct {
	UsersCreated  int
	RecipesSaved  int
	SearchesFound int
}

// Seeder creates demo data through the regular services
type Seeder struct {
	auth    service.IAuthService
	recipes service.IRecipeService
	saved   service.ISavedRecipeService
	log     zerolog.Logger
}

// New creates a Seeder
func New(auth service.IAuthService, recipes service.IRecipeService, saved service.ISavedRecipeService, log zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, recipes: recipes, saved: saved, log: log}
}

// Run creates the users, then saves up to perQuery hits of every query for each of them.
// Existing users and already saved recipes are left alone, so Run can be repeated.
func (s *Seeder) Run(ctx context.Context, users []DemoUser, queries []string, perQuery int) (Summary, error) {
	var summary Summary

	accounts := make([]*model.User, 0, len(users))
	for _, u := range users {
		user, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return summary, err
		}
		if created {
			summary.UsersCreated++
		}
		accounts = append(accounts, user)
	}

	hits, err := s.search(ctx, queries, perQuery)
	if err != nil {
		return summary, err
	}
	summary.SearchesFound = len(hits)

	for _, user := range accounts {
		for _, recipe := range hits {
			_, err := s.saved.Save(ctx, user.ID, recipe, "Seeded from search results")
			switch {
			case errors.Is(err, service.ErrAlreadySaved), errors.Is(err, service.ErrInvalidRecipe):
				continue
			case err != nil:
				return summary, fmt.Errorf("failed to save %s for %s: %w", recipe.ID(), user.Email, err)
			}
			summary.RecipesSaved++
		}
	}

	s.log.Info().
		Int("users_created", summary.UsersCreated).
		Int("recipes_saved", summary.RecipesSaved).
		Msg("[Seeder] Seeding complete")
	return summary, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u DemoUser) (*model.User, bool, error) {
	user, err := s.auth.Register(ctx, u.Email, u.Password)
	if err == nil {
		s.log.Info().Str("email", u.Email).Msg("[Seeder] Created user")
		return user, true, nil
	}
	if !errors.Is(err, service.ErrUserExists) {
		return nil, false, fmt.Errorf("failed to create user %s: %w", u.Email, err)
	}

	_, user, err = s.auth.Login(ctx, u.Email, u.Password)
	if err != nil {
		return nil, false, fmt.Errorf("user %s exists with another password: %w", u.Email, err)
	}
	s.log.Debug().Str("email", u.Email).Msg("[Seeder] User already exists, skipping")
	return user, false, nil
}

// search runs the queries concurrently and returns the hits in query order, without duplicates
func (s *Seeder) search(ctx context.Context, queries []string, perQuery int) ([]edamam.Recipe, error) {
	results := make([][]edamam.Recipe, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			result, err := s.recipes.Search(ctx, service.SearchRequest{Query: q, From: 0, To: perQuery})
			if err != nil {
				return fmt.Errorf("search %q failed: %w", q, err)
			}
			results[i] = result.Recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var hits []edamam.Recipe
	for _, batch := range results {
		for i, recipe := range batch {
			if i >= perQuery {
				break
			}
			if id := recipe.ID(); !seen[id] {
				seen[id] = true
				hits = append(hits, recipe)
			}
		}
	}
	return hits, nil
}
