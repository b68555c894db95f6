package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
)

// MaxPageSize bounds the number of hits one search may request
const MaxPageSize = 100

// ErrInvalidSearch marks a search request rejected before any call is made
var ErrInvalidSearch = errors.New("invalid search request")

// SearchRequest is one page of a filtered recipe search
type SearchRequest struct {
	Query   string
	Filters edamam.Filters
	From    int
	To      int
	Sort    recipes.SortOption
}

// Validate checks paging, sort key and filter options
func (r *SearchRequest) Validate() error {
	if r.To == 0 {
		r.To = r.From + edamam.DefaultPageSize
	}
	if r.From < 0 || r.To <= r.From {
		return fmt.Errorf("%w: from must be >= 0 and to must be greater than from", ErrInvalidSearch)
	}
	if r.To-r.From > MaxPageSize {
		return fmt.Errorf("%w: at most %d results per page", ErrInvalidSearch, MaxPageSize)
	}
	if r.Sort == "" {
		r.Sort = recipes.SortDefault
	}
	if _, err := recipes.ParseSortOption(string(r.Sort)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSearch, err)
	}
	if err := r.Filters.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSearch, err)
	}
	return nil
}

// SearchResult is a sorted page of recipes with the API paging metadata
type SearchResult struct {
	Query   string
	Count   int
	From    int
	To      int
	More    bool
	Recipes []edamam.Recipe
}

// RecipeService searches recipes and resolves recipe details
type RecipeService struct {
	searcher RecipeSearcher
	cache    RecipeCache
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance. cache may be nil.
func NewRecipeService(searcher RecipeSearcher, cache RecipeCache, notifier notify.Notifier, log zerolog.Logger) *RecipeService {
	return &RecipeService{
		searcher: searcher,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Search runs one page of a search and applies the requested sort
func (s *RecipeService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	query := strings.TrimSpace(req.Query)

	resp, err := s.searcher.Search(ctx, query, req.Filters, req.From, req.To)
	if err != nil {
		return nil, err
	}

	hits := resp.Recipes()
	if s.cache != nil && len(hits) > 0 {
		if err := s.cache.Put(ctx, hits...); err != nil {
			s.log.Warn().Err(err).Msg("[RecipeService] Failed to cache search hits")
		}
	}

	s.log.Debug().
		Str("query", query).
		Int("hits", len(hits)).
		Int("count", resp.Count).
		Msg("[RecipeService] Search completed")

	return &SearchResult{
		Query:   resp.Q,
		Count:   resp.Count,
		From:    resp.From,
		To:      resp.To,
		More:    resp.More,
		Recipes: recipes.Sorted(hits, req.Sort),
	}, nil
}

// GetRecipe resolves a recipe by URI or derived identifier. Recipes seen in recent search results
// come from the cache; everything else is looked up again.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*edamam.Recipe, error) {
	recipeID := strings.Replace(strings.TrimSpace(id), edamam.RecipeURIPrefix, "", 1)

	if s.cache != nil && recipeID != "" {
		recipe, err := s.cache.Get(ctx, recipeID)
		if err == nil {
			s.log.Debug().Str("id", recipeID).Msg("[RecipeService] Recipe served from cache")
			return recipe, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn().Err(err).Str("id", recipeID).Msg("[RecipeService] Cache lookup failed")
		}
	}

	recipe, err := s.searcher.Lookup(ctx, recipeID)
	if err != nil {
		if !errors.Is(err, edamam.ErrRecipeNotFound) {
			s.log.Error().Err(err).Str("id", recipeID).Msg("[RecipeService] Error fetching recipe details")
			notify.Error(ctx, s.notifier, edamam.LookupFailedMessage)
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, *recipe); err != nil {
			s.log.Warn().Err(err).Str("id", recipeID).Msg("[RecipeService] Failed to cache recipe")
		}
	}
	return recipe, nil
}
