package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// DefaultRecipeTTL bounds how long a recipe seen in search results is served from cache
const DefaultRecipeTTL = time.Hour

// ErrMiss is returned when a recipe is not cached
var ErrMiss = errors.New("recipe not cached")

// RecipeCache stores recipe snapshots in Redis, keyed by derived identifier
type RecipeCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRecipeCache creates a cache; a non-positive ttl uses DefaultRecipeTTL
func NewRecipeCache(client *redis.Client, ttl time.Duration) *RecipeCache {
	if ttl <= 0 {
		ttl = DefaultRecipeTTL
	}
	return &RecipeCache{redis: client, ttl: ttl}
}

func recipeKey(id string) string {
	return fmt.Sprintf("recipe:edamam:%s", id)
}

// Put caches every recipe that has a derived identifier
func (c *RecipeCache) Put(ctx context.Context, recipes ...edamam.Recipe) error {
	entries := make(map[string][]byte, len(recipes))
	for i := range recipes {
		id := recipes[i].ID()
		if id == "" {
			continue
		}
		data, err := json.Marshal(&recipes[i])
		if err != nil {
			return fmt.Errorf("failed to marshal recipe %s: %w", id, err)
		}
		entries[id] = data
	}
	if len(entries) == 0 {
		return nil
	}

	pipe := c.redis.Pipeline()
	for id, data := range entries {
		pipe.Set(ctx, recipeKey(id), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache recipes in Redis: %w", err)
	}
	return nil
}

// Get returns a cached recipe or ErrMiss
func (c *RecipeCache) Get(ctx context.Context, id string) (*edamam.Recipe, error) {
	data, err := c.redis.Get(ctx, recipeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe from Redis: %w", err)
	}

	var recipe edamam.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		// an unreadable entry would fail every lookup until it expires
		if delErr := c.Delete(ctx, id); delErr != nil {
			return nil, errors.Join(fmt.Errorf("failed to unmarshal cached recipe: %w", err), delErr)
		}
		return nil, fmt.Errorf("failed to unmarshal cached recipe: %w", err)
	}
	return &recipe, nil
}

// Delete removes a cached recipe
func (c *RecipeCache) Delete(ctx context.Context, id string) error {
	if err := c.redis.Del(ctx, recipeKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete recipe from Redis: %w", err)
	}
	return nil
}
