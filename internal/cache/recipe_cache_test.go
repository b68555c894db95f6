package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
)

func TestRecipeCache(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	c := NewRecipeCache(client, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Put(ctx,
		testhelpers.SampleRecipe("abc", "Minestrone", 400),
		edamam.Recipe{Label: "no uri"},
	))

	recipe, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Minestrone", recipe.Label)
	assert.Equal(t, 400.0, recipe.TotalNutrients["ENERC_KCAL"].Quantity)

	ttl, err := client.TTL(ctx, recipeKey("abc")).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute, ttl.String())

	require.NoError(t, c.Delete(ctx, "abc"))
	_, err = c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRecipeCache_UnreadableEntryIsEvicted(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	c := NewRecipeCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, recipeKey("bad"), "{not json", time.Minute).Err())

	_, err := c.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	_, err = c.Get(ctx, "bad")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRecipeCache_PutNothing(t *testing.T) {
	c := NewRecipeCache(nil, 0)
	assert.Equal(t, DefaultRecipeTTL, c.ttl)
	assert.NoError(t, c.Put(context.Background(), edamam.Recipe{Label: "no uri"}))
	assert.NoError(t, c.Put(context.Background()))
}
