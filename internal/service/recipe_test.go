package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/mocks"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
)

func searchResponse(rs ...edamam.Recipe) *edamam.SearchResponse {
	hits := make([]edamam.Hit, len(rs))
	for i, r := range rs {
		hits[i] = edamam.Hit{Recipe: r}
	}
	return &edamam.SearchResponse{Hits: hits, Count: 42, From: 1, To: len(rs), More: true, Q: "pasta"}
}

func TestRecipeService_Search(t *testing.T) {
	pesto := testhelpers.SampleRecipe("p1", "Pesto", 500)
	carbonara := testhelpers.SampleRecipe("c1", "carbonara", 800)
	arrabbiata := testhelpers.SampleRecipe("a1", "Arrabbiata", 300)

	searcher := &mocks.MockRecipeSearcher{}
	searcher.On("Search", mock.Anything, "pasta", edamam.Filters{edamam.Diet: {"low-fat"}}, 0, 20).
		Return(searchResponse(pesto, carbonara, arrabbiata), nil)
	recipeCache := &mocks.MockRecipeCache{}
	recipeCache.On("Put", mock.Anything, []edamam.Recipe{pesto, carbonara, arrabbiata}).Return(nil)

	svc := service.NewRecipeService(searcher, recipeCache, nil, zerolog.Nop())

	result, err := svc.Search(context.Background(), service.SearchRequest{
		Query:   "  pasta ",
		Filters: edamam.Filters{edamam.Diet: {"low-fat"}},
		Sort:    recipes.SortCaloriesAsc,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, result.Count)
	assert.Equal(t, 1, result.From)
	assert.Equal(t, 3, result.To)
	assert.True(t, result.More)
	assert.Equal(t, "pasta", result.Query)
	require.Len(t, result.Recipes, 3)
	assert.Equal(t, "Arrabbiata", result.Recipes[0].Label)
	assert.Equal(t, "Pesto", result.Recipes[1].Label)
	assert.Equal(t, "carbonara", result.Recipes[2].Label)

	searcher.AssertExpectations(t)
	recipeCache.AssertExpectations(t)
}

func TestRecipeService_Search_CacheFailureIsNotFatal(t *testing.T) {
	searcher := &mocks.MockRecipeSearcher{}
	searcher.On("Search", mock.Anything, "soup", mock.Anything, 0, 20).
		Return(searchResponse(testhelpers.SampleRecipe("s1", "Soup", 100)), nil)
	recipeCache := &mocks.MockRecipeCache{}
	recipeCache.On("Put", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := service.NewRecipeService(searcher, recipeCache, nil, zerolog.Nop())
	result, err := svc.Search(context.Background(), service.SearchRequest{Query: "soup"})
	require.NoError(t, err)
	assert.Len(t, result.Recipes, 1)
}

func TestRecipeService_Search_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  service.SearchRequest
	}{
		{name: "negative from", req: service.SearchRequest{From: -1, To: 10}},
		{name: "to before from", req: service.SearchRequest{From: 10, To: 5}},
		{name: "page too large", req: service.SearchRequest{From: 0, To: service.MaxPageSize + 1}},
		{name: "unknown sort", req: service.SearchRequest{Sort: "by-color"}},
		{name: "unknown filter option", req: service.SearchRequest{Filters: edamam.Filters{edamam.Health: {"sugar-rich"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mocks.MockRecipeSearcher{}
			svc := service.NewRecipeService(searcher, nil, nil, zerolog.Nop())

			_, err := svc.Search(context.Background(), tt.req)
			assert.ErrorIs(t, err, service.ErrInvalidSearch)
			searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecipeService_Search_PropagatesClientError(t *testing.T) {
	reqErr := &edamam.RequestError{StatusCode: 500, Body: "boom"}
	searcher := &mocks.MockRecipeSearcher{}
	searcher.On("Search", mock.Anything, "x", mock.Anything, 20, 40).Return(nil, reqErr)

	svc := service.NewRecipeService(searcher, nil, nil, zerolog.Nop())
	_, err := svc.Search(context.Background(), service.SearchRequest{Query: "x", From: 20})
	assert.True(t, edamam.IsRequestError(err))
}

func TestRecipeService_GetRecipe(t *testing.T) {
	soup := testhelpers.SampleRecipe("soup1", "Soup", 120)

	t.Run("served from cache", func(t *testing.T) {
		searcher := &mocks.MockRecipeSearcher{}
		recipeCache := &mocks.MockRecipeCache{}
		recipeCache.On("Get", mock.Anything, "soup1").Return(&soup, nil)

		svc := service.NewRecipeService(searcher, recipeCache, nil, zerolog.Nop())
		recipe, err := svc.GetRecipe(context.Background(), soup.URI)
		require.NoError(t, err)
		assert.Equal(t, "Soup", recipe.Label)
		searcher.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("cache miss looks up and caches", func(t *testing.T) {
		searcher := &mocks.MockRecipeSearcher{}
		searcher.On("Lookup", mock.Anything, "soup1").Return(&soup, nil)
		recipeCache := &mocks.MockRecipeCache{}
		recipeCache.On("Get", mock.Anything, "soup1").Return(nil, cache.ErrMiss)
		recipeCache.On("Put", mock.Anything, []edamam.Recipe{soup}).Return(nil)

		svc := service.NewRecipeService(searcher, recipeCache, nil, zerolog.Nop())
		recipe, err := svc.GetRecipe(context.Background(), "soup1")
		require.NoError(t, err)
		assert.Equal(t, soup.URI, recipe.URI)
		searcher.AssertExpectations(t)
		recipeCache.AssertExpectations(t)
	})

	t.Run("not found emits no notification", func(t *testing.T) {
		searcher := &mocks.MockRecipeSearcher{}
		searcher.On("Lookup", mock.Anything, "gone").Return(nil, edamam.ErrRecipeNotFound)
		collector := &notify.Collector{}

		svc := service.NewRecipeService(searcher, nil, collector, zerolog.Nop())
		_, err := svc.GetRecipe(context.Background(), "gone")
		assert.ErrorIs(t, err, edamam.ErrRecipeNotFound)
		assert.Empty(t, collector.Drain())
	})

	t.Run("failure notifies", func(t *testing.T) {
		searcher := &mocks.MockRecipeSearcher{}
		searcher.On("Lookup", mock.Anything, "soup1").Return(nil, &edamam.RequestError{StatusCode: 503})
		collector := &notify.Collector{}

		svc := service.NewRecipeService(searcher, nil, collector, zerolog.Nop())
		_, err := svc.GetRecipe(context.Background(), soup.URI)
		assert.True(t, edamam.IsRequestError(err))

		notes := collector.Drain()
		require.Len(t, notes, 1)
		assert.Equal(t, edamam.LookupFailedMessage, notes[0].Message)
	})
}

func TestRecipeService_AgainstFakeAPI(t *testing.T) {
	api := testhelpers.NewFakeEdamam(t,
		testhelpers.SampleRecipe("b", "bread", 200),
		testhelpers.SampleRecipe("a", "Apple Pie", 400),
	)
	svc := service.NewRecipeService(api.Client(), nil, nil, zerolog.Nop())

	result, err := svc.Search(context.Background(), service.SearchRequest{Query: "baking", Sort: recipes.SortAlphaAsc})
	require.NoError(t, err)
	require.Len(t, result.Recipes, 2)
	assert.Equal(t, "Apple Pie", result.Recipes[0].Label)

	recipe, err := svc.GetRecipe(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "bread", recipe.Label)

	requests := api.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "b", requests[1].Get("q"))
}
