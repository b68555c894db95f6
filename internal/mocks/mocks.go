package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// MockRecipeSearcher is a mock implementation of the recipe API client
type MockRecipeSearcher struct {
	mock.Mock
}

func (m *MockRecipeSearcher) Search(ctx context.Context, query string, filters edamam.Filters, from, to int) (*edamam.SearchResponse, error) {
	args := m.Called(ctx, query, filters, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edamam.SearchResponse), args.Error(1)
}

func (m *MockRecipeSearcher) Lookup(ctx context.Context, id string) (*edamam.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edamam.Recipe), args.Error(1)
}

// MockRecipeCache is a mock implementation of the recipe snapshot cache
type MockRecipeCache struct {
	mock.Mock
}

func (m *MockRecipeCache) Put(ctx context.Context, recipes ...edamam.Recipe) error {
	args := m.Called(ctx, recipes)
	return args.Error(0)
}

func (m *MockRecipeCache) Get(ctx context.Context, id string) (*edamam.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edamam.Recipe), args.Error(1)
}

// MockImageMirror is a mock implementation of the image mirror
type MockImageMirror struct {
	mock.Mock
}

func (m *MockImageMirror) MirrorImage(ctx context.Context, recipeID, imageURL string) (string, error) {
	args := m.Called(ctx, recipeID, imageURL)
	return args.String(0), args.Error(1)
}
