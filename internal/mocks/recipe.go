package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockRecipeService) Search(ctx context.Context, req service.SearchRequest) (*service.SearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*edamam.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edamam.Recipe), args.Error(1)
}

// MockSavedRecipeService is a mock implementation of the saved recipe service
type MockSavedRecipeService struct {
	mock.Mock
}

// Save mocks the Save method
func (m *MockSavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe edamam.Recipe, notes string) (*model.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipe, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedRecipe), args.Error(1)
}

// List mocks the List method
func (m *MockSavedRecipeService) List(ctx context.Context, userID uuid.UUID, query string, sort recipes.SortOption) ([]model.SavedRecipe, error) {
	args := m.Called(ctx, userID, query, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SavedRecipe), args.Error(1)
}

// Get mocks the Get method
func (m *MockSavedRecipeService) Get(ctx context.Context, userID uuid.UUID, recipeID string) (*model.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedRecipe), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockSavedRecipeService) Delete(ctx context.Context, userID uuid.UUID, recipeID string) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}
