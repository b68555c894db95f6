package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// RecipeSearcher is the part of the Edamam client the services use
type RecipeSearcher interface {
	Search(ctx context.Context, query string, filters edamam.Filters, from, to int) (*edamam.SearchResponse, error)
	Lookup(ctx context.Context, id string) (*edamam.Recipe, error)
}

// RecipeCache stores recipe snapshots seen in search results
type RecipeCache interface {
	Put(ctx context.Context, recipes ...edamam.Recipe) error
	Get(ctx context.Context, id string) (*edamam.Recipe, error)
}

// ImageMirror copies a remote recipe image to storage we control
type ImageMirror interface {
	MirrorImage(ctx context.Context, recipeID, imageURL string) (string, error)
}

// IRecipeService defines the interface for recipe search operations
type IRecipeService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	GetRecipe(ctx context.Context, id string) (*edamam.Recipe, error)
}

// ISavedRecipeService defines the interface for saved recipe operations
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, recipe edamam.Recipe, notes string) (*model.SavedRecipe, error)
	List(ctx context.Context, userID uuid.UUID, query string, sort recipes.SortOption) ([]model.SavedRecipe, error)
	Get(ctx context.Context, userID uuid.UUID, recipeID string) (*model.SavedRecipe, error)
	Delete(ctx context.Context, userID uuid.UUID, recipeID string) error
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	GenerateToken(user *model.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
