package api

import (
	"time"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
)

// SearchResponse is one page of result cards
type SearchResponse struct {
	Count         int                   `json:"count"`
	From          int                   `json:"from"`
	To            int                   `json:"to"`
	More          bool                  `json:"more"`
	Q             string                `json:"q"`
	Recipes       []recipes.Card        `json:"recipes"`
	Notifications []notify.Notification `json:"notifications"`
}

// RecipeResponse is the detail panel of one recipe
type RecipeResponse struct {
	Recipe        recipes.Detail        `json:"recipe"`
	Notifications []notify.Notification `json:"notifications"`
}

// ErrorBody is the JSON error shape; notifications raised before the failure travel with it
type ErrorBody struct {
	Error         string                `json:"error"`
	Notifications []notify.Notification `json:"notifications"`
}

// FilterGroup is one filter category with its selectable options
type FilterGroup struct {
	Category edamam.FilterCategory `json:"category"`
	Options  []edamam.Option       `json:"options"`
}

// OptionsResponse lists everything the search form offers
type OptionsResponse struct {
	Filters     []FilterGroup   `json:"filters"`
	SortOptions []edamam.Option `json:"sort_options"`
}

// SavedRecipeResponse is a saved recipe card with the user's notes
type SavedRecipeResponse struct {
	recipes.Card
	Notes   string    `json:"notes"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedRecipeDetailResponse is a saved recipe with its detail panel
type SavedRecipeDetailResponse struct {
	SavedRecipeResponse
	Detail recipes.Detail `json:"detail"`
}

func newSavedRecipeResponse(s model.SavedRecipe) SavedRecipeResponse {
	card := recipes.NewCard(s.Recipe())
	card.ID = s.RecipeID
	return SavedRecipeResponse{
		Card:    card,
		Notes:   s.Notes,
		SavedAt: s.CreatedAt,
	}
}

func newOptionsResponse() OptionsResponse {
	groups := make([]FilterGroup, 0, len(edamam.Categories))
	for _, category := range edamam.Categories {
		groups = append(groups, FilterGroup{
			Category: category,
			Options:  edamam.OptionsFor(category),
		})
	}
	return OptionsResponse{
		Filters:     groups,
		SortOptions: recipes.SortOptions,
	}
}
