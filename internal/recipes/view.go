// Package recipes derives presentation data from fetched recipes: sorted lists, result cards and
// the tabbed detail panel. Nothing here performs I/O.
package recipes

import (
	"math"
	"slices"
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// Card is the summary shown in the result grid
type Card struct {
	ID         string   `json:"id" yaml:"id"`
	URI        string   `json:"uri" yaml:"uri"`
	Label      string   `json:"label" yaml:"label"`
	Image      string   `json:"image" yaml:"image"`
	Source     string   `json:"source" yaml:"source"`
	Calories   int      `json:"calories" yaml:"calories"`
	Yield      float64  `json:"yield" yaml:"yield"`
	DietLabels []string `json:"diet_labels" yaml:"diet_labels"`
}

// IngredientLine is a numbered ingredient
type IngredientLine struct {
	Position int    `json:"position" yaml:"position"`
	Text     string `json:"text" yaml:"text"`
}

// IngredientsTab lists the ingredient lines
type IngredientsTab struct {
	Count int              `json:"count" yaml:"count"`
	Lines []IngredientLine `json:"lines" yaml:"lines"`
}

// NutrientRow is one nutrient for the whole recipe and per serving
type NutrientRow struct {
	Key        string  `json:"key" yaml:"key"`
	Label      string  `json:"label" yaml:"label"`
	Unit       string  `json:"unit" yaml:"unit"`
	Total      float64 `json:"total" yaml:"total"`
	PerServing float64 `json:"per_serving" yaml:"per_serving"`
}

// NutritionTab summarizes calories and nutrients
type NutritionTab struct {
	Calories           int           `json:"calories" yaml:"calories"`
	CaloriesPerServing int           `json:"calories_per_serving" yaml:"calories_per_serving"`
	Servings           float64       `json:"servings" yaml:"servings"`
	Nutrients          []NutrientRow `json:"nutrients" yaml:"nutrients"`
}

// DetailsTab holds labels and metadata
type DetailsTab struct {
	DietLabels   []string `json:"diet_labels" yaml:"diet_labels"`
	HealthLabels []string `json:"health_labels" yaml:"health_labels"`
	Cautions     []string `json:"cautions" yaml:"cautions"`
	CuisineType  []string `json:"cuisine_type" yaml:"cuisine_type"`
	MealType     []string `json:"meal_type" yaml:"meal_type"`
	DishType     []string `json:"dish_type" yaml:"dish_type"`
	TotalWeight  float64  `json:"total_weight" yaml:"total_weight"`
	Source       string   `json:"source" yaml:"source"`
	URL          string   `json:"url" yaml:"url"`
}

// Detail is the tabbed detail panel
type Detail struct {
	Card        `yaml:",inline"`
	Ingredients IngredientsTab `json:"ingredients" yaml:"ingredients"`
	Nutrition   NutritionTab   `json:"nutrition" yaml:"nutrition"`
	Details     DetailsTab     `json:"details" yaml:"details"`
}

// NewCard builds the grid card of a recipe
func NewCard(r edamam.Recipe) Card {
	return Card{
		ID:         r.ID(),
		URI:        r.URI,
		Label:      r.Label,
		Image:      r.Image,
		Source:     r.Source,
		Calories:   int(math.Round(r.Calories)),
		Yield:      r.Yield,
		DietLabels: orEmpty(r.DietLabels),
	}
}

// NewCards builds cards in the given order
func NewCards(rs []edamam.Recipe) []Card {
	cards := make([]Card, len(rs))
	for i, r := range rs {
		cards[i] = NewCard(r)
	}
	return cards
}

// NewDetail builds the detail panel of a recipe
func NewDetail(r edamam.Recipe) Detail {
	lines := make([]IngredientLine, len(r.IngredientLines))
	for i, text := range r.IngredientLines {
		lines[i] = IngredientLine{Position: i + 1, Text: text}
	}

	servings := servingsOf(r)
	nutrients := make([]NutrientRow, 0, len(r.TotalNutrients))
	for key, n := range r.TotalNutrients {
		nutrients = append(nutrients, NutrientRow{
			Key:        key,
			Label:      n.Label,
			Unit:       n.Unit,
			Total:      round1(n.Quantity),
			PerServing: round1(n.Quantity / servings),
		})
	}
	slices.SortFunc(nutrients, func(a, b NutrientRow) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	return Detail{
		Card: NewCard(r),
		Ingredients: IngredientsTab{
			Count: len(lines),
			Lines: lines,
		},
		Nutrition: NutritionTab{
			Calories:           int(math.Round(r.Calories)),
			CaloriesPerServing: int(math.Round(r.Calories / servings)),
			Servings:           servings,
			Nutrients:          nutrients,
		},
		Details: DetailsTab{
			DietLabels:   orEmpty(r.DietLabels),
			HealthLabels: orEmpty(r.HealthLabels),
			Cautions:     orEmpty(r.Cautions),
			CuisineType:  orEmpty(r.CuisineType),
			MealType:     orEmpty(r.MealType),
			DishType:     orEmpty(r.DishType),
			TotalWeight:  round1(r.TotalWeight),
			Source:       r.Source,
			URL:          r.URL,
		},
	}
}

// servingsOf treats a missing or non-positive yield as one serving
func servingsOf(r edamam.Recipe) float64 {
	if r.Yield <= 0 {
		return 1
	}
	return r.Yield
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
