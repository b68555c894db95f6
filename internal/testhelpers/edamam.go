package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// FakeEdamam is an httptest stand-in for the recipe search endpoint. Every request answers with
// the configured recipes unless a failure status is set.
type FakeEdamam struct {
	*httptest.Server

	mu       sync.Mutex
	recipes  []edamam.Recipe
	status   int
	body     string
	requests []url.Values
}

// NewFakeEdamam starts a fake API serving recipes
func NewFakeEdamam(t *testing.T, recipes ...edamam.Recipe) *FakeEdamam {
	t.Helper()
	f := &FakeEdamam{recipes: recipes}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Fail makes every following request answer with status and body
func (f *FakeEdamam) Fail(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

// Requests returns the query of every request received so far
func (f *FakeEdamam) Requests() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.requests...)
}

// Client returns an API client pointed at the fake with test credentials
func (f *FakeEdamam) Client(opts ...edamam.ClientOption) *edamam.Client {
	creds := edamam.Credentials{AppID: "test-id", AppKey: "test-key", AccountUser: "tester"}
	return edamam.NewClient(creds, append([]edamam.ClientOption{edamam.WithBaseURL(f.URL)}, opts...)...)
}

func (f *FakeEdamam) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Query())
	status, body, recipes := f.status, f.body, f.recipes
	f.mu.Unlock()

	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
		return
	}

	hits := make([]edamam.Hit, len(recipes))
	for i, recipe := range recipes {
		hits[i] = edamam.Hit{Recipe: recipe}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(edamam.SearchResponse{
		Hits:  hits,
		Count: len(hits),
		From:  1,
		To:    len(hits),
		More:  false,
		Q:     r.URL.Query().Get("q"),
	})
}

// SampleRecipe builds a recipe with a derived identifier of id
func SampleRecipe(id, label string, calories float64) edamam.Recipe {
	return edamam.Recipe{
		URI:             edamam.RecipeURIPrefix + id,
		Label:           label,
		Image:           "https://edamam-product-images.s3.amazonaws.com/" + id + ".jpg",
		Source:          "Test Kitchen",
		URL:             "https://example.com/recipes/" + id,
		Yield:           4,
		DietLabels:      []string{"Balanced"},
		HealthLabels:    []string{"Vegetarian"},
		IngredientLines: []string{"1 cup flour", "2 eggs"},
		Calories:        calories,
		TotalWeight:     500,
		CuisineType:     []string{"italian"},
		MealType:        []string{"lunch/dinner"},
		DishType:        []string{"main course"},
		TotalNutrients: map[string]edamam.Nutrient{
			"ENERC_KCAL": {Label: "Energy", Quantity: calories, Unit: "kcal"},
			"PROCNT":     {Label: "Protein", Quantity: 20, Unit: "g"},
		},
	}
}
