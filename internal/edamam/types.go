package edamam

// Nutrient is one entry of a recipe's totalNutrients map
type Nutrient struct {
	Label    string  `json:"label" yaml:"label"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
}

// Recipe is a recipe record exactly as returned by the Edamam API
type Recipe struct {
	URI             string              `json:"uri" yaml:"uri"`
	Label           string              `json:"label" yaml:"label"`
	Image           string              `json:"image" yaml:"image"`
	Source          string              `json:"source" yaml:"source"`
	URL             string              `json:"url" yaml:"url"`
	Yield           float64             `json:"yield" yaml:"yield"`
	DietLabels      []string            `json:"dietLabels" yaml:"dietLabels"`
	HealthLabels    []string            `json:"healthLabels" yaml:"healthLabels"`
	Cautions        []string            `json:"cautions" yaml:"cautions"`
	IngredientLines []string            `json:"ingredientLines" yaml:"ingredientLines"`
	Calories        float64             `json:"calories" yaml:"calories"`
	TotalWeight     float64             `json:"totalWeight" yaml:"totalWeight"`
	CuisineType     []string            `json:"cuisineType" yaml:"cuisineType"`
	MealType        []string            `json:"mealType" yaml:"mealType"`
	DishType        []string            `json:"dishType" yaml:"dishType"`
	TotalNutrients  map[string]Nutrient `json:"totalNutrients" yaml:"totalNutrients"`
}

// ID returns the derived identifier of the recipe
func (r *Recipe) ID() string {
	return RecipeIDFromURI(r.URI)
}

// Hit wraps a single recipe in a search response
type Hit struct {
	Recipe Recipe `json:"recipe" yaml:"recipe"`
}

// SearchResponse is one page of search results
type SearchResponse struct {
	Hits  []Hit  `json:"hits" yaml:"hits"`
	Count int    `json:"count" yaml:"count"`
	From  int    `json:"from" yaml:"from"`
	To    int    `json:"to" yaml:"to"`
	More  bool   `json:"more" yaml:"more"`
	Q     string `json:"q" yaml:"q"`
}

// Recipes returns the recipes of the page in received order
func (r *SearchResponse) Recipes() []Recipe {
	recipes := make([]Recipe, len(r.Hits))
	for i, hit := range r.Hits {
		recipes[i] = hit.Recipe
	}
	return recipes
}

// rawSearchResponse lets the client tell a missing hits array from an empty one
type rawSearchResponse struct {
	Hits  *[]Hit `json:"hits"`
	Count int    `json:"count"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	More  bool   `json:"more"`
	Q     string `json:"q"`
}
