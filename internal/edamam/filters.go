package edamam

import (
	"fmt"
	"net/url"
	"strings"
)

// FilterCategory is a named search facet
type FilterCategory string

const (
	Diet        FilterCategory = "diet"
	Health      FilterCategory = "health"
	CuisineType FilterCategory = "cuisineType"
	MealType    FilterCategory = "mealType"
	DishType    FilterCategory = "dishType"
)

// Categories lists the filter categories in the order they are encoded into a query
var Categories = []FilterCategory{Diet, Health, CuisineType, MealType, DishType}

// Filters maps a filter category to the selected option values
type Filters map[FilterCategory][]string

// Option is a selectable filter value with its display label
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// DietOptions are the supported diet filter values
var DietOptions = []Option{
	{Value: "balanced", Label: "Balanced"},
	{Value: "high-fiber", Label: "High Fiber"},
	{Value: "high-protein", Label: "High Protein"},
	{Value: "low-carb", Label: "Low Carb"},
	{Value: "low-fat", Label: "Low Fat"},
	{Value: "low-sodium", Label: "Low Sodium"},
}

// HealthOptions are the supported health filter values
var HealthOptions = []Option{
	{Value: "alcohol-free", Label: "Alcohol-free"},
	{Value: "dairy-free", Label: "Dairy-free"},
	{Value: "egg-free", Label: "Egg-free"},
	{Value: "gluten-free", Label: "Gluten-free"},
	{Value: "keto-friendly", Label: "Keto"},
	{Value: "kosher", Label: "Kosher"},
	{Value: "low-sugar", Label: "Low Sugar"},
	{Value: "paleo", Label: "Paleo"},
	{Value: "peanut-free", Label: "Peanut-free"},
	{Value: "pescatarian", Label: "Pescatarian"},
	{Value: "vegan", Label: "Vegan"},
	{Value: "vegetarian", Label: "Vegetarian"},
}

// MealTypeOptions are the supported meal type filter values
var MealTypeOptions = []Option{
	{Value: "breakfast", Label: "Breakfast"},
	{Value: "lunch", Label: "Lunch"},
	{Value: "dinner", Label: "Dinner"},
	{Value: "snack", Label: "Snack"},
	{Value: "teatime", Label: "Teatime"},
}

// CuisineTypeOptions are the supported cuisine type filter values
var CuisineTypeOptions = []Option{
	{Value: "american", Label: "American"},
	{Value: "asian", Label: "Asian"},
	{Value: "caribbean", Label: "Caribbean"},
	{Value: "chinese", Label: "Chinese"},
	{Value: "french", Label: "French"},
	{Value: "indian", Label: "Indian"},
	{Value: "italian", Label: "Italian"},
	{Value: "japanese", Label: "Japanese"},
	{Value: "mediterranean", Label: "Mediterranean"},
	{Value: "mexican", Label: "Mexican"},
	{Value: "middle eastern", Label: "Middle Eastern"},
}

// DishTypeOptions are the dish types accepted by the API
var DishTypeOptions = []Option{
	{Value: "biscuits and cookies", Label: "Biscuits and Cookies"},
	{Value: "bread", Label: "Bread"},
	{Value: "cereals", Label: "Cereals"},
	{Value: "condiments and sauces", Label: "Condiments and Sauces"},
	{Value: "desserts", Label: "Desserts"},
	{Value: "drinks", Label: "Drinks"},
	{Value: "main course", Label: "Main Course"},
	{Value: "pancake", Label: "Pancake"},
	{Value: "preps", Label: "Preps"},
	{Value: "preserve", Label: "Preserve"},
	{Value: "salad", Label: "Salad"},
	{Value: "sandwiches", Label: "Sandwiches"},
	{Value: "side dish", Label: "Side Dish"},
	{Value: "soup", Label: "Soup"},
	{Value: "starter", Label: "Starter"},
	{Value: "sweets", Label: "Sweets"},
}

// OptionsFor returns the option catalogue of a filter category
func OptionsFor(category FilterCategory) []Option {
	switch category {
	case Diet:
		return DietOptions
	case Health:
		return HealthOptions
	case CuisineType:
		return CuisineTypeOptions
	case MealType:
		return MealTypeOptions
	case DishType:
		return DishTypeOptions
	default:
		return nil
	}
}

// Validate reports every selected value that is not in its category's catalogue
func (f Filters) Validate() error {
	var problems []string
	for category, values := range f {
		options := OptionsFor(category)
		if options == nil {
			problems = append(problems, fmt.Sprintf("unknown filter category %q", category))
			continue
		}
		for _, v := range values {
			if !hasOption(options, v) {
				problems = append(problems, fmt.Sprintf("invalid %s option %q", category, v))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid filters: %s", strings.Join(problems, "; "))
	}
	return nil
}

// FiltersFromQuery collects filter values from repeated query parameters
func FiltersFromQuery(values url.Values) Filters {
	filters := Filters{}
	for _, category := range Categories {
		if selected := values[string(category)]; len(selected) > 0 {
			filters[category] = append([]string(nil), selected...)
		}
	}
	return filters
}

// encode appends one parameter per selected value, categories in fixed order
func (f Filters) encode(params url.Values) {
	for _, category := range Categories {
		for _, v := range f[category] {
			params.Add(string(category), v)
		}
	}
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
