package recipes

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// SortOption is a sort key offered by the result list
type SortOption string

const (
	SortDefault      SortOption = "default"
	SortCaloriesAsc  SortOption = "calories-asc"
	SortCaloriesDesc SortOption = "calories-desc"
	SortAlphaAsc     SortOption = "alpha-asc"
	SortAlphaDesc    SortOption = "alpha-desc"
)

// SortOptions lists the sort keys with their display labels, in menu order
var SortOptions = []edamam.Option{
	{Value: string(SortDefault), Label: "Default"},
	{Value: string(SortCaloriesAsc), Label: "Calories (Low to High)"},
	{Value: string(SortCaloriesDesc), Label: "Calories (High to Low)"},
	{Value: string(SortAlphaAsc), Label: "Name (A-Z)"},
	{Value: string(SortAlphaDesc), Label: "Name (Z-A)"},
}

// ParseSortOption parses a sort key; the empty string means default
func ParseSortOption(s string) (SortOption, error) {
	switch opt := SortOption(s); opt {
	case "":
		return SortDefault, nil
	case SortDefault, SortCaloriesAsc, SortCaloriesDesc, SortAlphaAsc, SortAlphaDesc:
		return opt, nil
	default:
		return "", fmt.Errorf("unknown sort option %q", s)
	}
}

// Sorted returns a reordered copy of recipes. The input slice is never modified and ties keep
// their original relative order.
func Sorted(recipes []edamam.Recipe, option SortOption) []edamam.Recipe {
	sorted := slices.Clone(recipes)

	switch option {
	case SortCaloriesAsc:
		slices.SortStableFunc(sorted, func(a, b edamam.Recipe) int {
			return cmp.Compare(a.Calories, b.Calories)
		})
	case SortCaloriesDesc:
		slices.SortStableFunc(sorted, func(a, b edamam.Recipe) int {
			return cmp.Compare(b.Calories, a.Calories)
		})
	case SortAlphaAsc, SortAlphaDesc:
		// a Collator keeps internal buffers, so each call gets its own
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(sorted, func(a, b edamam.Recipe) int {
			if option == SortAlphaDesc {
				return c.CompareString(b.Label, a.Label)
			}
			return c.CompareString(a.Label, b.Label)
		})
	}

	return sorted
}
