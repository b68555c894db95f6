package edamam

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltersEncode_OneParamPerValue(t *testing.T) {
	filters := Filters{
		CuisineType: {"italian", "middle eastern"},
		DishType:    {"soup"},
		Diet:        nil,
	}
	params := url.Values{}
	filters.encode(params)

	assert.Equal(t, []string{"italian", "middle eastern"}, params["cuisineType"])
	assert.Equal(t, []string{"soup"}, params["dishType"])
	assert.NotContains(t, params, "diet")
	assert.Equal(t, "cuisineType=italian&cuisineType=middle+eastern&dishType=soup", params.Encode())
}

func TestFiltersValidate(t *testing.T) {
	assert.NoError(t, Filters{Diet: {"balanced"}, Health: {"vegan", "kosher"}}.Validate())
	assert.NoError(t, Filters{}.Validate())

	err := Filters{Diet: {"carnivore"}, "color": {"red"}}.Validate()
	assert.ErrorContains(t, err, `invalid diet option "carnivore"`)
	assert.ErrorContains(t, err, `unknown filter category "color"`)
}

func TestFiltersFromQuery(t *testing.T) {
	values, _ := url.ParseQuery("q=soup&health=vegan&health=egg-free&mealType=lunch&unknown=1")
	filters := FiltersFromQuery(values)

	assert.Equal(t, Filters{
		Health:   {"vegan", "egg-free"},
		MealType: {"lunch"},
	}, filters)
}

func TestOptionsFor(t *testing.T) {
	for _, c := range Categories {
		assert.NotEmpty(t, OptionsFor(c), string(c))
	}
	assert.Nil(t, OptionsFor("nope"))
}
