package api

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipeService}
}

// RegisterRoutes mounts the search routes; limits run before the search and lookup handlers
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limits ...gin.HandlerFunc) {
	group := router.Group("/recipes")
	{
		group.GET("/options", h.Options)
		group.GET("", slices.Concat(limits, []gin.HandlerFunc{h.Search})...)
		group.GET("/:id", slices.Concat(limits, []gin.HandlerFunc{h.GetRecipe})...)
	}
}

// Search handles GET /recipes?q=&from=&to=&sort= plus repeated filter parameters
func (h *RecipeHandler) Search(c *gin.Context) {
	from, err := intQuery(c, "from", 0)
	if err != nil {
		badRequest(c, "from must be an integer")
		return
	}
	to, err := intQuery(c, "to", from+edamam.DefaultPageSize)
	if err != nil {
		badRequest(c, "to must be an integer")
		return
	}

	result, err := h.recipes.Search(c.Request.Context(), service.SearchRequest{
		Query:   c.Query("q"),
		Filters: edamam.FiltersFromQuery(c.Request.URL.Query()),
		From:    from,
		To:      to,
		Sort:    recipes.SortOption(c.Query("sort")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Count:         result.Count,
		From:          result.From,
		To:            result.To,
		More:          result.More,
		Q:             result.Query,
		Recipes:       recipes.NewCards(result.Recipes),
		Notifications: middleware.Notifications(c),
	})
}

// GetRecipe handles GET /recipes/:id where id is a derived identifier
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecipeResponse{
		Recipe:        recipes.NewDetail(*recipe),
		Notifications: middleware.Notifications(c),
	})
}

// Options handles GET /recipes/options
func (h *RecipeHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, newOptionsResponse())
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
