package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type SavedRecipeHandler struct {
	saved   service.ISavedRecipeService
	recipes service.IRecipeService
	auth    middleware.TokenValidator
}

func NewSavedRecipeHandler(saved service.ISavedRecipeService, recipeService service.IRecipeService, auth middleware.TokenValidator) *SavedRecipeHandler {
	return &SavedRecipeHandler{
		saved:   saved,
		recipes: recipeService,
		auth:    auth,
	}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved")
	saved.Use(middleware.AuthMiddleware(h.auth))
	{
		saved.GET("", h.List)
		saved.GET("/:id", h.Get)
		saved.POST("", h.Save)
		saved.DELETE("/:id", h.Delete)
	}
}

// List handles GET /saved?q=&sort=
func (h *SavedRecipeHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sort, err := recipes.ParseSortOption(c.Query("sort"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	saved, err := h.saved.List(c.Request.Context(), userID, c.Query("q"), sort)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]SavedRecipeResponse, len(saved))
	for i, s := range saved {
		out[i] = newSavedRecipeResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes": out,
	})
}

// Get handles GET /saved/:id with the stored detail panel, so a saved recipe opens without
// another API call
func (h *SavedRecipeHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	saved, err := h.saved.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SavedRecipeDetailResponse{
		SavedRecipeResponse: newSavedRecipeResponse(*saved),
		Detail:              recipes.NewDetail(saved.Recipe()),
	})
}

// Save handles POST /saved. The recipe is resolved by its identifier so the stored snapshot
// is the API's record, not whatever the client sent.
func (h *SavedRecipeHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.saved.Save(c.Request.Context(), userID, *recipe, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe":        newSavedRecipeResponse(*saved),
		"notifications": middleware.Notifications(c),
	})
}

// Delete handles DELETE /saved/:id
func (h *SavedRecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if err := h.saved.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed from saved recipes",
		"id":      id,
	})
}
