package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/notify"
	"github.com/pageza/recipe-finder/backend/internal/recipes"
)

var (
	ErrAlreadySaved        = errors.New("recipe already saved")
	ErrSavedRecipeNotFound = errors.New("saved recipe not found")
	ErrInvalidRecipe       = errors.New("recipe has no identifier or label")
)

// SavedRecipeService keeps the recipes a user chose to save
type SavedRecipeService struct {
	db       *gorm.DB
	images   ImageMirror
	notifier notify.Notifier
	log      zerolog.Logger
}

// ImageKeptMessage tells the user a saved recipe still points at the expiring API image
const ImageKeptMessage = "Recipe saved, but its image could not be copied and may stop loading."

// NewSavedRecipeService creates a new SavedRecipeService instance. images and notifier may be nil.
func NewSavedRecipeService(db *gorm.DB, images ImageMirror, notifier notify.Notifier, log zerolog.Logger) *SavedRecipeService {
	return &SavedRecipeService{
		db:       db,
		images:   images,
		notifier: notifier,
		log:      log,
	}
}

// Save stores a snapshot of recipe for the user
func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe edamam.Recipe, notes string) (*model.SavedRecipe, error) {
	recipeID := recipe.ID()
	if recipeID == "" || strings.TrimSpace(recipe.Label) == "" {
		return nil, ErrInvalidRecipe
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check saved recipe: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadySaved
	}

	saved := model.SavedRecipe{
		UserID:     userID,
		RecipeID:   recipeID,
		URI:        recipe.URI,
		Label:      recipe.Label,
		Source:     recipe.Source,
		SourceURL:  recipe.URL,
		ImageURL:   recipe.Image,
		Calories:   recipe.Calories,
		DietLabels: model.JSONBStringArray(recipe.DietLabels),
		Notes:      strings.TrimSpace(notes),
		Payload:    model.RecipePayload(recipe),
		Embedding:  GenerateEmbedding(embeddingText(recipe)),
	}

	if s.images != nil && recipe.Image != "" {
		mirrored, err := s.images.MirrorImage(ctx, recipeID, recipe.Image)
		if err != nil {
			s.log.Warn().Err(err).Str("recipe_id", recipeID).Msg("[SavedRecipeService] Keeping original image URL")
			notify.Info(ctx, s.notifier, ImageKeptMessage)
		} else {
			saved.ImageURL = mirrored
		}
	}

	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.log.Info().Str("user_id", userID.String()).Str("recipe_id", recipeID).Msg("[SavedRecipeService] Recipe saved")
	return &saved, nil
}

// List returns the user's saved recipes. A non-empty query narrows the set; the result is then
// ordered by sort.
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID, query string, sort recipes.SortOption) ([]model.SavedRecipe, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if search := strings.TrimSpace(query); search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			q = q.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(label) LIKE ? OR LOWER(source) LIKE ?", like, like)
		}
	} else {
		q = q.Order("created_at DESC")
	}

	var saved []model.SavedRecipe
	if err := q.Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}

	return sortSaved(saved, sort), nil
}

// Get returns one saved recipe of the user
func (s *SavedRecipeService) Get(ctx context.Context, userID uuid.UUID, recipeID string) (*model.SavedRecipe, error) {
	var saved model.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSavedRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}
	return &saved, nil
}

// Delete removes a saved recipe of the user
func (s *SavedRecipeService) Delete(ctx context.Context, userID uuid.UUID, recipeID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.SavedRecipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSavedRecipeNotFound
	}
	return nil
}

func embeddingText(recipe edamam.Recipe) string {
	parts := append([]string{recipe.Label}, recipe.CuisineType...)
	parts = append(parts, recipe.DishType...)
	parts = append(parts, recipe.MealType...)
	parts = append(parts, recipe.DietLabels...)
	return strings.Join(parts, " ")
}

// sortSaved orders saved recipes with the same sort keys as search results
func sortSaved(saved []model.SavedRecipe, option recipes.SortOption) []model.SavedRecipe {
	if option == "" || option == recipes.SortDefault || len(saved) < 2 {
		return saved
	}

	byID := make(map[string]model.SavedRecipe, len(saved))
	snapshots := make([]edamam.Recipe, 0, len(saved))
	for _, sr := range saved {
		byID[sr.RecipeID] = sr
		r := sr.Recipe()
		// the list is keyed by the saved row, not by whatever the payload carries
		r.URI = edamam.RecipeURIPrefix + sr.RecipeID
		r.Label = sr.Label
		r.Calories = sr.Calories
		snapshots = append(snapshots, r)
	}

	out := make([]model.SavedRecipe, 0, len(saved))
	for _, r := range recipes.Sorted(snapshots, option) {
		out = append(out, byID[r.ID()])
	}
	return out
}
