package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	bytes, err := asBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// RecipePayload keeps the full API record of a saved recipe
type RecipePayload edamam.Recipe

// Value implements the driver.Valuer interface
func (p RecipePayload) Value() (driver.Value, error) {
	b, err := json.Marshal(edamam.Recipe(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (p *RecipePayload) Scan(value interface{}) error {
	if value == nil {
		*p = RecipePayload{}
		return nil
	}
	bytes, err := asBytes(value)
	if err != nil {
		return err
	}
	var r edamam.Recipe
	if err := json.Unmarshal(bytes, &r); err != nil {
		return err
	}
	*p = RecipePayload(r)
	return nil
}

func asBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}

// SavedRecipe is a recipe a user kept from search results
type SavedRecipe struct {
	ID         uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	UserID     uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_recipes_user_recipe" json:"user_id"`
	RecipeID   string           `gorm:"size:64;not null;uniqueIndex:idx_saved_recipes_user_recipe" json:"recipe_id"`
	URI        string           `gorm:"size:255;not null" json:"uri"`
	Label      string           `gorm:"size:255;not null" json:"label"`
	Source     string           `gorm:"size:255" json:"source"`
	SourceURL  string           `gorm:"size:1024" json:"source_url"`
	ImageURL   string           `gorm:"size:1024" json:"image_url"`
	Calories   float64          `gorm:"type:float" json:"calories"`
	DietLabels JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diet_labels"`
	Notes      string           `gorm:"type:text" json:"notes"`
	Payload    RecipePayload    `gorm:"type:jsonb;not null" json:"-"`
	Embedding  pgvector.Vector  `gorm:"type:vector(64)" json:"-"`
}

// BeforeCreate assigns an ID when none is set
func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Recipe returns the stored API record with the mirrored image, if any
func (s *SavedRecipe) Recipe() edamam.Recipe {
	r := edamam.Recipe(s.Payload)
	if s.ImageURL != "" {
		r.Image = s.ImageURL
	}
	return r
}
