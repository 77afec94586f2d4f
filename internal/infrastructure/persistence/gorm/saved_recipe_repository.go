package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/ports/outbound"
)

// SavedRecipeRepository stores AI-generated recipes a user chose to keep
type SavedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved recipe repository
func NewSavedRecipeRepository(db *gorm.DB) outbound.SavedRecipeRepository {
	return &SavedRecipeRepository{db: db}
}

// Save keeps a generated recipe for the user
func (r *SavedRecipeRepository) Save(ctx context.Context, userID uuid.UUID, generated *recipe.Generated) (uuid.UUID, error) {
	doc, err := GeneratedToDocument(generated)
	if err != nil {
		return uuid.Nil, err
	}

	model := SavedRecipeModel{
		UserID:   userID,
		Document: doc,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return uuid.Nil, err
	}
	return model.ID, nil
}

// FindByUser returns the user's saved recipes, newest first
func (r *SavedRecipeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]outbound.SavedRecipe, error) {
	var models []SavedRecipeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]outbound.SavedRecipe, 0, len(models))
	for i := range models {
		generated, err := DocumentToGenerated(models[i].Document)
		if err != nil {
			// A corrupt document should not hide the rest of the list.
			continue
		}
		records = append(records, outbound.SavedRecipe{
			ID:        models[i].ID,
			UserID:    models[i].UserID,
			Recipe:    *generated,
			CreatedAt: models[i].CreatedAt,
		})
	}
	return records, nil
}
