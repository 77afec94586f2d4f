package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastevine/v1/internal/domain/remedy"
	"github.com/tastevine/v1/internal/ports/outbound"
)

// RemedyRepository implements the remedy repository interface using GORM
type RemedyRepository struct {
	db *gorm.DB
}

// NewRemedyRepository creates a new remedy repository
func NewRemedyRepository(db *gorm.DB) outbound.RemedyRepository {
	return &RemedyRepository{db: db}
}

// Create creates a new remedy
func (r *RemedyRepository) Create(ctx context.Context, entity *remedy.Remedy) error {
	model := RemedyToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a remedy by ID
func (r *RemedyRepository) FindByID(ctx context.Context, id uuid.UUID) (*remedy.Remedy, error) {
	var model RemedyModel
	err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, remedy.ErrNotFound
		}
		return nil, err
	}
	return ModelToRemedy(&model), nil
}

// FindNewest returns remedies newest-first with the total count
func (r *RemedyRepository) FindNewest(ctx context.Context, offset, limit int) ([]*remedy.Remedy, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RemedyModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RemedyModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	entities := make([]*remedy.Remedy, len(models))
	for i := range models {
		entities[i] = ModelToRemedy(&models[i])
	}
	return entities, int(total), nil
}
