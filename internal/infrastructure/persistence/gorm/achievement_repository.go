package gorm

import (
	"context"
	stderrors "errors"

	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"gorm.io/gorm"
)

// AchievementRepository reads the curated achievement catalog using GORM
type AchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *gorm.DB) outbound.AchievementRepository {
	return &AchievementRepository{db: db}
}

// FindAll returns every achievement definition in the catalog
func (r *AchievementRepository) FindAll(ctx context.Context) ([]achievement.Definition, error) {
	var models []AchievementModel

	if err := r.db.WithContext(ctx).Order("requirement ASC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("list achievements", err)
	}

	defs := make([]achievement.Definition, 0, len(models))
	for i := range models {
		defs = append(defs, ModelToDefinition(&models[i]))
	}
	return defs, nil
}

// FindByID returns one achievement definition
func (r *AchievementRepository) FindByID(ctx context.Context, id string) (achievement.Definition, error) {
	var model AchievementModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return achievement.Definition{}, errors.NewAchievementNotFoundError(id)
		}
		return achievement.Definition{}, errors.NewDatabaseError("find achievement", result.Error)
	}

	return ModelToDefinition(&model), nil
}
