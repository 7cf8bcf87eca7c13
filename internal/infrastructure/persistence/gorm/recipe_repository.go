package gorm

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"gorm.io/gorm"
)

// RecipeRepository implements the catalog repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("create recipe", err)
	}
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find recipe", result.Error)
	}

	return ModelToRecipe(&model), nil
}

// FindActiveExcluding returns active recipes not in the exclusion set,
// most popular first. A limit of 0 returns all matches.
func (r *RecipeRepository) FindActiveExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("popularity DESC")

	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []RecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("list active recipes", err)
	}

	return modelsToRecipes(models), nil
}

// FindSimilar returns active recipes sharing the cuisine, excluding the
// recipe itself, most popular first.
func (r *RecipeRepository) FindSimilar(ctx context.Context, cuisine recipe.CuisineType, excludeID uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("cuisine = ?", string(cuisine)).
		Where("id <> ?", excludeID).
		Order("popularity DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []RecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("find similar recipes", err)
	}

	return modelsToRecipes(models), nil
}

func modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes
}
