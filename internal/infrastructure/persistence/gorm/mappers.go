// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID(),
		Title:           r.Title(),
		Cuisine:         string(r.Cuisine()),
		NutritionalTags: StringSlice(r.NutritionalTags()),
		Ingredients:     StringSlice(r.Ingredients()),
		Complexity:      string(r.Complexity()),
		PortionSize:     string(r.PortionSize()),
		Popularity:      r.Popularity(),
		Likes:           r.Likes(),
		IsActive:        r.IsActive(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	return recipe.Reconstruct(
		model.ID,
		model.Title,
		recipe.CuisineType(model.Cuisine),
		[]string(model.NutritionalTags),
		[]string(model.Ingredients),
		recipe.ComplexityLevel(model.Complexity),
		recipe.PortionSize(model.PortionSize),
		model.Popularity,
		model.Likes,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// UserToModel converts a domain user to its base GORM model. Swipes,
// saved recipes, meal history, and achievements live in their own tables
// and are written through the engagement store.
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:            u.ID(),
		CurrentStreak: u.CurrentStreak(),
		LongestStreak: u.LongestStreak(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

// ModelToUser rebuilds the user aggregate from the base row plus its
// loaded relationship rows.
func ModelToUser(model *UserModel) *user.User {
	swipes := make(map[uuid.UUID]user.SwipeDirection, len(model.Swipes))
	for _, s := range model.Swipes {
		swipes[s.RecipeID] = user.SwipeDirection(s.Direction)
	}

	saved := make(map[uuid.UUID]struct{}, len(model.SavedRecipes))
	for _, s := range model.SavedRecipes {
		saved[s.RecipeID] = struct{}{}
	}

	history := make([]user.MealEntry, 0, len(model.MealEntries))
	for _, m := range model.MealEntries {
		history = append(history, user.MealEntry{
			MealID:    m.MealID,
			Rating:    m.Rating,
			Notes:     m.Notes,
			Timestamp: m.Timestamp,
		})
	}

	achievements := make(map[string]time.Time, len(model.Achievements))
	for _, a := range model.Achievements {
		achievements[a.AchievementID] = a.UnlockedAt
	}

	return user.Reconstruct(
		model.ID,
		swipes,
		saved,
		history,
		achievements,
		model.CurrentStreak,
		model.LongestStreak,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ModelToDefinition converts an achievement row to its domain definition
func ModelToDefinition(model *AchievementModel) achievement.Definition {
	return achievement.Definition{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Type:        achievement.Type(model.Type),
		Requirement: model.Requirement,
	}
}

// DefinitionToModel converts a domain definition to an achievement row
func DefinitionToModel(def achievement.Definition) *AchievementModel {
	return &AchievementModel{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Type:        string(def.Type),
		Requirement: def.Requirement,
	}
}
