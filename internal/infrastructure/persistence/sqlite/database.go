// Package sqlite provides SQLite database setup for development and tests
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	gormModels "github.com/savorly/engine/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.UserModel{},
		&gormModels.RecipeModel{},
		&gormModels.SwipeModel{},
		&gormModels.SavedRecipeModel{},
		&gormModels.MealEntryModel{},
		&gormModels.AchievementModel{},
		&gormModels.UserAchievementModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with the achievement catalog and a
// small demo recipe set.
func SeedDatabase(db *gorm.DB) error {
	var achievementCount int64
	db.Model(&gormModels.AchievementModel{}).Count(&achievementCount)
	if achievementCount == 0 {
		if err := db.Create(defaultAchievements()).Error; err != nil {
			return fmt.Errorf("failed to seed achievements: %w", err)
		}
	}

	var recipeCount int64
	db.Model(&gormModels.RecipeModel{}).Count(&recipeCount)
	if recipeCount == 0 {
		if err := db.Create(demoRecipes()).Error; err != nil {
			return fmt.Errorf("failed to seed recipes: %w", err)
		}
	}

	return nil
}

func defaultAchievements() []gormModels.AchievementModel {
	return []gormModels.AchievementModel{
		{ID: "first-swipe", Name: "First Taste", Description: "Swipe on your first recipe", Type: "swipe_count", Requirement: 1},
		{ID: "swipe-explorer", Name: "Recipe Explorer", Description: "Swipe on 10 recipes", Type: "swipe_count", Requirement: 10},
		{ID: "swipe-master", Name: "Swipe Master", Description: "Swipe on 100 recipes", Type: "swipe_count", Requirement: 100},
		{ID: "collector", Name: "Collector", Description: "Save 5 recipes", Type: "recipes_saved", Requirement: 5},
		{ID: "curator", Name: "Curator", Description: "Save 25 recipes", Type: "recipes_saved", Requirement: 25},
		{ID: "home-cook", Name: "Home Cook", Description: "Cook your first recipe", Type: "recipes_cooked", Requirement: 1},
		{ID: "seasoned-chef", Name: "Seasoned Chef", Description: "Cook 10 recipes", Type: "recipes_cooked", Requirement: 10},
		{ID: "week-streak", Name: "Consistency", Description: "Cook 7 days in a row", Type: "streak", Requirement: 7},
		{ID: "month-streak", Name: "Habit Builder", Description: "Cook 30 days in a row", Type: "streak", Requirement: 30},
	}
}

func demoRecipes() []gormModels.RecipeModel {
	return []gormModels.RecipeModel{
		{
			ID:              uuid.New(),
			Title:           "Classic Margherita Pizza",
			Cuisine:         "italian",
			NutritionalTags: gormModels.StringSlice{"vegetarian"},
			Ingredients:     gormModels.StringSlice{"pizza dough", "tomato sauce", "mozzarella", "basil", "olive oil"},
			Complexity:      "medium",
			PortionSize:     "medium",
			Popularity:      42,
			IsActive:        true,
		},
		{
			ID:              uuid.New(),
			Title:           "Chicken Teriyaki Bowl",
			Cuisine:         "japanese",
			NutritionalTags: gormModels.StringSlice{"high-protein"},
			Ingredients:     gormModels.StringSlice{"chicken thigh", "soy sauce", "mirin", "rice", "scallions"},
			Complexity:      "easy",
			PortionSize:     "large",
			Popularity:      35,
			IsActive:        true,
		},
		{
			ID:              uuid.New(),
			Title:           "Thai Green Curry",
			Cuisine:         "thai",
			NutritionalTags: gormModels.StringSlice{"gluten-free", "spicy"},
			Ingredients:     gormModels.StringSlice{"green curry paste", "coconut milk", "chicken", "thai basil", "fish sauce"},
			Complexity:      "medium",
			PortionSize:     "medium",
			Popularity:      28,
			IsActive:        true,
		},
		{
			ID:              uuid.New(),
			Title:           "Lentil Soup",
			Cuisine:         "mediterranean",
			NutritionalTags: gormModels.StringSlice{"vegan", "high-fiber"},
			Ingredients:     gormModels.StringSlice{"red lentils", "onion", "carrot", "cumin", "vegetable stock"},
			Complexity:      "easy",
			PortionSize:     "large",
			Popularity:      19,
			IsActive:        true,
		},
	}
}
