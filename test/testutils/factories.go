// Package testutils provides test data factories for consistent test
// data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
)

// RecipeFactory creates test recipes with randomized but plausible data
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Recipe creates an active recipe with random attributes
func (f *RecipeFactory) Recipe() *recipe.Recipe {
	cuisines := []recipe.CuisineType{
		recipe.CuisineTypeItalian,
		recipe.CuisineTypeJapanese,
		recipe.CuisineTypeMexican,
		recipe.CuisineTypeThai,
		recipe.CuisineTypeIndian,
	}
	complexities := []recipe.ComplexityLevel{
		recipe.ComplexityLevelEasy,
		recipe.ComplexityLevelMedium,
		recipe.ComplexityLevelHard,
	}
	portions := []recipe.PortionSize{
		recipe.PortionSizeSmall,
		recipe.PortionSizeMedium,
		recipe.PortionSizeLarge,
	}

	r, err := recipe.NewRecipe(
		f.faker.Dinner(),
		cuisines[f.faker.Number(0, len(cuisines)-1)],
		recipe.WithIngredients(f.faker.Vegetable(), f.faker.Fruit(), "olive oil"),
		recipe.WithNutritionalTags("high-protein"),
		recipe.WithComplexity(complexities[f.faker.Number(0, len(complexities)-1)]),
		recipe.WithPortionSize(portions[f.faker.Number(0, len(portions)-1)]),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// RecipeWith creates an active recipe with the given attributes
func (f *RecipeFactory) RecipeWith(cuisine recipe.CuisineType, tags []string, ingredients []string, complexity recipe.ComplexityLevel, portion recipe.PortionSize) *recipe.Recipe {
	r, err := recipe.NewRecipe(
		f.faker.Dinner(),
		cuisine,
		recipe.WithNutritionalTags(tags...),
		recipe.WithIngredients(ingredients...),
		recipe.WithComplexity(complexity),
		recipe.WithPortionSize(portion),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// PopularRecipe creates an active recipe with a fixed popularity counter
func (f *RecipeFactory) PopularRecipe(cuisine recipe.CuisineType, popularity int64) *recipe.Recipe {
	now := time.Now()
	return recipe.Reconstruct(
		uuid.New(),
		f.faker.Dinner(),
		cuisine,
		nil,
		nil,
		recipe.ComplexityLevelEasy,
		recipe.PortionSizeMedium,
		popularity,
		popularity,
		true,
		now,
		now,
	)
}

// NewTestUser creates a fresh user aggregate
func NewTestUser() *user.User {
	return user.NewUser(uuid.New())
}

// SwipeCountAchievement builds a swipe-count achievement definition
func SwipeCountAchievement(id string, requirement int) achievement.Definition {
	return achievement.Definition{
		ID:          id,
		Name:        id,
		Description: "test achievement",
		Type:        achievement.TypeSwipeCount,
		Requirement: requirement,
	}
}
