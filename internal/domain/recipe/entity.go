// Package recipe contains the core domain logic for the recipe catalog.
// Catalog entries are immutable apart from their popularity counters.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents a catalog entry served to the swipe feed.
type Recipe struct {
	id      uuid.UUID
	title   string
	cuisine CuisineType

	nutritionalTags []string
	ingredients     []string
	complexity      ComplexityLevel
	portionSize     PortionSize

	// Engagement counters. Monotonically non-decreasing; only a
	// right-swipe moves them, through the repository's atomic increment.
	popularity int64
	likes      int64

	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewRecipe creates a new catalog entry with validation
func NewRecipe(title string, cuisine CuisineType, opts ...Option) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		id:        uuid.New(),
		title:     title,
		cuisine:   cuisine,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Option configures optional catalog attributes at construction time.
type Option func(*Recipe)

// WithNutritionalTags sets the nutritional tag set
func WithNutritionalTags(tags ...string) Option {
	return func(r *Recipe) { r.nutritionalTags = tags }
}

// WithIngredients sets the ordered ingredient list
func WithIngredients(ingredients ...string) Option {
	return func(r *Recipe) { r.ingredients = ingredients }
}

// WithComplexity sets the complexity level
func WithComplexity(level ComplexityLevel) Option {
	return func(r *Recipe) { r.complexity = level }
}

// WithPortionSize sets the portion size
func WithPortionSize(size PortionSize) Option {
	return func(r *Recipe) { r.portionSize = size }
}

// Reconstruct rebuilds a Recipe from persisted state. Used by repository
// mappers only; it performs no validation.
func Reconstruct(
	id uuid.UUID,
	title string,
	cuisine CuisineType,
	nutritionalTags []string,
	ingredients []string,
	complexity ComplexityLevel,
	portionSize PortionSize,
	popularity, likes int64,
	active bool,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:              id,
		title:           title,
		cuisine:         cuisine,
		nutritionalTags: nutritionalTags,
		ingredients:     ingredients,
		complexity:      complexity,
		portionSize:     portionSize,
		popularity:      popularity,
		likes:           likes,
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Cuisine returns the recipe's cuisine type
func (r *Recipe) Cuisine() CuisineType {
	return r.cuisine
}

// NutritionalTags returns the recipe's nutritional tag set
func (r *Recipe) NutritionalTags() []string {
	return r.nutritionalTags
}

// Ingredients returns the ordered ingredient list
func (r *Recipe) Ingredients() []string {
	return r.ingredients
}

// Complexity returns the complexity level
func (r *Recipe) Complexity() ComplexityLevel {
	return r.complexity
}

// PortionSize returns the portion size
func (r *Recipe) PortionSize() PortionSize {
	return r.portionSize
}

// Popularity returns the aggregate popularity counter
func (r *Recipe) Popularity() int64 {
	return r.popularity
}

// Likes returns the like counter
func (r *Recipe) Likes() int64 {
	return r.likes
}

// IsActive reports whether the recipe is served to feeds
func (r *Recipe) IsActive() bool {
	return r.active
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// HasTag reports whether the recipe carries the given nutritional tag
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.nutritionalTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Deactivate removes the recipe from candidate feeds
func (r *Recipe) Deactivate() {
	r.active = false
	r.updatedAt = time.Now()
}

// RecordLike bumps the like and popularity counters after a right swipe
func (r *Recipe) RecordLike() {
	r.likes++
	r.popularity++
	r.updatedAt = time.Now()
}

func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
