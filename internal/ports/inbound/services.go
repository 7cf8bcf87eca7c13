// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/user"
)

// RecommendationService drives the swipe feed: preference extraction,
// candidate filtering, and ranking.
type RecommendationService interface {
	// GetRecommendations returns the ranked, de-duplicated candidate feed
	// for the user, plus the preference profile it was ranked with
	// (nil when extraction failed or no signal exists).
	GetRecommendations(ctx context.Context, userID uuid.UUID) (*RecommendationsDTO, error)

	// NextBatch returns a shorter ranked batch, used to prefetch the next
	// cards right after a swipe without a second round trip.
	NextBatch(ctx context.Context, userID uuid.UUID) ([]RecipeDTO, error)

	// GetRecipeDetail returns one catalog entry with similar recipes.
	GetRecipeDetail(ctx context.Context, recipeID uuid.UUID) (*RecipeDetailDTO, error)
}

// EngagementService records swipes and maintains derived progress and
// achievement state.
type EngagementService interface {
	// RecordSwipe validates and atomically applies a swipe decision, then
	// returns the next preference-filtered batch.
	RecordSwipe(ctx context.Context, cmd RecordSwipeCommand) (*SwipeResultDTO, error)

	// CheckAchievements evaluates all unearned achievement definitions
	// against the user's counters and unlocks newly satisfied ones in one
	// batch. Returns the newly unlocked definitions, possibly empty.
	CheckAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementDTO, error)

	// ListAchievements returns every definition annotated with the user's
	// unlock state.
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementViewDTO, error)

	// GetProgress returns a snapshot of the counters achievements are
	// evaluated against.
	GetProgress(ctx context.Context, userID uuid.UUID) (*ProgressDTO, error)

	// MealHistory returns the user's ordered cooked-meal history.
	MealHistory(ctx context.Context, userID uuid.UUID) ([]MealEntryDTO, error)

	// AddMealEntry appends a cooked meal, rolls streak counters, and
	// re-checks achievements. Returns any newly unlocked definitions.
	AddMealEntry(ctx context.Context, cmd AddMealEntryCommand) ([]AchievementDTO, error)
}

// RecordSwipeCommand carries one validated swipe decision
type RecordSwipeCommand struct {
	UserID    uuid.UUID
	RecipeID  uuid.UUID
	Direction user.SwipeDirection
}

// AddMealEntryCommand appends one cooked meal to the history
type AddMealEntryCommand struct {
	UserID uuid.UUID
	MealID uuid.UUID
	Rating int
	Notes  string
}

// RecipeDTO is the catalog entry shape returned to clients
type RecipeDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Cuisine         string    `json:"cuisine"`
	NutritionalTags []string  `json:"nutritionalTags"`
	Ingredients     []string  `json:"ingredients"`
	Complexity      string    `json:"complexity"`
	PortionSize     string    `json:"portionSize"`
	Popularity      int64     `json:"popularity"`
	Likes           int64     `json:"likes"`
	MatchScore      int       `json:"matchScore"`
}

// RecommendationsDTO is the ranked feed plus the profile used to rank it
type RecommendationsDTO struct {
	Recommendations []RecipeDTO         `json:"recommendations"`
	Preferences     *preference.Profile `json:"preferences"`
}

// RecipeDetailDTO is one recipe with similar entries from the catalog
type RecipeDetailDTO struct {
	Recipe         RecipeDTO   `json:"recipe"`
	SimilarRecipes []RecipeDTO `json:"similarRecipes"`
}

// SwipeResultDTO confirms a recorded swipe and prefetches the next cards
type SwipeResultDTO struct {
	Message             string      `json:"message"`
	NextRecommendations []RecipeDTO `json:"nextRecommendations"`
}

// AchievementDTO is one achievement definition
type AchievementDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Requirement int    `json:"requirement"`
}

// AchievementViewDTO annotates a definition with the user's unlock state
type AchievementViewDTO struct {
	AchievementDTO
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

// ProgressDTO is a snapshot of the counters achievements evaluate
type ProgressDTO struct {
	RecipesSaved  int `json:"recipesSaved"`
	RecipesCooked int `json:"recipesCooked"`
	TotalSwipes   int `json:"totalSwipes"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// MealEntryDTO is one cooked-meal history record
type MealEntryDTO struct {
	MealID    uuid.UUID `json:"mealId"`
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
