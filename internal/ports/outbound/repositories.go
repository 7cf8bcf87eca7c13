// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// RecipeRepository defines the interface for catalog persistence
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindActiveExcluding returns active recipes whose id is not in the
	// exclusion set, popularity-descending, capped at limit (0 = no cap).
	FindActiveExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]*recipe.Recipe, error)

	// FindSimilar returns active recipes sharing a cuisine with the given
	// recipe, excluding the recipe itself, popularity-descending.
	FindSimilar(ctx context.Context, cuisine recipe.CuisineType, excludeID uuid.UUID, limit int) ([]*recipe.Recipe, error)
}

// AchievementRepository reads the externally curated achievement catalog
type AchievementRepository interface {
	FindAll(ctx context.Context) ([]achievement.Definition, error)
	FindByID(ctx context.Context, id string) (achievement.Definition, error)
}

// EngagementStore applies the multi-document engagement writes that must be
// atomic: the swipe batch and the achievement unlock batch. Implementations
// use the store's native primitives (conditional upserts, set union/remove,
// numeric increments, transactions), never read-modify-write without
// isolation.
type EngagementStore interface {
	// ApplySwipe upserts swipes[recipeID] = direction and, in the same
	// batch: on right, unions the recipe into the saved set and increments
	// the recipe's likes and popularity counters; on left, removes the
	// recipe from the saved set. Counter increments fire once per call.
	ApplySwipe(ctx context.Context, userID, recipeID uuid.UUID, direction user.SwipeDirection) error

	// UnlockAchievements adds the achievement ids to the user's unlocked
	// set with the given timestamp in one batch write. Ids already present
	// keep their original unlock timestamp.
	UnlockAchievements(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) error

	// AppendMealEntry appends a cooked-meal record and persists the
	// recomputed streak counters in the same batch.
	AppendMealEntry(ctx context.Context, userID uuid.UUID, entry user.MealEntry, currentStreak, longestStreak int) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SwipeHistory partitions a user's swipe ledger for preference analysis.
type SwipeHistory struct {
	Liked    []uuid.UUID
	Disliked []uuid.UUID
}

// PreferenceAnalyzer is the capability interface around the external
// inference service. Calls carry a timeout; any transport or parse failure
// surfaces as an error that the caller recovers from locally by proceeding
// without a profile.
type PreferenceAnalyzer interface {
	AnalyzePreferences(ctx context.Context, history SwipeHistory, recentMeals []user.MealEntry) (*preference.Profile, error)
}
