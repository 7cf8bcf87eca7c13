// Package user contains the user aggregate: the swipe ledger, the saved
// recipe set, meal history, and achievement state that the engagement
// pipeline reads and mutates.
package user

import (
	"time"

	"github.com/google/uuid"
)

// SwipeDirection is a user's binary accept/reject decision on a recipe card.
type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// Validate checks the direction is one of the two accepted values
func (d SwipeDirection) Validate() error {
	if d != SwipeLeft && d != SwipeRight {
		return ErrInvalidSwipeDirection
	}
	return nil
}

// MealEntry is one cooked-meal record in the user's ordered history.
type MealEntry struct {
	MealID    uuid.UUID
	Rating    int
	Notes     string
	Timestamp time.Time
}

// User is the aggregate root for engagement state.
//
// Invariants maintained here and by the persistence layer:
//   - savedRecipes is a subset of right-swiped recipe ids
//   - achievements are never removed once unlocked
type User struct {
	id uuid.UUID

	swipes       map[uuid.UUID]SwipeDirection
	savedRecipes map[uuid.UUID]struct{}
	mealHistory  []MealEntry

	achievements map[string]time.Time

	currentStreak int
	longestStreak int

	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a fresh user aggregate, as done on registration
func NewUser(id uuid.UUID) *User {
	now := time.Now()
	return &User{
		id:           id,
		swipes:       make(map[uuid.UUID]SwipeDirection),
		savedRecipes: make(map[uuid.UUID]struct{}),
		achievements: make(map[string]time.Time),
		createdAt:    now,
		updatedAt:    now,
	}
}

// Reconstruct rebuilds a User from persisted state. Repository mappers only.
func Reconstruct(
	id uuid.UUID,
	swipes map[uuid.UUID]SwipeDirection,
	savedRecipes map[uuid.UUID]struct{},
	mealHistory []MealEntry,
	achievements map[string]time.Time,
	currentStreak, longestStreak int,
	createdAt, updatedAt time.Time,
) *User {
	if swipes == nil {
		swipes = make(map[uuid.UUID]SwipeDirection)
	}
	if savedRecipes == nil {
		savedRecipes = make(map[uuid.UUID]struct{})
	}
	if achievements == nil {
		achievements = make(map[string]time.Time)
	}
	return &User{
		id:            id,
		swipes:        swipes,
		savedRecipes:  savedRecipes,
		mealHistory:   mealHistory,
		achievements:  achievements,
		currentStreak: currentStreak,
		longestStreak: longestStreak,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Clone returns a deep copy of the aggregate. Repositories hand out
// clones so callers can mutate a snapshot without touching stored state.
func (u *User) Clone() *User {
	swipes := make(map[uuid.UUID]SwipeDirection, len(u.swipes))
	for id, d := range u.swipes {
		swipes[id] = d
	}
	saved := make(map[uuid.UUID]struct{}, len(u.savedRecipes))
	for id := range u.savedRecipes {
		saved[id] = struct{}{}
	}
	achievements := make(map[string]time.Time, len(u.achievements))
	for id, at := range u.achievements {
		achievements[id] = at
	}
	var history []MealEntry
	if len(u.mealHistory) > 0 {
		history = make([]MealEntry, len(u.mealHistory))
		copy(history, u.mealHistory)
	}
	return &User{
		id:            u.id,
		swipes:        swipes,
		savedRecipes:  saved,
		mealHistory:   history,
		achievements:  achievements,
		currentStreak: u.currentStreak,
		longestStreak: u.longestStreak,
		createdAt:     u.createdAt,
		updatedAt:     u.updatedAt,
	}
}

// ID returns the user's identity key
func (u *User) ID() uuid.UUID {
	return u.id
}

// HasSwiped reports whether the user has already swiped the recipe
func (u *User) HasSwiped(recipeID uuid.UUID) bool {
	_, ok := u.swipes[recipeID]
	return ok
}

// SwipeOn returns the recorded direction for a recipe, if any
func (u *User) SwipeOn(recipeID uuid.UUID) (SwipeDirection, bool) {
	d, ok := u.swipes[recipeID]
	return d, ok
}

// SwipedRecipeIDs returns every recipe id the user has swiped on
func (u *User) SwipedRecipeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.swipes))
	for id := range u.swipes {
		ids = append(ids, id)
	}
	return ids
}

// LikedRecipeIDs returns the right-swiped recipe ids
func (u *User) LikedRecipeIDs() []uuid.UUID {
	return u.recipeIDsByDirection(SwipeRight)
}

// DislikedRecipeIDs returns the left-swiped recipe ids
func (u *User) DislikedRecipeIDs() []uuid.UUID {
	return u.recipeIDsByDirection(SwipeLeft)
}

func (u *User) recipeIDsByDirection(dir SwipeDirection) []uuid.UUID {
	var ids []uuid.UUID
	for id, d := range u.swipes {
		if d == dir {
			ids = append(ids, id)
		}
	}
	return ids
}

// TotalSwipes is the swipe counter used by swipe_count achievements
func (u *User) TotalSwipes() int {
	return len(u.swipes)
}

// RecordSwipe applies a swipe decision to the aggregate. A later swipe on
// the same recipe replaces the direction. Right swipes add the recipe to
// the saved set; a left swipe after a right swipe removes it again so the
// saved set stays a subset of right-swiped ids.
func (u *User) RecordSwipe(recipeID uuid.UUID, direction SwipeDirection) error {
	if err := direction.Validate(); err != nil {
		return err
	}

	u.swipes[recipeID] = direction
	if direction == SwipeRight {
		u.savedRecipes[recipeID] = struct{}{}
	} else {
		delete(u.savedRecipes, recipeID)
	}
	u.updatedAt = time.Now()

	return nil
}

// HasSaved reports whether the recipe is in the saved set
func (u *User) HasSaved(recipeID uuid.UUID) bool {
	_, ok := u.savedRecipes[recipeID]
	return ok
}

// SavedRecipeIDs returns the saved recipe set
func (u *User) SavedRecipeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.savedRecipes))
	for id := range u.savedRecipes {
		ids = append(ids, id)
	}
	return ids
}

// SavedCount is the counter used by recipes_saved achievements
func (u *User) SavedCount() int {
	return len(u.savedRecipes)
}

// MealHistory returns the ordered cooked-meal history
func (u *User) MealHistory() []MealEntry {
	return u.mealHistory
}

// CookedCount is the counter used by recipes_cooked achievements
func (u *User) CookedCount() int {
	return len(u.mealHistory)
}

// RecentMeals returns the most recent n meal entries, oldest first
func (u *User) RecentMeals(n int) []MealEntry {
	if n <= 0 || len(u.mealHistory) == 0 {
		return nil
	}
	if n > len(u.mealHistory) {
		n = len(u.mealHistory)
	}
	return u.mealHistory[len(u.mealHistory)-n:]
}

// AppendMealEntry appends a cooked meal and rolls the streak counters.
// Consecutive calendar days extend the streak, a gap resets it to 1, and a
// second meal on the same day leaves it unchanged.
func (u *User) AppendMealEntry(entry MealEntry) {
	if len(u.mealHistory) == 0 {
		u.currentStreak = 1
	} else {
		last := u.mealHistory[len(u.mealHistory)-1].Timestamp
		switch daysBetween(last, entry.Timestamp) {
		case 0:
			// same day, streak unchanged
		case 1:
			u.currentStreak++
		default:
			u.currentStreak = 1
		}
	}
	if u.currentStreak > u.longestStreak {
		u.longestStreak = u.currentStreak
	}

	u.mealHistory = append(u.mealHistory, entry)
	u.updatedAt = time.Now()
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// CurrentStreak returns the running consecutive-day streak
func (u *User) CurrentStreak() int {
	return u.currentStreak
}

// LongestStreak is the counter used by streak achievements
func (u *User) LongestStreak() int {
	return u.longestStreak
}

// HasAchievement reports whether the achievement is already unlocked
func (u *User) HasAchievement(achievementID string) bool {
	_, ok := u.achievements[achievementID]
	return ok
}

// Unlock adds an achievement exactly once; re-unlocking is a no-op so the
// first unlock timestamp is preserved.
func (u *User) Unlock(achievementID string, at time.Time) bool {
	if _, ok := u.achievements[achievementID]; ok {
		return false
	}
	u.achievements[achievementID] = at
	u.updatedAt = time.Now()
	return true
}

// UnlockedAt returns the unlock timestamp for an achievement, if unlocked
func (u *User) UnlockedAt(achievementID string) (time.Time, bool) {
	at, ok := u.achievements[achievementID]
	return at, ok
}

// AchievementIDs returns the unlocked achievement id set
func (u *User) AchievementIDs() []string {
	ids := make([]string, 0, len(u.achievements))
	for id := range u.achievements {
		ids = append(ids, id)
	}
	return ids
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}
