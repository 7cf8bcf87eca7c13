package achievement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWithSwipes(t *testing.T, rights, lefts int) *user.User {
	t.Helper()
	u := user.NewUser(uuid.New())
	for i := 0; i < rights; i++ {
		require.NoError(t, u.RecordSwipe(uuid.New(), user.SwipeRight))
	}
	for i := 0; i < lefts; i++ {
		require.NoError(t, u.RecordSwipe(uuid.New(), user.SwipeLeft))
	}
	return u
}

func TestDefinitionProgress(t *testing.T) {
	u := userWithSwipes(t, 4, 3)
	base := time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		u.AppendMealEntry(user.MealEntry{MealID: uuid.New(), Rating: 5, Timestamp: base.AddDate(0, 0, i)})
	}

	tests := []struct {
		name string
		def  achievement.Definition
		want int
	}{
		{"swipe_count counts both directions", achievement.Definition{Type: achievement.TypeSwipeCount, Requirement: 10}, 7},
		{"recipes_saved counts right swipes", achievement.Definition{Type: achievement.TypeRecipesSaved, Requirement: 5}, 4},
		{"recipes_cooked counts meal entries", achievement.Definition{Type: achievement.TypeRecipesCooked, Requirement: 1}, 2},
		{"streak uses the longest run", achievement.Definition{Type: achievement.TypeStreak, Requirement: 7}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.def.Progress(u)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefinitionProgressUnknownType(t *testing.T) {
	def := achievement.Definition{ID: "mystery", Type: achievement.Type("combo"), Requirement: 1}

	_, err := def.Progress(user.NewUser(uuid.New()))

	assert.ErrorIs(t, err, achievement.ErrUnknownType)
	assert.False(t, def.SatisfiedBy(userWithSwipes(t, 10, 0)))
}

func TestDefinitionSatisfiedBy(t *testing.T) {
	def := achievement.Definition{
		ID:          "swipe-explorer",
		Name:        "Swipe Explorer",
		Type:        achievement.TypeSwipeCount,
		Requirement: 10,
	}

	assert.False(t, def.SatisfiedBy(userWithSwipes(t, 5, 4)), "one short of the threshold")
	assert.True(t, def.SatisfiedBy(userWithSwipes(t, 5, 5)), "exactly at the threshold")
	assert.True(t, def.SatisfiedBy(userWithSwipes(t, 8, 4)))
}
