package gorm_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
	gormrepo "github.com/savorly/engine/internal/infrastructure/persistence/gorm"
	"github.com/savorly/engine/internal/infrastructure/persistence/sqlite"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/test/testutils"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// EngagementStoreTestSuite exercises the transactional engagement writes
// against a real SQLite database.
type EngagementStoreTestSuite struct {
	suite.Suite
	db      *gorm.DB
	users   outbound.UserRepository
	recipes outbound.RecipeRepository
	store   outbound.EngagementStore
	factory *testutils.RecipeFactory
}

func (s *EngagementStoreTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase("", gormLogger.Silent)
	require.NoError(s.T(), err)

	s.db = db
	s.users = gormrepo.NewUserRepository(db)
	s.recipes = gormrepo.NewRecipeRepository(db)
	s.store = gormrepo.NewEngagementStore(db)
	s.factory = testutils.NewRecipeFactory(21)
}

func (s *EngagementStoreTestSuite) seedUser() uuid.UUID {
	u := testutils.NewTestUser()
	require.NoError(s.T(), s.users.Create(context.Background(), u))
	return u.ID()
}

func (s *EngagementStoreTestSuite) seedRecipe() uuid.UUID {
	r := s.factory.Recipe()
	require.NoError(s.T(), s.recipes.Create(context.Background(), r))
	return r.ID()
}

func (s *EngagementStoreTestSuite) reloadUser(id uuid.UUID) *user.User {
	u, err := s.users.FindByID(context.Background(), id)
	require.NoError(s.T(), err)
	return u
}

func (s *EngagementStoreTestSuite) reloadRecipe(id uuid.UUID) *recipe.Recipe {
	r, err := s.recipes.FindByID(context.Background(), id)
	require.NoError(s.T(), err)
	return r
}

func (s *EngagementStoreTestSuite) TestApplySwipe_Right() {
	userID := s.seedUser()
	recipeID := s.seedRecipe()

	err := s.store.ApplySwipe(context.Background(), userID, recipeID, user.SwipeRight)

	s.Require().NoError(err)
	u := s.reloadUser(userID)
	s.True(u.HasSwiped(recipeID))
	s.True(u.HasSaved(recipeID))
	r := s.reloadRecipe(recipeID)
	s.Equal(int64(1), r.Likes())
	s.Equal(int64(1), r.Popularity())
}

func (s *EngagementStoreTestSuite) TestApplySwipe_RepeatRightIncrementsAgain() {
	userID := s.seedUser()
	recipeID := s.seedRecipe()

	s.Require().NoError(s.store.ApplySwipe(context.Background(), userID, recipeID, user.SwipeRight))
	s.Require().NoError(s.store.ApplySwipe(context.Background(), userID, recipeID, user.SwipeRight))

	u := s.reloadUser(userID)
	s.Equal(1, u.TotalSwipes(), "the swipe row is upserted, not duplicated")
	r := s.reloadRecipe(recipeID)
	s.Equal(int64(2), r.Likes(), "counters move once per call")
}

func (s *EngagementStoreTestSuite) TestApplySwipe_LeftAfterRightRemovesSaved() {
	userID := s.seedUser()
	recipeID := s.seedRecipe()

	s.Require().NoError(s.store.ApplySwipe(context.Background(), userID, recipeID, user.SwipeRight))
	s.Require().NoError(s.store.ApplySwipe(context.Background(), userID, recipeID, user.SwipeLeft))

	u := s.reloadUser(userID)
	dir, ok := u.SwipeOn(recipeID)
	s.Require().True(ok)
	s.Equal(user.SwipeLeft, dir)
	s.False(u.HasSaved(recipeID))
}

func (s *EngagementStoreTestSuite) TestUnlockAchievements_KeepsOriginalTimestamp() {
	userID := s.seedUser()
	s.Require().NoError(s.db.Create(&gormrepo.AchievementModel{
		ID: "first-swipe", Name: "First Taste", Type: "swipe_count", Requirement: 1,
	}).Error)

	first := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	s.Require().NoError(s.store.UnlockAchievements(context.Background(), userID, []string{"first-swipe"}, first))
	s.Require().NoError(s.store.UnlockAchievements(context.Background(), userID, []string{"first-swipe"}, later))

	u := s.reloadUser(userID)
	unlockedAt, ok := u.UnlockedAt("first-swipe")
	s.Require().True(ok)
	s.Equal(first.Unix(), unlockedAt.Unix())
}

func (s *EngagementStoreTestSuite) TestAppendMealEntry_PersistsHistoryAndStreaks() {
	userID := s.seedUser()
	base := time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		entry := user.MealEntry{MealID: uuid.New(), Rating: 4, Notes: "good", Timestamp: base.AddDate(0, 0, i)}
		s.Require().NoError(s.store.AppendMealEntry(context.Background(), userID, entry, i+1, i+1))
	}

	u := s.reloadUser(userID)
	s.Equal(2, u.CookedCount())
	s.Equal(2, u.CurrentStreak())
	s.Equal(2, u.LongestStreak())
	history := u.MealHistory()
	s.Require().Len(history, 2)
	s.True(history[0].Timestamp.Before(history[1].Timestamp), "history loads oldest first")
}

func (s *EngagementStoreTestSuite) TestFindActiveExcluding() {
	s.seedUser()
	low := s.factory.PopularRecipe(recipe.CuisineTypeItalian, 5)
	high := s.factory.PopularRecipe(recipe.CuisineTypeItalian, 50)
	excluded := s.factory.PopularRecipe(recipe.CuisineTypeThai, 99)
	for _, r := range []*recipe.Recipe{low, high, excluded} {
		s.Require().NoError(s.recipes.Create(context.Background(), r))
	}

	got, err := s.recipes.FindActiveExcluding(context.Background(), []uuid.UUID{excluded.ID()}, 0)

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(high.ID(), got[0].ID(), "most popular first")
	s.Equal(low.ID(), got[1].ID())
}

func (s *EngagementStoreTestSuite) TestFindSimilar() {
	target := s.factory.PopularRecipe(recipe.CuisineTypeJapanese, 10)
	sibling := s.factory.PopularRecipe(recipe.CuisineTypeJapanese, 7)
	other := s.factory.PopularRecipe(recipe.CuisineTypeMexican, 80)
	for _, r := range []*recipe.Recipe{target, sibling, other} {
		s.Require().NoError(s.recipes.Create(context.Background(), r))
	}

	got, err := s.recipes.FindSimilar(context.Background(), target.Cuisine(), target.ID(), 3)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(sibling.ID(), got[0].ID())
}

func TestEngagementStoreTestSuite(t *testing.T) {
	suite.Run(t, new(EngagementStoreTestSuite))
}
