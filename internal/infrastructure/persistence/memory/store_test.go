package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/infrastructure/persistence/memory"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"github.com/savorly/engine/test/testutils"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store      *memory.Store
	users      outbound.UserRepository
	recipes    outbound.RecipeRepository
	engagement outbound.EngagementStore
	factory    *testutils.RecipeFactory
}

func (s *StoreTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.users = memory.NewUserRepository(s.store)
	s.recipes = memory.NewRecipeRepository(s.store)
	s.engagement = memory.NewEngagementStore(s.store)
	s.factory = testutils.NewRecipeFactory(21)
}

func (s *StoreTestSuite) seedUser() *user.User {
	u := testutils.NewTestUser()
	s.Require().NoError(s.users.Create(context.Background(), u))
	return u
}

func (s *StoreTestSuite) TestFindByID_ReturnsIndependentSnapshot() {
	u := s.seedUser()

	loaded, err := s.users.FindByID(context.Background(), u.ID())
	s.Require().NoError(err)

	// Writes to the snapshot must not leak into stored state.
	s.Require().NoError(loaded.RecordSwipe(uuid.New(), user.SwipeRight))
	loaded.AppendMealEntry(user.MealEntry{MealID: uuid.New(), Rating: 5, Timestamp: time.Now()})
	loaded.Unlock("collector", time.Now())

	reloaded, err := s.users.FindByID(context.Background(), u.ID())
	s.Require().NoError(err)
	s.Equal(0, reloaded.TotalSwipes())
	s.Equal(0, reloaded.CookedCount())
	s.False(reloaded.HasAchievement("collector"))
}

func (s *StoreTestSuite) TestFindByID_UnknownUser() {
	_, err := s.users.FindByID(context.Background(), uuid.New())

	s.Require().Error(err)
	s.True(errors.Is(err, errors.CodeUserNotFound))
}

func (s *StoreTestSuite) TestApplySwipe_VisibleToLaterLoads() {
	u := s.seedUser()
	rec := s.factory.Recipe()
	s.Require().NoError(s.recipes.Create(context.Background(), rec))

	err := s.engagement.ApplySwipe(context.Background(), u.ID(), rec.ID(), user.SwipeRight)
	s.Require().NoError(err)

	loaded, err := s.users.FindByID(context.Background(), u.ID())
	s.Require().NoError(err)
	s.True(loaded.HasSaved(rec.ID()))
	s.Equal(1, loaded.TotalSwipes())
	s.Equal(int64(1), rec.Likes())
}

func (s *StoreTestSuite) TestAppendMealEntry_LandsOncePerCall() {
	u := s.seedUser()
	ts := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	entry := user.MealEntry{MealID: uuid.New(), Rating: 4, Timestamp: ts}
	s.Require().NoError(s.engagement.AppendMealEntry(context.Background(), u.ID(), entry, 1, 1))

	second := user.MealEntry{MealID: uuid.New(), Rating: 5, Timestamp: ts}
	s.Require().NoError(s.engagement.AppendMealEntry(context.Background(), u.ID(), second, 1, 1))

	loaded, err := s.users.FindByID(context.Background(), u.ID())
	s.Require().NoError(err)
	s.Equal(2, loaded.CookedCount(), "same-timestamp entries are distinct meals")
}

func (s *StoreTestSuite) TestUnlockAchievements_MarksAggregate() {
	u := s.seedUser()
	at := time.Now()

	err := s.engagement.UnlockAchievements(context.Background(), u.ID(), []string{"first-swipe"}, at)
	s.Require().NoError(err)

	loaded, err := s.users.FindByID(context.Background(), u.ID())
	s.Require().NoError(err)
	s.True(loaded.HasAchievement("first-swipe"))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
