package engagement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/application/engagement"
	"github.com/savorly/engine/internal/application/recommendation"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/infrastructure/persistence/memory"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"github.com/savorly/engine/test/testutils"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type failingRecommender struct{}

func (failingRecommender) GetRecommendations(ctx context.Context, userID uuid.UUID) (*inbound.RecommendationsDTO, error) {
	return nil, errors.NewDatabaseError("load candidates", nil)
}

func (failingRecommender) NextBatch(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	return nil, errors.NewDatabaseError("load candidates", nil)
}

func (failingRecommender) GetRecipeDetail(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDetailDTO, error) {
	return nil, errors.NewDatabaseError("load candidates", nil)
}

type nullAnalyzer struct{}

func (nullAnalyzer) AnalyzePreferences(ctx context.Context, history outbound.SwipeHistory, recentMeals []user.MealEntry) (*preference.Profile, error) {
	return nil, nil
}

type EngagementServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	users   outbound.UserRepository
	recipes outbound.RecipeRepository
	service *engagement.Service
	factory *testutils.RecipeFactory
}

func (s *EngagementServiceTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.users = memory.NewUserRepository(s.store)
	s.recipes = memory.NewRecipeRepository(s.store)
	s.factory = testutils.NewRecipeFactory(7)

	achievements := memory.NewAchievementRepository(s.store)
	engagementStore := memory.NewEngagementStore(s.store)

	extractor := recommendation.NewPreferenceExtractor(
		nullAnalyzer{}, memory.NewCacheRepository(), time.Hour, nil, zap.NewNop())
	recommender := recommendation.NewService(
		s.users, s.recipes, extractor, recommendation.NewCandidateFilter(),
		recommendation.NewRanker(10, 1, 7), 5, nil, zap.NewNop())

	s.service = engagement.NewService(
		s.users, s.recipes, achievements, engagementStore, recommender, nil, zap.NewNop())
}

func (s *EngagementServiceTestSuite) seedUser() *user.User {
	u := testutils.NewTestUser()
	require.NoError(s.T(), s.users.Create(context.Background(), u))
	return u
}

func (s *EngagementServiceTestSuite) seedRecipes(n int) []*recipe.Recipe {
	out := make([]*recipe.Recipe, n)
	for i := range out {
		out[i] = s.factory.Recipe()
		require.NoError(s.T(), s.recipes.Create(context.Background(), out[i]))
	}
	return out
}

func (s *EngagementServiceTestSuite) swipe(userID, recipeID uuid.UUID, dir user.SwipeDirection) *inbound.SwipeResultDTO {
	result, err := s.service.RecordSwipe(context.Background(), inbound.RecordSwipeCommand{
		UserID:    userID,
		RecipeID:  recipeID,
		Direction: dir,
	})
	require.NoError(s.T(), err)
	return result
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_RightSavesAndBumpsCounters() {
	u := s.seedUser()
	recipes := s.seedRecipes(3)

	result := s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)

	s.Equal("Swipe recorded successfully", result.Message)
	s.True(u.HasSaved(recipes[0].ID()))
	s.Equal(int64(1), recipes[0].Likes())
	s.Equal(int64(1), recipes[0].Popularity())
	s.Len(result.NextRecommendations, 2, "swiped recipe leaves the feed")
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_LeftRemovesFromSaved() {
	u := s.seedUser()
	recipes := s.seedRecipes(1)

	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)
	s.swipe(u.ID(), recipes[0].ID(), user.SwipeLeft)

	s.False(u.HasSaved(recipes[0].ID()))
	s.Equal(1, u.TotalSwipes())
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_RepeatRightCountsTwice() {
	u := s.seedUser()
	recipes := s.seedRecipes(1)

	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)
	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)

	s.Equal(int64(2), recipes[0].Likes(), "every right swipe call increments once")
	s.Equal(1, u.TotalSwipes(), "the ledger keeps one entry per recipe")
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_InvalidDirection() {
	u := s.seedUser()
	recipes := s.seedRecipes(1)

	_, err := s.service.RecordSwipe(context.Background(), inbound.RecordSwipeCommand{
		UserID:    u.ID(),
		RecipeID:  recipes[0].ID(),
		Direction: user.SwipeDirection("up"),
	})

	s.Require().Error(err)
	s.True(errors.Is(err, errors.CodeInvalidSwipe))
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_UnknownRecipe() {
	u := s.seedUser()

	_, err := s.service.RecordSwipe(context.Background(), inbound.RecordSwipeCommand{
		UserID:    u.ID(),
		RecipeID:  uuid.New(),
		Direction: user.SwipeRight,
	})

	s.Require().Error(err)
	s.True(errors.Is(err, errors.CodeRecipeNotFound))
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_InactiveRecipeRejected() {
	u := s.seedUser()
	now := time.Now()
	retired := recipe.Reconstruct(
		uuid.New(), "Retired Dish", recipe.CuisineTypeItalian,
		nil, nil, recipe.ComplexityLevelEasy, recipe.PortionSizeMedium,
		0, 0, false, now, now,
	)
	s.Require().NoError(s.recipes.Create(context.Background(), retired))

	_, err := s.service.RecordSwipe(context.Background(), inbound.RecordSwipeCommand{
		UserID:    u.ID(),
		RecipeID:  retired.ID(),
		Direction: user.SwipeRight,
	})

	s.Require().Error(err)
	s.True(errors.Is(err, errors.CodeRecipeNotFound))
}

func (s *EngagementServiceTestSuite) TestRecordSwipe_PrefetchFailureDegrades() {
	u := s.seedUser()
	recipes := s.seedRecipes(1)

	achievements := memory.NewAchievementRepository(s.store)
	engagementStore := memory.NewEngagementStore(s.store)
	service := engagement.NewService(
		s.users, s.recipes, achievements, engagementStore, failingRecommender{}, nil, zap.NewNop())

	result, err := service.RecordSwipe(context.Background(), inbound.RecordSwipeCommand{
		UserID:    u.ID(),
		RecipeID:  recipes[0].ID(),
		Direction: user.SwipeRight,
	})

	s.Require().NoError(err, "a committed swipe survives a failed prefetch")
	s.NotNil(result.NextRecommendations)
	s.Empty(result.NextRecommendations)
	s.True(u.HasSaved(recipes[0].ID()))
}

func (s *EngagementServiceTestSuite) TestAchievements_TenthSwipeUnlocksExplorer() {
	s.store.SeedAchievements([]achievement.Definition{
		testutils.SwipeCountAchievement("first-swipe", 1),
		testutils.SwipeCountAchievement("swipe-explorer", 10),
	})
	u := s.seedUser()
	recipes := s.seedRecipes(10)

	for i := 0; i < 9; i++ {
		s.swipe(u.ID(), recipes[i].ID(), user.SwipeLeft)
	}
	s.False(u.HasAchievement("swipe-explorer"))
	s.True(u.HasAchievement("first-swipe"))

	s.swipe(u.ID(), recipes[9].ID(), user.SwipeRight)

	s.True(u.HasAchievement("swipe-explorer"))
}

func (s *EngagementServiceTestSuite) TestCheckAchievements_IsExactlyOnce() {
	s.store.SeedAchievements([]achievement.Definition{
		testutils.SwipeCountAchievement("first-swipe", 1),
	})
	u := s.seedUser()
	recipes := s.seedRecipes(1)

	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)

	newly, err := s.service.CheckAchievements(context.Background(), u.ID())

	s.Require().NoError(err)
	s.Empty(newly, "the swipe already unlocked it, a re-check yields nothing")
	s.True(u.HasAchievement("first-swipe"))
}

func (s *EngagementServiceTestSuite) TestCheckAchievements_ReturnsNewlySatisfied() {
	s.store.SeedAchievements([]achievement.Definition{
		{ID: "collector", Name: "Collector", Type: achievement.TypeRecipesSaved, Requirement: 2},
	})
	u := s.seedUser()

	// Writes landed outside the service, so the unlock is still pending.
	s.Require().NoError(u.RecordSwipe(uuid.New(), user.SwipeRight))
	s.Require().NoError(u.RecordSwipe(uuid.New(), user.SwipeRight))

	newly, err := s.service.CheckAchievements(context.Background(), u.ID())

	s.Require().NoError(err)
	s.Require().Len(newly, 1)
	s.Equal("collector", newly[0].ID)
}

func (s *EngagementServiceTestSuite) TestListAchievements_AnnotatesUnlockState() {
	s.store.SeedAchievements([]achievement.Definition{
		testutils.SwipeCountAchievement("first-swipe", 1),
		testutils.SwipeCountAchievement("swipe-master", 100),
	})
	u := s.seedUser()
	recipes := s.seedRecipes(1)
	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)

	views, err := s.service.ListAchievements(context.Background(), u.ID())

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].Unlocked)
	s.NotNil(views[0].UnlockedAt)
	s.False(views[1].Unlocked)
	s.Nil(views[1].UnlockedAt)
}

func (s *EngagementServiceTestSuite) TestGetProgress_SnapshotsCounters() {
	u := s.seedUser()
	recipes := s.seedRecipes(3)
	s.swipe(u.ID(), recipes[0].ID(), user.SwipeRight)
	s.swipe(u.ID(), recipes[1].ID(), user.SwipeRight)
	s.swipe(u.ID(), recipes[2].ID(), user.SwipeLeft)

	got, err := s.service.GetProgress(context.Background(), u.ID())

	s.Require().NoError(err)
	s.Equal(2, got.RecipesSaved)
	s.Equal(3, got.TotalSwipes)
	s.Equal(0, got.RecipesCooked)
}

func (s *EngagementServiceTestSuite) TestAddMealEntry_RecordsAndUnlocks() {
	s.store.SeedAchievements([]achievement.Definition{
		{ID: "home-cook", Name: "Home Cook", Type: achievement.TypeRecipesCooked, Requirement: 1},
	})
	u := s.seedUser()
	mealID := uuid.New()

	newly, err := s.service.AddMealEntry(context.Background(), inbound.AddMealEntryCommand{
		UserID: u.ID(),
		MealID: mealID,
		Rating: 5,
		Notes:  "weeknight staple",
	})

	s.Require().NoError(err)
	s.Require().Len(newly, 1)
	s.Equal("home-cook", newly[0].ID)
	s.Equal(1, u.CookedCount())
	s.Equal(1, u.CurrentStreak())

	history, err := s.service.MealHistory(context.Background(), u.ID())
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(mealID, history[0].MealID)
	s.Equal("weeknight staple", history[0].Notes)
}

func (s *EngagementServiceTestSuite) TestAddMealEntry_RejectsBadRating() {
	u := s.seedUser()

	for _, rating := range []int{0, 6, -1} {
		_, err := s.service.AddMealEntry(context.Background(), inbound.AddMealEntryCommand{
			UserID: u.ID(),
			MealID: uuid.New(),
			Rating: rating,
		})

		s.Require().Error(err)
		s.True(errors.Is(err, errors.CodeValidationFailed))
	}
}

func (s *EngagementServiceTestSuite) TestUnknownUser() {
	_, err := s.service.GetProgress(context.Background(), uuid.New())

	s.Require().Error(err)
	s.True(errors.Is(err, errors.CodeUserNotFound))
}

func TestEngagementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}
