// Package engagement records swipe decisions and maintains the derived
// progress and achievement state they feed.
package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"go.uber.org/zap"
)

// Metrics receives engagement events. Implemented by the monitoring
// layer; a nil hook disables reporting.
type Metrics interface {
	SwipeRecorded(direction string)
	AchievementsUnlocked(n int)
}

// Service implements inbound.EngagementService. Swipe and unlock writes
// go through the engagement store so multi-document updates stay atomic.
type Service struct {
	users        outbound.UserRepository
	recipes      outbound.RecipeRepository
	achievements outbound.AchievementRepository
	store        outbound.EngagementStore
	recommender  inbound.RecommendationService
	metrics      Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a new engagement service
func NewService(
	users outbound.UserRepository,
	recipes outbound.RecipeRepository,
	achievements outbound.AchievementRepository,
	store outbound.EngagementStore,
	recommender inbound.RecommendationService,
	metrics Metrics,
	logger *zap.Logger,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		users:        users,
		recipes:      recipes,
		achievements: achievements,
		store:        store,
		recommender:  recommender,
		metrics:      metrics,
		logger:       logger.Named("engagement-service"),
		now:          time.Now,
	}
}

type noopMetrics struct{}

func (noopMetrics) SwipeRecorded(string)     {}
func (noopMetrics) AchievementsUnlocked(int) {}

// RecordSwipe validates and atomically applies one swipe decision, runs
// the achievement check against the updated counters, and prefetches the
// next batch of recommendations.
func (s *Service) RecordSwipe(ctx context.Context, cmd inbound.RecordSwipeCommand) (*inbound.SwipeResultDTO, error) {
	if err := cmd.Direction.Validate(); err != nil {
		return nil, errors.NewInvalidSwipeError(string(cmd.Direction))
	}

	r, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, errors.CodeRecipeNotFound) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if !r.IsActive() {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	u, err := s.loadUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.store.ApplySwipe(ctx, cmd.UserID, cmd.RecipeID, cmd.Direction); err != nil {
		return nil, errors.NewDatabaseError("apply swipe", err)
	}
	s.metrics.SwipeRecorded(string(cmd.Direction))

	// Mirror the write on the in-memory aggregate so the achievement check
	// sees the post-swipe counters without a second read.
	if err := u.RecordSwipe(cmd.RecipeID, cmd.Direction); err != nil {
		return nil, errors.NewInvalidSwipeError(string(cmd.Direction))
	}

	if _, err := s.unlockSatisfied(ctx, u); err != nil {
		s.logger.Warn("achievement check after swipe failed",
			zap.String("user_id", cmd.UserID.String()),
			zap.Error(err),
		)
	}

	// The swipe is committed; a failed prefetch degrades to an empty batch
	// rather than failing the request.
	next, err := s.recommender.NextBatch(ctx, cmd.UserID)
	if err != nil {
		s.logger.Warn("next batch prefetch failed",
			zap.String("user_id", cmd.UserID.String()),
			zap.Error(err),
		)
		next = []inbound.RecipeDTO{}
	}

	return &inbound.SwipeResultDTO{
		Message:             "Swipe recorded successfully",
		NextRecommendations: next,
	}, nil
}

// CheckAchievements evaluates the full catalog against the user's counters
// and unlocks newly satisfied definitions in one batch.
func (s *Service) CheckAchievements(ctx context.Context, userID uuid.UUID) ([]inbound.AchievementDTO, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.unlockSatisfied(ctx, u)
}

// ListAchievements returns every definition annotated with unlock state.
func (s *Service) ListAchievements(ctx context.Context, userID uuid.UUID) ([]inbound.AchievementViewDTO, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs, err := s.achievements.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load achievements", err)
	}

	views := make([]inbound.AchievementViewDTO, 0, len(defs))
	for _, def := range defs {
		view := inbound.AchievementViewDTO{AchievementDTO: toAchievementDTO(def)}
		if at, ok := u.UnlockedAt(def.ID); ok {
			view.Unlocked = true
			unlockedAt := at
			view.UnlockedAt = &unlockedAt
		}
		views = append(views, view)
	}
	return views, nil
}

// GetProgress returns the counters achievements are evaluated against.
func (s *Service) GetProgress(ctx context.Context, userID uuid.UUID) (*inbound.ProgressDTO, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &inbound.ProgressDTO{
		RecipesSaved:  u.SavedCount(),
		RecipesCooked: u.CookedCount(),
		TotalSwipes:   u.TotalSwipes(),
		CurrentStreak: u.CurrentStreak(),
		LongestStreak: u.LongestStreak(),
	}, nil
}

// MealHistory returns the user's cooked-meal history, oldest first.
func (s *Service) MealHistory(ctx context.Context, userID uuid.UUID) ([]inbound.MealEntryDTO, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := u.MealHistory()
	dtos := make([]inbound.MealEntryDTO, 0, len(history))
	for _, entry := range history {
		dtos = append(dtos, inbound.MealEntryDTO{
			MealID:    entry.MealID,
			Rating:    entry.Rating,
			Notes:     entry.Notes,
			Timestamp: entry.Timestamp,
		})
	}
	return dtos, nil
}

// AddMealEntry appends a cooked meal, rolls streak counters, and re-checks
// achievements against the updated counters.
func (s *Service) AddMealEntry(ctx context.Context, cmd inbound.AddMealEntryCommand) ([]inbound.AchievementDTO, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, errors.NewValidationError("rating must be between 1 and 5")
	}

	u, err := s.loadUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	entry := user.MealEntry{
		MealID:    cmd.MealID,
		Rating:    cmd.Rating,
		Notes:     cmd.Notes,
		Timestamp: s.now(),
	}
	u.AppendMealEntry(entry)

	if err := s.store.AppendMealEntry(ctx, cmd.UserID, entry, u.CurrentStreak(), u.LongestStreak()); err != nil {
		return nil, errors.NewDatabaseError("append meal entry", err)
	}

	return s.unlockSatisfied(ctx, u)
}

// unlockSatisfied finds catalog definitions the user now satisfies but has
// not unlocked, writes them in one batch, and marks the aggregate. A
// definition is unlocked at most once per user.
func (s *Service) unlockSatisfied(ctx context.Context, u *user.User) ([]inbound.AchievementDTO, error) {
	defs, err := s.achievements.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load achievements", err)
	}

	unlockedAt := s.now()
	newly := make([]inbound.AchievementDTO, 0)
	ids := make([]string, 0)
	for _, def := range defs {
		if u.HasAchievement(def.ID) || !def.SatisfiedBy(u) {
			continue
		}
		if u.Unlock(def.ID, unlockedAt) {
			newly = append(newly, toAchievementDTO(def))
			ids = append(ids, def.ID)
		}
	}

	if len(ids) == 0 {
		return newly, nil
	}

	if err := s.store.UnlockAchievements(ctx, u.ID(), ids, unlockedAt); err != nil {
		return nil, errors.NewDatabaseError("unlock achievements", err)
	}

	s.metrics.AchievementsUnlocked(len(ids))
	s.logger.Info("achievements unlocked",
		zap.String("user_id", u.ID().String()),
		zap.Strings("achievement_ids", ids),
	)
	return newly, nil
}

func (s *Service) loadUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.CodeUserNotFound) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return u, nil
}

func toAchievementDTO(def achievement.Definition) inbound.AchievementDTO {
	return inbound.AchievementDTO{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Type:        string(def.Type),
		Requirement: def.Requirement,
	}
}

var _ inbound.EngagementService = (*Service)(nil)
