package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementStore applies the multi-table engagement writes inside
// database transactions, so a swipe and its side effects commit or roll
// back together.
type EngagementStore struct {
	db *gorm.DB
}

// NewEngagementStore creates a new engagement store
func NewEngagementStore(db *gorm.DB) outbound.EngagementStore {
	return &EngagementStore{db: db}
}

// ApplySwipe upserts the swipe row and applies the direction's side
// effects in one transaction. A right swipe adds the recipe to the saved
// set and bumps the recipe's likes and popularity counters; a left swipe
// removes it from the saved set. Counters move once per call, so swiping
// the same recipe again still counts.
func (s *EngagementStore) ApplySwipe(ctx context.Context, userID, recipeID uuid.UUID, direction user.SwipeDirection) error {
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swipe := SwipeModel{
			UserID:    userID,
			RecipeID:  recipeID,
			Direction: string(direction),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"direction": string(direction), "updated_at": now}),
		}).Create(&swipe).Error; err != nil {
			return err
		}

		if direction == user.SwipeRight {
			saved := SavedRecipeModel{UserID: userID, RecipeID: recipeID, SavedAt: now}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&saved).Error; err != nil {
				return err
			}

			return tx.Model(&RecipeModel{}).
				Where("id = ?", recipeID).
				Updates(map[string]interface{}{
					"likes_count": gorm.Expr("likes_count + ?", 1),
					"popularity":  gorm.Expr("popularity + ?", 1),
				}).Error
		}

		return tx.
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&SavedRecipeModel{}).Error
	})
	if err != nil {
		return errors.NewDatabaseError("apply swipe", err)
	}
	return nil
}

// UnlockAchievements writes the unlock rows in one transaction. Rows
// already present keep their original unlock timestamp.
func (s *EngagementStore) UnlockAchievements(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) error {
	if len(achievementIDs) == 0 {
		return nil
	}

	rows := make([]UserAchievementModel, 0, len(achievementIDs))
	for _, id := range achievementIDs {
		rows = append(rows, UserAchievementModel{
			UserID:        userID,
			AchievementID: id,
			UnlockedAt:    unlockedAt,
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return errors.NewDatabaseError("unlock achievements", err)
	}
	return nil
}

// AppendMealEntry appends the meal row and persists the recomputed streak
// counters in one transaction.
func (s *EngagementStore) AppendMealEntry(ctx context.Context, userID uuid.UUID, entry user.MealEntry, currentStreak, longestStreak int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := MealEntryModel{
			UserID:    userID,
			MealID:    entry.MealID,
			Rating:    entry.Rating,
			Notes:     entry.Notes,
			Timestamp: entry.Timestamp,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		return tx.Model(&UserModel{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"current_streak": currentStreak,
				"longest_streak": longestStreak,
			}).Error
	})
	if err != nil {
		return errors.NewDatabaseError("append meal entry", err)
	}
	return nil
}
