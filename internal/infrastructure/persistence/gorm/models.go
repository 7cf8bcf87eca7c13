// Package gorm provides GORM model definitions and repository
// implementations for the engine's persistence.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	CurrentStreak int       `gorm:"default:0"`
	LongestStreak int       `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	Swipes       []SwipeModel           `gorm:"foreignKey:UserID"`
	SavedRecipes []SavedRecipeModel     `gorm:"foreignKey:UserID"`
	MealEntries  []MealEntryModel       `gorm:"foreignKey:UserID"`
	Achievements []UserAchievementModel `gorm:"foreignKey:UserID"`
}

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID              uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Title           string      `gorm:"type:varchar(255);not null;index"`
	Cuisine         string      `gorm:"type:varchar(50);index"`
	NutritionalTags StringSlice `gorm:"type:json"`
	Ingredients     StringSlice `gorm:"type:json"`
	Complexity      string      `gorm:"type:varchar(20)"`
	PortionSize     string      `gorm:"type:varchar(20)"`
	Popularity      int64       `gorm:"default:0;index"`
	Likes           int64       `gorm:"column:likes_count;default:0"`
	IsActive        bool        `gorm:"default:true;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SwipeModel represents one swipe decision, one row per (user, recipe)
type SwipeModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	Direction string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavedRecipeModel represents membership in a user's saved set
type SavedRecipeModel struct {
	UserID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);primaryKey"`
	SavedAt  time.Time `gorm:"index"`
}

// MealEntryModel represents one cooked-meal history record
type MealEntryModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	MealID    uuid.UUID `gorm:"type:char(36);not null"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Notes     string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"index"`
}

// AchievementModel represents one curated achievement definition
type AchievementModel struct {
	ID          string `gorm:"type:varchar(100);primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Type        string `gorm:"type:varchar(50);not null"`
	Requirement int    `gorm:"not null"`
}

// UserAchievementModel represents one unlocked achievement
type UserAchievementModel struct {
	UserID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	AchievementID string    `gorm:"type:varchar(100);primaryKey"`
	UnlockedAt    time.Time `gorm:"index"`
}

// StringSlice is a string slice stored as a JSON column
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}

	return json.Unmarshal(data, s)
}
