// Package achievement contains the declarative achievement catalog and the
// threshold evaluation used by the engagement pipeline.
package achievement

import (
	"errors"

	"github.com/savorly/engine/internal/domain/user"
)

// Type selects which user counter a definition's requirement is checked
// against.
type Type string

const (
	TypeRecipesSaved  Type = "recipes_saved"
	TypeRecipesCooked Type = "recipes_cooked"
	TypeStreak        Type = "streak"
	TypeSwipeCount    Type = "swipe_count"
)

// ErrUnknownType is returned when a definition carries an unrecognized type.
var ErrUnknownType = errors.New("unknown achievement type")

// ErrAchievementNotFound is returned when a definition id is not in the
// catalog.
var ErrAchievementNotFound = errors.New("achievement not found")

// Definition is one externally curated achievement milestone. The catalog
// is read-only from the engine's point of view.
type Definition struct {
	ID          string
	Name        string
	Description string
	Type        Type
	Requirement int
}

// Progress returns the user's current value for the counter this
// definition tracks.
func (d Definition) Progress(u *user.User) (int, error) {
	switch d.Type {
	case TypeRecipesSaved:
		return u.SavedCount(), nil
	case TypeRecipesCooked:
		return u.CookedCount(), nil
	case TypeStreak:
		return u.LongestStreak(), nil
	case TypeSwipeCount:
		return u.TotalSwipes(), nil
	default:
		return 0, ErrUnknownType
	}
}

// SatisfiedBy reports whether the user's counter has crossed the
// requirement threshold. Unknown types never satisfy.
func (d Definition) SatisfiedBy(u *user.User) bool {
	progress, err := d.Progress(u)
	if err != nil {
		return false
	}
	return progress >= d.Requirement
}
