package recipe

import "errors"

// Domain errors for catalog operations

var (
	ErrTitleTooShort = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong  = errors.New("recipe title must not exceed 200 characters")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRecipeInactive = errors.New("recipe is not active")
)
