package user

import "errors"

var (
	ErrInvalidSwipeDirection = errors.New(`swipe direction must be "left" or "right"`)
	ErrUserNotFound          = errors.New("user not found")
)
