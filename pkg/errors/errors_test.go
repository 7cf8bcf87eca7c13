package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewValidationError("rating must be between 1 and 5"), http.StatusBadRequest},
		{NewInvalidSwipeError("up"), http.StatusBadRequest},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewForbiddenError(""), http.StatusForbidden},
		{NewNotFoundError("recipe"), http.StatusNotFound},
		{NewRecipeNotFoundError("abc"), http.StatusNotFound},
		{NewUserNotFoundError("abc"), http.StatusNotFound},
		{NewAchievementNotFoundError("first-swipe"), http.StatusNotFound},
		{NewInternalError("boom"), http.StatusInternalServerError},
		{NewDatabaseError("find user", nil), http.StatusInternalServerError},
		{NewExternalServiceError("inference", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestIs(t *testing.T) {
	err := NewUserNotFoundError("abc")

	assert.True(t, Is(err, CodeUserNotFound))
	assert.False(t, Is(err, CodeRecipeNotFound))
	assert.False(t, Is(stderrors.New("plain"), CodeUserNotFound))
	assert.False(t, Is(nil, CodeUserNotFound))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeInvalidSwipe, GetCode(NewInvalidSwipeError("up")))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestWrap(t *testing.T) {
	t.Run("AppErrorPassesThrough", func(t *testing.T) {
		original := NewInvalidSwipeError("up")

		got := Wrap(original, "request failed")

		assert.Same(t, original, got)
	})

	t.Run("PlainErrorBecomesInternal", func(t *testing.T) {
		got := Wrap(stderrors.New("boom"), "request failed")

		require.NotNil(t, got)
		assert.Equal(t, CodeInternal, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
	})
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewDatabaseError("find user", cause)

	assert.ErrorIs(t, err, cause)
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewRecipeNotFoundError("abc"), "req-123")

	assert.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotEmpty(t, resp.Error.Message)
	assert.NotEmpty(t, resp.Error.Timestamp)
}
