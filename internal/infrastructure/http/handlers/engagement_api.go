package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/pkg/errors"
	"go.uber.org/zap"
)

// EngagementHandlers handles the swipe, achievement, and meal history
// endpoints
type EngagementHandlers struct {
	engagement inbound.EngagementService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewEngagementHandlers creates a new engagement handlers instance
func NewEngagementHandlers(engagement inbound.EngagementService, logger *zap.Logger) *EngagementHandlers {
	return &EngagementHandlers{
		engagement: engagement,
		validate:   validator.New(),
		logger:     logger,
	}
}

// SwipeRequest is the POST /recommendations/swipe payload
type SwipeRequest struct {
	RecipeID  string `json:"recipeId" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

// MealEntryRequest is the POST /profile/meal-history payload
type MealEntryRequest struct {
	MealID string `json:"mealId" validate:"required,uuid"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// RecordSwipe handles POST /api/v1/recommendations/swipe
func (h *EngagementHandlers) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.engagement.RecordSwipe(r.Context(), inbound.RecordSwipeCommand{
		UserID:    userID,
		RecipeID:  uuid.MustParse(req.RecipeID),
		Direction: user.SwipeDirection(req.Direction),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: result.Message,
	})
}

// ListAchievements handles GET /api/v1/achievements
func (h *EngagementHandlers) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	achievements, err := h.engagement.ListAchievements(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    achievements,
	})
}

// CheckAchievements handles POST /api/v1/achievements/check
func (h *EngagementHandlers) CheckAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	unlocked, err := h.engagement.CheckAchievements(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"newlyUnlocked": unlocked},
	})
}

// GetProgress handles GET /api/v1/achievements/progress
func (h *EngagementHandlers) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	progress, err := h.engagement.GetProgress(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    progress,
	})
}

// MealHistory handles GET /api/v1/profile/meal-history
func (h *EngagementHandlers) MealHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	history, err := h.engagement.MealHistory(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    history,
	})
}

// AddMealEntry handles POST /api/v1/profile/meal-history
func (h *EngagementHandlers) AddMealEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req MealEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	unlocked, err := h.engagement.AddMealEntry(r.Context(), inbound.AddMealEntryCommand{
		UserID: userID,
		MealID: uuid.MustParse(req.MealID),
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"newlyUnlocked": unlocked},
		Message: "Meal entry recorded",
	})
}
