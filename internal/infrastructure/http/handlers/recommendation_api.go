package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/pkg/errors"
	"go.uber.org/zap"
)

// RecommendationHandlers handles the recommendation feed endpoints
type RecommendationHandlers struct {
	recommendations inbound.RecommendationService
	logger          *zap.Logger
}

// NewRecommendationHandlers creates a new recommendation handlers instance
func NewRecommendationHandlers(recommendations inbound.RecommendationService, logger *zap.Logger) *RecommendationHandlers {
	return &RecommendationHandlers{
		recommendations: recommendations,
		logger:          logger,
	}
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *RecommendationHandlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	feed, err := h.recommendations.GetRecommendations(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    feed,
	})
}

// GetRecipeDetail handles GET /api/v1/recommendations/recipe/{id}
func (h *RecommendationHandlers) GetRecipeDetail(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticatedUserID(r); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid recipe id"))
		return
	}

	detail, err := h.recommendations.GetRecipeDetail(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    detail,
	})
}
