package recommendation

import (
	"context"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
	"go.uber.org/zap"
)

const similarRecipeLimit = 3

// FeedMetrics receives feed events. Implemented by the monitoring layer;
// a nil hook disables reporting.
type FeedMetrics interface {
	RecommendationsServed(n int)
}

// Service implements inbound.RecommendationService. It composes the
// extractor, filter, and ranker into the feed pipeline: load the user,
// extract preferences, fetch unswiped candidates, filter, rank, cap.
type Service struct {
	users         outbound.UserRepository
	recipes       outbound.RecipeRepository
	extractor     *PreferenceExtractor
	filter        *CandidateFilter
	ranker        *Ranker
	nextBatchSize int
	metrics       FeedMetrics
	logger        *zap.Logger
}

// NewService creates a new recommendation service
func NewService(
	users outbound.UserRepository,
	recipes outbound.RecipeRepository,
	extractor *PreferenceExtractor,
	filter *CandidateFilter,
	ranker *Ranker,
	nextBatchSize int,
	metrics FeedMetrics,
	logger *zap.Logger,
) *Service {
	if nextBatchSize <= 0 {
		nextBatchSize = DefaultPageSize
	}
	if metrics == nil {
		metrics = noopFeedMetrics{}
	}
	return &Service{
		users:         users,
		recipes:       recipes,
		extractor:     extractor,
		filter:        filter,
		ranker:        ranker,
		nextBatchSize: nextBatchSize,
		metrics:       metrics,
		logger:        logger.Named("recommendation-service"),
	}
}

type noopFeedMetrics struct{}

func (noopFeedMetrics) RecommendationsServed(int) {}

// GetRecommendations returns the ranked feed for a user along with the
// preference profile it was ranked with.
func (s *Service) GetRecommendations(ctx context.Context, userID uuid.UUID) (*inbound.RecommendationsDTO, error) {
	ranked, profile, err := s.buildFeed(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	s.metrics.RecommendationsServed(len(ranked))
	s.logger.Debug("served recommendations",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(ranked)),
		zap.Bool("has_profile", profile != nil),
	)

	return &inbound.RecommendationsDTO{
		Recommendations: toRecipeDTOs(ranked),
		Preferences:     profile,
	}, nil
}

// NextBatch returns a shorter ranked batch for prefetching after a swipe.
func (s *Service) NextBatch(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	ranked, _, err := s.buildFeed(ctx, userID, s.nextBatchSize)
	if err != nil {
		return nil, err
	}

	s.metrics.RecommendationsServed(len(ranked))
	return toRecipeDTOs(ranked), nil
}

// GetRecipeDetail returns one catalog entry plus similar recipes from the
// same cuisine, most popular first.
func (s *Service) GetRecipeDetail(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDetailDTO, error) {
	r, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, errors.CodeRecipeNotFound) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}

	similar, err := s.recipes.FindSimilar(ctx, r.Cuisine(), r.ID(), similarRecipeLimit)
	if err != nil {
		s.logger.Warn("similar recipe lookup failed",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		similar = nil
	}

	similarDTOs := make([]inbound.RecipeDTO, 0, len(similar))
	for _, sr := range similar {
		similarDTOs = append(similarDTOs, toRecipeDTO(sr, 0))
	}

	return &inbound.RecipeDetailDTO{
		Recipe:         toRecipeDTO(r, 0),
		SimilarRecipes: similarDTOs,
	}, nil
}

// buildFeed runs the shared pipeline. limit 0 uses the ranker's page size.
func (s *Service) buildFeed(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredRecipe, *preference.Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.CodeUserNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.NewDatabaseError("find user", err)
	}

	profile := s.extractor.Extract(ctx, u)

	candidates, err := s.recipes.FindActiveExcluding(ctx, u.SwipedRecipeIDs(), 0)
	if err != nil {
		return nil, nil, errors.NewDatabaseError("load candidates", err)
	}

	filtered := s.filter.Apply(candidates, profile)
	ranked := s.ranker.RankN(filtered, profile, limit)
	return ranked, profile, nil
}

func toRecipeDTOs(ranked []ScoredRecipe) []inbound.RecipeDTO {
	dtos := make([]inbound.RecipeDTO, 0, len(ranked))
	for _, sr := range ranked {
		dtos = append(dtos, toRecipeDTO(sr.Recipe, sr.Score))
	}
	return dtos
}

func toRecipeDTO(r *recipe.Recipe, score int) inbound.RecipeDTO {
	return inbound.RecipeDTO{
		ID:              r.ID(),
		Title:           r.Title(),
		Cuisine:         string(r.Cuisine()),
		NutritionalTags: r.NutritionalTags(),
		Ingredients:     r.Ingredients(),
		Complexity:      string(r.Complexity()),
		PortionSize:     string(r.PortionSize()),
		Popularity:      r.Popularity(),
		Likes:           r.Likes(),
		MatchScore:      score,
	}
}

var _ inbound.RecommendationService = (*Service)(nil)
