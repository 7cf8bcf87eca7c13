// Package recommendation provides the application layer for the swipe
// feed: preference extraction, candidate filtering, and ranking.
package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/ports/outbound"
	"go.uber.org/zap"
)

const recentMealWindow = 5

// ExtractorMetrics receives extraction events. Implemented by the
// monitoring layer; a nil hook disables reporting.
type ExtractorMetrics interface {
	ProfileCacheHit()
	ProfileCacheMiss()
	InferenceFailure()
}

// PreferenceExtractor turns raw swipe and meal history into a preference
// profile, caching results per user so the external inference call is
// bounded in latency and cost.
type PreferenceExtractor struct {
	analyzer outbound.PreferenceAnalyzer
	cache    outbound.CacheRepository
	ttl      time.Duration
	metrics  ExtractorMetrics
	logger   *zap.Logger
}

// NewPreferenceExtractor creates a new preference extractor
func NewPreferenceExtractor(
	analyzer outbound.PreferenceAnalyzer,
	cache outbound.CacheRepository,
	ttl time.Duration,
	metrics ExtractorMetrics,
	logger *zap.Logger,
) *PreferenceExtractor {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PreferenceExtractor{
		analyzer: analyzer,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger.Named("preference-extractor"),
	}
}

type noopMetrics struct{}

func (noopMetrics) ProfileCacheHit()  {}
func (noopMetrics) ProfileCacheMiss() {}
func (noopMetrics) InferenceFailure() {}

// Extract returns the user's preference profile, from cache when fresh.
// Extraction failure is not fatal to the recommendation pipeline: any
// analyzer or cache error degrades to a nil profile.
func (e *PreferenceExtractor) Extract(ctx context.Context, u *user.User) *preference.Profile {
	history := outbound.SwipeHistory{
		Liked:    u.LikedRecipeIDs(),
		Disliked: u.DislikedRecipeIDs(),
	}

	if len(history.Liked) == 0 && len(history.Disliked) == 0 {
		return nil
	}

	key := e.cacheKey(u)

	if data, err := e.cache.Get(ctx, key); err == nil {
		var profile preference.Profile
		if err := json.Unmarshal(data, &profile); err == nil {
			e.metrics.ProfileCacheHit()
			e.logger.Debug("preference cache hit", zap.String("user_id", u.ID().String()))
			return &profile
		}
		// Poisoned entry, drop it and recompute.
		_ = e.cache.Delete(ctx, key)
	}
	e.metrics.ProfileCacheMiss()

	profile, err := e.analyzer.AnalyzePreferences(ctx, history, u.RecentMeals(recentMealWindow))
	if err != nil {
		e.metrics.InferenceFailure()
		e.logger.Warn("preference analysis failed, proceeding without profile",
			zap.String("user_id", u.ID().String()),
			zap.Error(err),
		)
		return nil
	}
	// An empty profile carries no signal; treat it like extraction failure
	// so ranking keeps popularity order, and leave the cache untouched.
	if profile.IsEmpty() {
		return nil
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
			e.logger.Warn("failed to cache preference profile", zap.Error(err))
		}
	}

	return profile
}

// Invalidate drops the user's cached profile, forcing the next Extract
// to re-run inference.
func (e *PreferenceExtractor) Invalidate(ctx context.Context, u *user.User) {
	_ = e.cache.Delete(ctx, e.cacheKey(u))
}

// cacheKey is keyed per user only. A swipe recorded inside the TTL serves
// a stale profile rather than re-invoking the model; the latency and cost
// bound wins over freshness here.
func (e *PreferenceExtractor) cacheKey(u *user.User) string {
	return fmt.Sprintf("preferences:%s", u.ID())
}
