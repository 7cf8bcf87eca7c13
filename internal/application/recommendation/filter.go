package recommendation

import (
	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
)

// CandidateFilter narrows the active, unswiped corpus with the hard
// preference constraints. The constraints are a soft filter: when strict
// filtering would starve the feed entirely, the unfiltered set is returned
// instead.
type CandidateFilter struct{}

// NewCandidateFilter creates a new candidate filter
func NewCandidateFilter() *CandidateFilter {
	return &CandidateFilter{}
}

// Apply returns the candidates that pass the profile's constraints:
// cuisine on the allow-list (when the list is non-empty) and at least one
// nutritional tag in the focus set (when non-empty). Inactive entries and
// duplicate ids are always dropped. With no profile, or when strict
// filtering yields nothing, the whole deduplicated set passes through.
func (f *CandidateFilter) Apply(candidates []*recipe.Recipe, profile *preference.Profile) []*recipe.Recipe {
	base := dedupeActive(candidates)
	if profile == nil {
		return base
	}

	filtered := make([]*recipe.Recipe, 0, len(base))
	for _, r := range base {
		if len(profile.PreferredCuisines) > 0 && !profile.PrefersCuisine(r.Cuisine()) {
			continue
		}
		if len(profile.NutritionalFocus) > 0 && !profile.MatchesFocus(r.NutritionalTags()) {
			continue
		}
		filtered = append(filtered, r)
	}

	// Starvation fallback: an over-constrained profile must not empty the
	// feed.
	if len(filtered) == 0 {
		return base
	}

	return filtered
}

func dedupeActive(candidates []*recipe.Recipe) []*recipe.Recipe {
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	out := make([]*recipe.Recipe, 0, len(candidates))
	for _, r := range candidates {
		if r == nil || !r.IsActive() {
			continue
		}
		if _, ok := seen[r.ID()]; ok {
			continue
		}
		seen[r.ID()] = struct{}{}
		out = append(out, r)
	}
	return out
}
