package recommendation

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
)

const (
	// DefaultPageSize caps the ranked feed returned per request.
	DefaultPageSize = 10

	// DefaultTieBand is the score distance within which candidate order is
	// randomized instead of strictly sorted.
	DefaultTieBand = 1
)

// ScoredRecipe pairs a candidate with its computed match score.
type ScoredRecipe struct {
	Recipe *recipe.Recipe
	Score  int

	// jitter is the per-request random tie-break key inside the band.
	jitter float64
}

// Ranker assigns match scores and orders candidates descending by score.
// Candidates whose scores differ by no more than the tie band are ordered
// randomly relative to each other, which rewards diversity without
// defeating the preference signal.
type Ranker struct {
	pageSize int
	tieBand  int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRanker creates a ranker with the given page size and tie band.
func NewRanker(pageSize, tieBand int, seed int64) *Ranker {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if tieBand < 0 {
		tieBand = DefaultTieBand
	}
	return &Ranker{
		pageSize: pageSize,
		tieBand:  tieBand,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Rank scores and orders candidates, capped at the configured page size.
func (rk *Ranker) Rank(candidates []*recipe.Recipe, profile *preference.Profile) []ScoredRecipe {
	return rk.RankN(candidates, profile, rk.pageSize)
}

// RankN scores and orders candidates, capped at limit (0 = page size).
func (rk *Ranker) RankN(candidates []*recipe.Recipe, profile *preference.Profile, limit int) []ScoredRecipe {
	if limit <= 0 {
		limit = rk.pageSize
	}

	scored := make([]ScoredRecipe, len(candidates))

	// No profile, or one with no usable signal: every candidate scores
	// zero and the incoming popularity/insertion order stands.
	if profile.IsEmpty() {
		for i, r := range candidates {
			scored[i] = ScoredRecipe{Recipe: r}
		}
		if len(scored) > limit {
			scored = scored[:limit]
		}
		return scored
	}

	rk.mu.Lock()
	for i, r := range candidates {
		scored[i] = ScoredRecipe{Recipe: r, Score: profile.Score(r), jitter: rk.rng.Float64()}
	}
	rk.mu.Unlock()

	// Stable sort: within the tie band the precomputed jitter decides, so
	// equally matched candidates shuffle while clear winners stay on top.
	// The comparator is not transitive across band boundaries, so the
	// result is an advisory ordering rather than a total order by score.
	sort.SliceStable(scored, func(i, j int) bool {
		di := scored[i].Score - scored[j].Score
		if di < 0 {
			di = -di
		}
		if di <= rk.tieBand {
			return scored[i].jitter < scored[j].jitter
		}
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
