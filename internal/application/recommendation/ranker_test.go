package recommendation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/application/recommendation"
	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankerCapsAtPageSize(t *testing.T) {
	factory := testutils.NewRecipeFactory(10)
	candidates := make([]*recipe.Recipe, 25)
	for i := range candidates {
		candidates[i] = factory.Recipe()
	}
	ranker := recommendation.NewRanker(10, 1, 42)

	got := ranker.Rank(candidates, &preference.Profile{PreferredCuisines: []string{"italian"}})

	assert.Len(t, got, 10)
}

func TestRankerNilProfileKeepsInputOrder(t *testing.T) {
	factory := testutils.NewRecipeFactory(11)
	candidates := []*recipe.Recipe{factory.Recipe(), factory.Recipe(), factory.Recipe()}
	ranker := recommendation.NewRanker(10, 1, 42)

	got := ranker.Rank(candidates, nil)

	require.Len(t, got, 3)
	for i, sr := range got {
		assert.Equal(t, candidates[i].ID(), sr.Recipe.ID())
		assert.Equal(t, 0, sr.Score, "no profile means no signal")
	}
}

func TestRankerEmptyProfileKeepsInputOrder(t *testing.T) {
	factory := testutils.NewRecipeFactory(15)
	candidates := []*recipe.Recipe{factory.Recipe(), factory.Recipe(), factory.Recipe()}
	ranker := recommendation.NewRanker(10, 1, 42)

	got := ranker.Rank(candidates, &preference.Profile{})

	require.Len(t, got, 3)
	for i, sr := range got {
		assert.Equal(t, candidates[i].ID(), sr.Recipe.ID(), "an all-zero profile must not shuffle popularity order")
		assert.Equal(t, 0, sr.Score)
	}
}

func TestRankerClearWinnerStaysOnTop(t *testing.T) {
	factory := testutils.NewRecipeFactory(12)
	winner := factory.RecipeWith(recipe.CuisineTypeItalian, []string{"high-protein"}, nil,
		recipe.ComplexityLevelEasy, recipe.PortionSizeMedium)
	losers := []*recipe.Recipe{
		factory.RecipeWith(recipe.CuisineTypeMexican, nil, nil, recipe.ComplexityLevelHard, recipe.PortionSizeLarge),
		factory.RecipeWith(recipe.CuisineTypeIndian, nil, nil, recipe.ComplexityLevelHard, recipe.PortionSizeLarge),
	}
	profile := &preference.Profile{
		PreferredCuisines:   []string{"italian"},
		NutritionalFocus:    []string{"high-protein"},
		PreferredComplexity: "easy",
		PreferredPortion:    "medium",
	}

	// A six point gap is far outside the tie band, so the winner leads for
	// every seed.
	for seed := int64(0); seed < 20; seed++ {
		ranker := recommendation.NewRanker(10, 1, seed)

		got := ranker.Rank([]*recipe.Recipe{losers[0], winner, losers[1]}, profile)

		require.Len(t, got, 3)
		assert.Equal(t, winner.ID(), got[0].Recipe.ID(), "seed %d", seed)
		assert.Equal(t, 6, got[0].Score)
	}
}

func TestRankerShufflesWithinTieBand(t *testing.T) {
	factory := testutils.NewRecipeFactory(13)
	candidates := make([]*recipe.Recipe, 6)
	ids := make(map[uuid.UUID]struct{}, len(candidates))
	for i := range candidates {
		candidates[i] = factory.RecipeWith(recipe.CuisineTypeThai, nil, nil,
			recipe.ComplexityLevelEasy, recipe.PortionSizeSmall)
		ids[candidates[i].ID()] = struct{}{}
	}
	profile := &preference.Profile{PreferredCuisines: []string{"thai"}}

	orders := make(map[string]struct{})
	for seed := int64(0); seed < 30; seed++ {
		got := recommendation.NewRanker(10, 1, seed).Rank(candidates, profile)
		require.Len(t, got, len(candidates))

		var key string
		for _, sr := range got {
			_, known := ids[sr.Recipe.ID()]
			assert.True(t, known, "shuffle must be a permutation, not a substitution")
			assert.Equal(t, 2, sr.Score)
			key += sr.Recipe.ID().String()
		}
		orders[key] = struct{}{}
	}

	assert.Greater(t, len(orders), 1, "equal scores should not always rank the same way")
}

func TestRankerZeroLimitFallsBackToPageSize(t *testing.T) {
	factory := testutils.NewRecipeFactory(14)
	candidates := make([]*recipe.Recipe, 8)
	for i := range candidates {
		candidates[i] = factory.Recipe()
	}
	ranker := recommendation.NewRanker(5, 1, 42)

	got := ranker.RankN(candidates, nil, 0)

	assert.Len(t, got, 5)
}
