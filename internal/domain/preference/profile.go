// Package preference holds the derived preference profile and the match
// scoring rules it implies. Profiles are ephemeral: recomputed per request
// or served from cache, never persisted as source of truth.
package preference

import (
	"strings"

	"github.com/savorly/engine/internal/domain/recipe"
)

// Scoring weights for profile alignment and exclusions.
const (
	cuisineWeight    = 2
	tagWeight        = 2
	complexityWeight = 1
	portionWeight    = 1
	avoidedPenalty   = 3
)

// Profile is a derived summary of a user's taste signals used to bias
// ranking.
type Profile struct {
	PreferredCuisines   []string `json:"preferredCuisines"`
	AvoidedIngredients  []string `json:"avoidedIngredients"`
	PreferredComplexity string   `json:"preferredComplexity"`
	PreferredPortion    string   `json:"preferredPortionSize"`
	NutritionalFocus    []string `json:"nutritionalFocus"`
}

// PrefersCuisine reports whether the cuisine is on the preferred list.
// Comparison is case-insensitive; model output casing is not reliable.
func (p *Profile) PrefersCuisine(cuisine recipe.CuisineType) bool {
	for _, c := range p.PreferredCuisines {
		if strings.EqualFold(c, string(cuisine)) {
			return true
		}
	}
	return false
}

// MatchesFocus reports whether any of the recipe's nutritional tags
// intersects the profile's focus areas.
func (p *Profile) MatchesFocus(tags []string) bool {
	for _, focus := range p.NutritionalFocus {
		for _, tag := range tags {
			if strings.EqualFold(focus, tag) {
				return true
			}
		}
	}
	return false
}

// AvoidsAnyOf reports whether any ingredient case-insensitively contains
// one of the avoided-ingredient substrings.
func (p *Profile) AvoidsAnyOf(ingredients []string) bool {
	for _, avoided := range p.AvoidedIngredients {
		needle := strings.ToLower(avoided)
		if needle == "" {
			continue
		}
		for _, ing := range ingredients {
			if strings.Contains(strings.ToLower(ing), needle) {
				return true
			}
		}
	}
	return false
}

// Score computes the integer match score of a recipe against the profile:
// +2 preferred cuisine, +2 nutritional focus overlap, +1 complexity match,
// +1 portion match, -3 avoided ingredient. A nil profile scores zero,
// leaving ordering to popularity downstream.
func (p *Profile) Score(r *recipe.Recipe) int {
	if p == nil {
		return 0
	}

	score := 0
	if p.PrefersCuisine(r.Cuisine()) {
		score += cuisineWeight
	}
	if p.MatchesFocus(r.NutritionalTags()) {
		score += tagWeight
	}
	if p.PreferredComplexity != "" && strings.EqualFold(p.PreferredComplexity, string(r.Complexity())) {
		score += complexityWeight
	}
	if p.PreferredPortion != "" && strings.EqualFold(p.PreferredPortion, string(r.PortionSize())) {
		score += portionWeight
	}
	if p.AvoidsAnyOf(r.Ingredients()) {
		score -= avoidedPenalty
	}

	return score
}

// IsEmpty reports whether the profile carries no usable signal at all.
func (p *Profile) IsEmpty() bool {
	return p == nil ||
		(len(p.PreferredCuisines) == 0 &&
			len(p.AvoidedIngredients) == 0 &&
			p.PreferredComplexity == "" &&
			p.PreferredPortion == "" &&
			len(p.NutritionalFocus) == 0)
}
