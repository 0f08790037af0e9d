package recommend

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Reason templates attached to ranked results. Exactly one per result;
// informative metadata only, never part of the ranking itself.
const (
	ReasonDifficultyMatch = "difficulty matches your level"
	ReasonPopular         = "popular among learners"
	ReasonHighlyRated     = "highly rated"
	ReasonDefault         = "matches your interests"

	reasonSkillGapFormat = "fills a skill gap in %s"
)

// Reason rule thresholds, evaluated in fixed priority order.
const (
	reasonGapThreshold        = 0.6
	reasonDifficultyThreshold = 0.7
	reasonPopularityThreshold = 0.7
	reasonRatingThreshold     = 0.8
)

// ReasonSkillGap renders the skill-gap reason for a tag.
func ReasonSkillGap(tag string) string {
	return fmt.Sprintf(reasonSkillGapFormat, tag)
}

// Rank scores every candidate against the mastery map and returns them in
// descending score order. The sort is stable, so equal scores keep the
// assembler's insertion order. Boosts can push the composite past 1.0
// internally; the returned score is clamped.
func Rank(candidates []Item, mastery MasteryMap, userID uuid.UUID, cfg Config) []RankedItem {
	if len(candidates) == 0 {
		return []RankedItem{}
	}

	poolMaxVisits := 0
	for _, it := range candidates {
		if it.Visits > poolMaxVisits {
			poolMaxVisits = it.Visits
		}
	}

	ranked := make([]RankedItem, 0, len(candidates))
	for _, it := range candidates {
		gap := GapScore(mastery, it.Tags)
		difficulty := DifficultyMatch(mastery, it)
		popularity := PopularityScore(it.Visits, poolMaxVisits)
		rating := RatingScore(it.Rating)

		score := gap*cfg.GapWeight +
			difficulty*cfg.DifficultyWeight +
			popularity*cfg.PopularityWeight +
			rating*cfg.RatingWeight

		if it.PersonalizedForUser(userID) {
			score += cfg.PersonalizedBoost
		}
		if it.OwnedByUser(userID) {
			score += cfg.OwnContentBoost
		}
		if score > 1.0 {
			score = 1.0
		}

		ranked = append(ranked, RankedItem{
			Item:   it,
			Score:  score,
			Reason: selectReason(it, gap, difficulty, popularity, rating),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func selectReason(it Item, gap, difficulty, popularity, rating float64) string {
	switch {
	case gap > reasonGapThreshold && len(it.Tags) > 0:
		return ReasonSkillGap(it.Tags[0])
	case difficulty > reasonDifficultyThreshold:
		return ReasonDifficultyMatch
	case popularity > reasonPopularityThreshold:
		return ReasonPopular
	case rating > reasonRatingThreshold:
		return ReasonHighlyRated
	default:
		return ReasonDefault
	}
}
