package recommend

import "math"

const (
	ordinalBeginner     = 1.0
	ordinalIntermediate = 2.0
	ordinalAdvanced     = 3.0

	maxRating = 5.0
)

// GapScore measures how much an item would close a knowledge gap: the mean
// of (1 - mastery) over its tags. An item with no tags carries no signal
// and scores 0; a tag absent from the map counts as fully unmastered.
func GapScore(mastery MasteryMap, tags []string) float64 {
	if len(tags) == 0 {
		return 0
	}
	total := 0.0
	for _, tag := range tags {
		total += 1.0 - mastery[tag]
	}
	return total / float64(len(tags))
}

// MeetsPrereqs is the eligibility gate for intermediate and advanced items:
// every prerequisite tag needs mastery at or above the threshold. Beginner
// items and items without prerequisites are always eligible.
func MeetsPrereqs(mastery MasteryMap, item Item, threshold float64) bool {
	if difficultyOrdinal(item.Difficulty) <= ordinalBeginner {
		return true
	}
	for _, tag := range item.PrereqTags {
		if mastery[tag] < threshold {
			return false
		}
	}
	return true
}

// DifficultyMatch compares the item's difficulty against a continuous user
// level derived from average mastery over the item's tags. A perfect match
// scores 1.0 and a two-level mismatch scores 0.
func DifficultyMatch(mastery MasteryMap, item Item) float64 {
	avg := 0.0
	if len(item.Tags) > 0 {
		for _, tag := range item.Tags {
			avg += mastery[tag]
		}
		avg /= float64(len(item.Tags))
	}
	userLevel := 1.0 + avg*2.0
	delta := math.Abs(userLevel - difficultyOrdinal(item.Difficulty))
	return math.Max(0, 1.0-delta/2.0)
}

// PopularityScore normalizes visit counts against the candidate pool's
// maximum, so the score is relative to the current pool rather than any
// global maximum. The max(1, ...) guard covers pools with no visits.
func PopularityScore(visits, poolMaxVisits int) float64 {
	if poolMaxVisits < 1 {
		poolMaxVisits = 1
	}
	return float64(visits) / float64(poolMaxVisits)
}

// RatingScore normalizes a star rating into [0,1].
func RatingScore(rating float64) float64 {
	return rating / maxRating
}

func difficultyOrdinal(difficulty string) float64 {
	switch difficulty {
	case "advanced":
		return ordinalAdvanced
	case "intermediate":
		return ordinalIntermediate
	default:
		return ordinalBeginner
	}
}
