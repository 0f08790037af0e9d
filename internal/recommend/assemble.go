package recommend

import (
	"strings"

	"github.com/google/uuid"
)

// Sources holds the four catalog snapshots the assembler draws from. The
// assembly order is fixed (curated, personalized, own, community) so that
// deduplication and the final tie-break are deterministic.
type Sources struct {
	Curated      []Item
	Personalized []Item
	Own          []Item
	Community    []Item
}

// Assemble produces the deduplicated, eligible candidate pool:
//
//  1. gather from the four sources in fixed order
//  2. dedup by item id, first occurrence wins
//  3. drop items the user already completed
//  4. gate intermediate/advanced items on prerequisite mastery
//  5. filter by declared interests (loose bidirectional substring match);
//     no declared interests keeps everything
//
// It returns the pool plus its tag vocabulary in first-seen order, which the
// caller feeds back into EstimateMastery for scoring.
func Assemble(src Sources, completed map[uuid.UUID]struct{}, records []CompletedRecord, interests []string, prereqThreshold float64) ([]Item, []string) {
	ordered := make([]Item, 0, len(src.Curated)+len(src.Personalized)+len(src.Own)+len(src.Community))
	ordered = append(ordered, src.Curated...)
	ordered = append(ordered, src.Personalized...)
	ordered = append(ordered, src.Own...)
	ordered = append(ordered, src.Community...)

	seen := make(map[uuid.UUID]struct{}, len(ordered))
	deduped := make([]Item, 0, len(ordered))
	for _, it := range ordered {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		if _, done := completed[it.ID]; done {
			continue
		}
		deduped = append(deduped, it)
	}

	// The gate needs mastery over prerequisite tags, which may not appear
	// on any candidate, so the gating vocabulary is tags plus prereq tags.
	gateVocab := collectVocabulary(deduped, true)
	gateMastery := EstimateMastery(records, gateVocab)

	pool := make([]Item, 0, len(deduped))
	for _, it := range deduped {
		if !MeetsPrereqs(gateMastery, it, prereqThreshold) {
			continue
		}
		if !matchesInterests(it.Tags, interests) {
			continue
		}
		pool = append(pool, it)
	}

	return pool, collectVocabulary(pool, false)
}

// ParseInterests splits a declared-interest string on commas, trimming and
// lowercasing each token. Empty tokens are dropped.
func ParseInterests(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

func matchesInterests(tags, interests []string) bool {
	if len(interests) == 0 {
		return true
	}
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, interest := range interests {
			if strings.Contains(lowered, interest) || strings.Contains(interest, lowered) {
				return true
			}
		}
	}
	return false
}

func collectVocabulary(items []Item, includePrereqs bool) []string {
	seen := make(map[string]struct{})
	vocab := make([]string, 0)
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		vocab = append(vocab, tag)
	}
	for _, it := range items {
		for _, tag := range it.Tags {
			add(tag)
		}
		if includePrereqs {
			for _, tag := range it.PrereqTags {
				add(tag)
			}
		}
	}
	return vocab
}
