package recommend

// EstimateMastery derives a per-tag proficiency map from completed progress
// records. Each record contributes (score ?? 100)/100 to every tag on its
// item; the per-tag mastery is the mean of those contributions, capped at
// 1.0. The returned map is total over the given vocabulary: every queried
// tag is present, defaulting to 0 when the user has no completed work on it.
// Records whose item no longer exists are skipped.
func EstimateMastery(records []CompletedRecord, vocabulary []string) MasteryMap {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, rec := range records {
		if rec.ItemMissing {
			continue
		}
		contribution := 1.0
		if rec.Score != nil {
			contribution = *rec.Score / 100.0
		}
		for _, tag := range rec.Tags {
			sums[tag] += contribution
			counts[tag]++
		}
	}

	mastery := make(MasteryMap, len(vocabulary))
	for _, tag := range vocabulary {
		if counts[tag] == 0 {
			mastery[tag] = 0
			continue
		}
		avg := sums[tag] / float64(counts[tag])
		if avg > 1.0 {
			avg = 1.0
		}
		mastery[tag] = avg
	}
	return mastery
}
