// Package recommend holds the pure scoring engine behind learning item
// recommendations: mastery estimation from completed progress, skill gap
// and difficulty scoring, prerequisite gating, candidate assembly and
// composite ranking. Everything here operates on immutable snapshot values;
// nothing reads or writes a store.
package recommend

import "github.com/google/uuid"

// Item is a read-only snapshot of a learning item, decoded from storage
// before scoring begins. It is never mutated by the engine.
type Item struct {
	ID              uuid.UUID
	Title           string
	Kind            string
	Tags            []string
	PrereqTags      []string
	Difficulty      string
	Visits          int
	Rating          float64
	PersonalizedFor []uuid.UUID
	OwnerID         uuid.UUID
}

// CompletedRecord is one completed progress row with its item's tags
// resolved. ItemMissing marks records whose item has been deleted; the
// estimator skips those instead of failing.
type CompletedRecord struct {
	Tags        []string
	Score       *float64
	ItemMissing bool
}

// MasteryMap maps tag -> proficiency in [0,1]. It is total over whatever
// vocabulary it was built for, so consumers never branch on missing keys.
type MasteryMap map[string]float64

// RankedItem is one scored candidate. Score is clamped to [0,1]; Reason is
// one of the fixed templates in rank.go.
type RankedItem struct {
	Item   Item
	Score  float64
	Reason string
}

// PersonalizedForUser reports whether the item is explicitly flagged for
// this user.
func (it Item) PersonalizedForUser(userID uuid.UUID) bool {
	for _, id := range it.PersonalizedFor {
		if id == userID {
			return true
		}
	}
	return false
}

// OwnedByUser reports whether this user authored the item.
func (it Item) OwnedByUser(userID uuid.UUID) bool {
	return it.OwnerID != uuid.Nil && it.OwnerID == userID
}
