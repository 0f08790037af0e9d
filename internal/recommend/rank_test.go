package recommend

import (
	"testing"

	"github.com/google/uuid"
)

func TestRankCompositeScore(t *testing.T) {
	userID := uuid.New()
	mastery := MasteryMap{"python": 0.9, "web": 0}

	candidate := Item{
		ID:         uuid.New(),
		Tags:       []string{"python", "web"},
		Difficulty: "intermediate",
		Visits:     25,
		Rating:     4.0,
	}
	// Sets the pool max visits to 100 so candidate popularity is 0.25.
	crowd := Item{
		ID:         uuid.New(),
		Tags:       []string{"python"},
		Difficulty: "beginner",
		Visits:     100,
	}

	ranked := Rank([]Item{candidate, crowd}, mastery, userID, DefaultConfig())
	if len(ranked) != 2 {
		t.Fatalf("ranked %d items, want 2", len(ranked))
	}

	// gap=0.55, difficulty=0.95, popularity=0.25, rating=0.8:
	// 0.55*0.5 + 0.95*0.2 + 0.25*0.15 + 0.8*0.15 = 0.6225
	top := ranked[0]
	if top.Item.ID != candidate.ID {
		t.Fatalf("wrong item ranked first")
	}
	if !almostEqual(top.Score, 0.6225) {
		t.Fatalf("composite score=%v, want 0.6225", top.Score)
	}
	// gap 0.55 misses the 0.6 rule, difficulty 0.95 wins next.
	if top.Reason != ReasonDifficultyMatch {
		t.Fatalf("reason=%q, want %q", top.Reason, ReasonDifficultyMatch)
	}

	// The crowd item is carried by popularity alone.
	if ranked[1].Reason != ReasonPopular {
		t.Fatalf("reason=%q, want %q", ranked[1].Reason, ReasonPopular)
	}
}

func TestRankBoosts(t *testing.T) {
	userID := uuid.New()
	mastery := MasteryMap{"x": 0.5}
	base := Item{ID: uuid.New(), Tags: []string{"x"}, Difficulty: "beginner", Rating: 2.5}

	// gap=0.5, difficulty=0.5, popularity=0, rating=0.5 -> base 0.425.
	cases := []struct {
		name string
		mod  func(Item) Item
		want float64
	}{
		{
			name: "no_boost",
			mod:  func(it Item) Item { return it },
			want: 0.425,
		},
		{
			name: "personalized_boost",
			mod: func(it Item) Item {
				it.PersonalizedFor = []uuid.UUID{userID}
				return it
			},
			want: 0.625,
		},
		{
			name: "own_content_boost",
			mod: func(it Item) Item {
				it.OwnerID = userID
				return it
			},
			want: 0.575,
		},
		{
			name: "both_boosts_stack",
			mod: func(it Item) Item {
				it.PersonalizedFor = []uuid.UUID{userID}
				it.OwnerID = userID
				return it
			},
			want: 0.775,
		},
		{
			name: "personalized_for_someone_else_no_boost",
			mod: func(it Item) Item {
				it.PersonalizedFor = []uuid.UUID{uuid.New()}
				it.OwnerID = uuid.New()
				return it
			},
			want: 0.425,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ranked := Rank([]Item{tc.mod(base)}, mastery, userID, DefaultConfig())
			if !almostEqual(ranked[0].Score, tc.want) {
				t.Fatalf("score=%v, want %v", ranked[0].Score, tc.want)
			}
		})
	}
}

func TestRankClampsBoostedScore(t *testing.T) {
	userID := uuid.New()
	// Unmastered tags, perfect difficulty match, top rating and pool-max
	// visits give a base score of 1.0 before the personalized boost.
	item := Item{
		ID:              uuid.New(),
		Tags:            []string{"quantum", "haskell"},
		Difficulty:      "beginner",
		Visits:          10,
		Rating:          5.0,
		PersonalizedFor: []uuid.UUID{userID},
	}

	ranked := Rank([]Item{item}, MasteryMap{}, userID, DefaultConfig())
	if !almostEqual(ranked[0].Score, 1.0) {
		t.Fatalf("boosted score=%v, want clamped 1.0", ranked[0].Score)
	}
}

func TestRankScoreBounds(t *testing.T) {
	userID := uuid.New()
	items := []Item{
		{ID: uuid.New(), Tags: []string{"a"}, Difficulty: "advanced", Visits: 3, Rating: 1},
		{ID: uuid.New(), Tags: []string{"b"}, Difficulty: "beginner", Visits: 0, Rating: 5, PersonalizedFor: []uuid.UUID{userID}},
		{ID: uuid.New(), Difficulty: "intermediate", Visits: 99, Rating: 0, OwnerID: userID},
	}
	ranked := Rank(items, MasteryMap{"a": 0.3, "b": 1.0}, userID, DefaultConfig())
	for _, r := range ranked {
		if r.Score < 0 || r.Score > 1 {
			t.Fatalf("score %v out of [0,1]", r.Score)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("ranked list not descending at %d", i)
		}
	}
}

func TestRankStableTieBreak(t *testing.T) {
	userID := uuid.New()
	first := Item{ID: uuid.New(), Tags: []string{"go"}, Difficulty: "beginner"}
	second := Item{ID: uuid.New(), Tags: []string{"go"}, Difficulty: "beginner"}

	ranked := Rank([]Item{first, second}, MasteryMap{"go": 0}, userID, DefaultConfig())
	if !almostEqual(ranked[0].Score, ranked[1].Score) {
		t.Fatalf("expected a tie, got %v and %v", ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Item.ID != first.ID || ranked[1].Item.ID != second.ID {
		t.Fatalf("tie did not preserve insertion order")
	}
}

func TestRankDeterministic(t *testing.T) {
	userID := uuid.New()
	items := []Item{
		{ID: uuid.New(), Tags: []string{"a", "b"}, Difficulty: "intermediate", Visits: 10, Rating: 3},
		{ID: uuid.New(), Tags: []string{"c"}, Difficulty: "beginner", Visits: 50, Rating: 4.5},
		{ID: uuid.New(), Tags: []string{"a"}, Difficulty: "advanced", Visits: 5, Rating: 2},
	}
	mastery := MasteryMap{"a": 0.4, "b": 0.9, "c": 0}

	one := Rank(items, mastery, userID, DefaultConfig())
	two := Rank(items, mastery, userID, DefaultConfig())
	if len(one) != len(two) {
		t.Fatalf("rank lengths differ")
	}
	for i := range one {
		if one[i].Item.ID != two[i].Item.ID || !almostEqual(one[i].Score, two[i].Score) || one[i].Reason != two[i].Reason {
			t.Fatalf("rank not deterministic at %d", i)
		}
	}
}

func TestRankReasonPriority(t *testing.T) {
	userID := uuid.New()
	// Huge gap on a popular, highly rated item: the gap rule still wins.
	item := Item{ID: uuid.New(), Tags: []string{"rust", "wasm"}, Difficulty: "beginner", Visits: 100, Rating: 5}

	ranked := Rank([]Item{item}, MasteryMap{}, userID, DefaultConfig())
	want := ReasonSkillGap("rust")
	if ranked[0].Reason != want {
		t.Fatalf("reason=%q, want %q", ranked[0].Reason, want)
	}
}
