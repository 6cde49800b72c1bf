package vad

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/moodpick/moodpick-backend/internal/domain"
)

func mustVector(t *testing.T, val, ar, dom float64) domain.AffectiveVector {
	t.Helper()
	v, err := domain.NewAffectiveVector(val, ar, dom)
	if err != nil {
		t.Fatalf("NewAffectiveVector(%v,%v,%v): %v", val, ar, dom, err)
	}
	return v
}

func TestScoreSymmetry(t *testing.T) {
	r := NewRanker()
	u := mustVector(t, 0.85, 0.35, 0.6)
	v := mustVector(t, 0.2, 0.8, 0.3)

	a := r.Score(u, v)
	b := r.Score(v, u)
	if math.Abs(a-b) > 1e-12 {
		t.Fatalf("score not symmetric: %v vs %v", a, b)
	}
}

func TestScoreSelfSimilarityMaximal(t *testing.T) {
	r := NewRanker()
	for _, u := range []domain.AffectiveVector{
		mustVector(t, 0.85, 0.35, 0.6),
		mustVector(t, 0.1, 0.9, 0.2),
		mustVector(t, 1, 1, 1),
	} {
		if got := r.Score(u, u); math.Abs(got-1.0) > 1e-9 {
			t.Fatalf("self score for %#v: got %v want ~1.0", u, got)
		}
	}
}

func TestRankOrdersCloserToneFirst(t *testing.T) {
	r := NewRanker()
	user := mustVector(t, 0.85, 0.35, 0.6)

	near := ScoredItem{ID: uuid.New(), Title: "near", Tone: mustVector(t, 0.9, 0.3, 0.55)}
	far := ScoredItem{ID: uuid.New(), Title: "far", Tone: mustVector(t, 0.1, 0.9, 0.2)}

	got := r.Rank(user, []ScoredItem{far, near})
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].ID != near.ID {
		t.Fatalf("closer tone not ranked first: %#v", got.Items)
	}
	if got.Items[0].Score < got.Items[1].Score {
		t.Fatalf("scores not non-increasing: %#v", got.Items)
	}
}

func TestRankIsPermutationAndNonIncreasing(t *testing.T) {
	r := NewRanker()
	user := mustVector(t, 0.5, 0.5, 0.5)

	in := []ScoredItem{
		{ID: uuid.New(), Tone: mustVector(t, 0.2, 0.9, 0.4)},
		{ID: uuid.New(), Tone: mustVector(t, 0.5, 0.5, 0.5)},
		{ID: uuid.New(), Tone: mustVector(t, 0.8, 0.1, 0.6)},
		{ID: uuid.New(), Tone: mustVector(t, 0.4, 0.6, 0.5)},
	}

	got := r.Rank(user, in)
	if len(got.Items) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(got.Items), len(in))
	}

	seen := map[uuid.UUID]bool{}
	for _, it := range got.Items {
		seen[it.ID] = true
	}
	for _, it := range in {
		if !seen[it.ID] {
			t.Fatalf("id %s missing from ranked output", it.ID)
		}
	}

	for i := 1; i < len(got.Items); i++ {
		if got.Items[i].Score > got.Items[i-1].Score {
			t.Fatalf("scores increase at %d: %#v", i, got.Items)
		}
	}
}

func TestRankStableTies(t *testing.T) {
	r := NewRanker()
	user := mustVector(t, 0.6, 0.4, 0.5)
	tone := mustVector(t, 0.3, 0.7, 0.2)

	first := ScoredItem{ID: uuid.New(), Title: "first", Tone: tone}
	second := ScoredItem{ID: uuid.New(), Title: "second", Tone: tone}
	third := ScoredItem{ID: uuid.New(), Title: "third", Tone: tone}

	got := r.Rank(user, []ScoredItem{first, second, third})
	if got.Items[0].ID != first.ID || got.Items[1].ID != second.ID || got.Items[2].ID != third.ID {
		t.Fatalf("tied scores reordered: %#v", got.Items)
	}
}

func TestRankEmptyInput(t *testing.T) {
	r := NewRanker()
	got := r.Rank(mustVector(t, 0.5, 0.5, 0.5), nil)
	if len(got.Items) != 0 {
		t.Fatalf("expected empty result, got %#v", got.Items)
	}
}
