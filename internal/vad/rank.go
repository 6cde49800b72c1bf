package vad

import (
	"sort"

	"github.com/google/uuid"

	"github.com/moodpick/moodpick-backend/internal/domain"
)

// Ranker orders catalog items by affective similarity to one reference
// vector.
type Ranker struct {
	Weights [3]float64
	Alpha   float64
}

func NewRanker() *Ranker {
	return &Ranker{Weights: DefaultWeights, Alpha: DefaultAlpha}
}

// Score blends weighted cosine and weighted distance between the
// centered vectors: alpha*cos + (1-alpha)*dist. Symmetric in its two
// arguments; Score(u, u) is maximal (~1.0) for any u with nonzero
// weighted norm.
func (r *Ranker) Score(user, item domain.AffectiveVector) float64 {
	u := Normalize(asTuple(user))
	m := Normalize(asTuple(item))
	cos := WeightedCosine(u, m, r.Weights)
	dist := WeightedDistanceScore(u, m, r.Weights)
	return r.Alpha*cos + (1-r.Alpha)*dist
}

// ScoredItem pairs an item id with its tone vector for ranking.
type ScoredItem struct {
	ID    uuid.UUID
	Title string
	Tone  domain.AffectiveVector
}

// Rank scores every item against the user vector and sorts descending.
// Ties preserve the original input order (stable sort); callers rely on
// that for determinism. An empty input yields an empty result.
func (r *Ranker) Rank(user domain.AffectiveVector, items []ScoredItem) domain.RankedResult {
	out := domain.RankedResult{Items: make([]domain.RankedItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, domain.RankedItem{
			ID:    it.ID,
			Title: it.Title,
			Score: r.Score(user, it.Tone),
		})
	}
	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].Score > out.Items[j].Score
	})
	return out
}

func asTuple(v domain.AffectiveVector) [3]float64 {
	return [3]float64{v.Valence, v.Arousal, v.Dominance}
}
