package domain

import "unicode/utf8"

// MaxRationaleLen bounds the oracle-provided rationale carried on a
// Criterion. Longer rationales are truncated at construction.
const MaxRationaleLen = 240

// Criterion is one extracted attribute: a typed value plus the oracle's
// confidence in it and a short human-readable rationale. Immutable once
// built; discarded at the end of a turn.
type Criterion[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
}

func NewCriterion[T any](value T, confidence float64, rationale string) Criterion[T] {
	if len(rationale) > MaxRationaleLen {
		// Back off to a rune boundary so the cut never leaves an
		// invalid UTF-8 tail.
		cut := MaxRationaleLen
		for cut > 0 && !utf8.RuneStart(rationale[cut]) {
			cut--
		}
		rationale = rationale[:cut]
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Criterion[T]{Value: value, Confidence: confidence, Rationale: rationale}
}
