package domain

import "fmt"

// AffectiveVector is a Valence-Arousal-Dominance description of a text,
// each axis in [0,1]. Out-of-range values are rejected at construction;
// scoring-time centering to [-1,1] happens inside the vad package and
// never mutates the stored vector.
type AffectiveVector struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

func NewAffectiveVector(valence, arousal, dominance float64) (AffectiveVector, error) {
	for _, axis := range []struct {
		name  string
		value float64
	}{
		{"valence", valence},
		{"arousal", arousal},
		{"dominance", dominance},
	} {
		if axis.value < 0 || axis.value > 1 {
			return AffectiveVector{}, fmt.Errorf("%s out of range [0,1]: %v", axis.name, axis.value)
		}
	}
	return AffectiveVector{Valence: valence, Arousal: arousal, Dominance: dominance}, nil
}
