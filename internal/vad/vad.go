// Package vad scores affective similarity between Valence-Arousal-
// Dominance vectors. Stored vectors live in [0,1]^3; scoring centers
// them to [-1,1]^3 first.
package vad

import "math"

// Default scoring parameters. Dominance is weighted below valence and
// arousal: tone and energy matter more than sense-of-control when
// matching mood to content.
var DefaultWeights = [3]float64{1.0, 1.0, 0.7}

// DefaultAlpha blends the cosine term against the distance term.
const DefaultAlpha = 0.6

// Normalize maps each axis from [0,1] to [-1,1]. Inputs are clamped to
// [0,1] first, so the function is total.
func Normalize(v [3]float64) [3]float64 {
	var out [3]float64
	for i, x := range v {
		out[i] = clamp01(x)*2 - 1
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// WeightedCosine is the cosine of the element-wise-weighted vectors.
// When either weighted vector has zero norm the result is exactly 0.0;
// that is the degenerate-case policy, not an error.
func WeightedCosine(u, v, w [3]float64) float64 {
	var dot, nu, nv float64
	for i := 0; i < 3; i++ {
		uw := u[i] * w[i]
		vw := v[i] * w[i]
		dot += uw * vw
		nu += uw * uw
		nv += vw * vw
	}
	if nu == 0 || nv == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(nu) * math.Sqrt(nv))
}

// WeightedDistanceScore maps weighted Euclidean distance to [0,1],
// where 1 means identical. The maximum possible distance is the
// diagonal of the weighted [-1,1]^3 cube, 2*sqrt(sum(w)).
func WeightedDistanceScore(u, v, w [3]float64) float64 {
	var d2, wsum float64
	for i := 0; i < 3; i++ {
		diff := (u[i] - v[i]) * w[i]
		d2 += diff * diff
		wsum += w[i]
	}
	dmax := 2 * math.Sqrt(wsum)
	if dmax == 0 {
		return 1.0
	}
	return 1 - math.Sqrt(d2)/dmax
}
