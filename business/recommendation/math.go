package recommendation

import "math"

// cosineSimilarity returns dot(a,b) / (‖a‖·‖b‖). Vectors produced by the
// encoder are non-negative, so the result lies in [0,1]. Mismatched
// lengths and zero-magnitude vectors are defined degenerate cases and
// score 0 rather than erroring.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (magA * magB)
}
