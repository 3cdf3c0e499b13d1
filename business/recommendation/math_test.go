package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vec := encode(traits{Brand: "Nike", ShoeType: "Lifestyle", Gender: "men", Sizes: []int{8}})

	assert.InDelta(t, 1.0, cosineSimilarity(vec, vec), 1e-9)
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	a := encode(traits{Brand: "Nike", ShoeType: "Running", Gender: "men", Sizes: []int{9}})
	b := encode(traits{Brand: "Adidas", ShoeType: "Running", Gender: "women", Sizes: []int{9, 10}})

	sim := cosineSimilarity(a, b)
	assert.GreaterOrEqual(t, sim, 0.0)
	assert.LessOrEqual(t, sim, 1.0)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	a := encode(traits{Brand: "Nike"})
	b := encode(traits{Brand: "Adidas"})

	assert.Zero(t, cosineSimilarity(a, b))
}

func TestCosineSimilarity_MismatchedLengths(t *testing.T) {
	assert.Zero(t, cosineSimilarity([]float64{1, 0}, []float64{1, 0, 0}))
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := make([]float64, featureDim())
	vec := encode(traits{Brand: "Puma"})

	assert.Zero(t, cosineSimilarity(zero, vec))
	assert.Zero(t, cosineSimilarity(vec, zero))
	assert.Zero(t, cosineSimilarity(zero, zero))
}
