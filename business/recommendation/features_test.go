package recommendation

import (
	"testing"

	"solestride/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SegmentLayout(t *testing.T) {
	vec := encode(traits{
		Brand:    "Nike",
		ShoeType: "Running",
		Gender:   "men",
		Sizes:    []int{9, 10},
	})

	require.Len(t, vec, featureDim())

	brandSeg := vec[0:len(brands)]
	typeSeg := vec[len(brands) : len(brands)+len(shoeTypes)]
	genderSeg := vec[len(brands)+len(shoeTypes) : len(brands)+len(shoeTypes)+len(genders)]
	sizeSeg := vec[len(brands)+len(shoeTypes)+len(genders):]

	// Exactly one 4 in the brand segment, at Nike's position.
	assert.Equal(t, []float64{0, 4, 0, 0, 0}, brandSeg)
	// Exactly one 3 in the type segment, at Running's position.
	assert.Equal(t, []float64{3, 0, 0, 0}, typeSeg)
	// Exactly one 2 in the gender segment, at men's position.
	assert.Equal(t, []float64{2, 0, 0}, genderSeg)
	// Two 1s in the size segment, at sizes 9 and 10.
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 1, 1, 0, 0}, sizeSeg)
}

func TestEncode_Deterministic(t *testing.T) {
	tr := traits{Brand: "Puma", ShoeType: "Football", Gender: "unisex", Sizes: []int{7}}

	assert.Equal(t, encode(tr), encode(tr))
}

func TestEncode_StockIsNotAFeature(t *testing.T) {
	inStock := domain.Product{Brand: "Asics", ShoeType: "Running", Gender: "women", Sizes: []int{5, 6}, Quantity: 40}
	soldOut := inStock
	soldOut.Quantity = 0

	assert.Equal(t, encode(productTraits(inStock)), encode(productTraits(soldOut)))
}

func TestEncode_AbsentAttributesAreZero(t *testing.T) {
	vec := encode(traits{})

	for i, v := range vec {
		assert.Zerof(t, v, "position %d", i)
	}
}

func TestEncode_UnknownValuesAreZero(t *testing.T) {
	vec := encode(traits{Brand: "Reebok", ShoeType: "Hiking", Gender: "kids", Sizes: []int{15}})

	for i, v := range vec {
		assert.Zerof(t, v, "position %d", i)
	}
}
