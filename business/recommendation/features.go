package recommendation

import "solestride/domain"

// Feature domains come from the fixed catalog enums. Ordering is
// load-bearing: profile and candidate vectors must concatenate segments
// identically or similarity is meaningless.
var (
	brands    = domain.Brands
	shoeTypes = domain.ShoeTypes
	genders   = domain.Genders
	sizeRange = domain.Sizes
)

// Segment weights in priority order: brand affinity predicts repeat
// purchase better than a size match.
const (
	brandWeight    = 4.0
	shoeTypeWeight = 3.0
	genderWeight   = 2.0
	sizeWeight     = 1.0
)

func featureDim() int {
	return len(brands) + len(shoeTypes) + len(genders) + len(sizeRange)
}

// traits are the scoreable attributes of a product or of a user profile
// acting as a pseudo-product. Stock, price and images are not features.
type traits struct {
	Brand    string
	ShoeType string
	Gender   string
	Sizes    []int
}

func productTraits(p domain.Product) traits {
	return traits{
		Brand:    p.Brand,
		ShoeType: p.ShoeType,
		Gender:   p.Gender,
		Sizes:    []int(p.Sizes),
	}
}

// encode one-hot encodes each categorical segment (multi-hot for sizes),
// scales by the segment weight and concatenates. Absent attributes leave
// their segment all-zero.
func encode(t traits) []float64 {
	vec := make([]float64, 0, featureDim())

	for _, b := range brands {
		if t.Brand == b {
			vec = append(vec, brandWeight)
		} else {
			vec = append(vec, 0)
		}
	}

	for _, st := range shoeTypes {
		if t.ShoeType == st {
			vec = append(vec, shoeTypeWeight)
		} else {
			vec = append(vec, 0)
		}
	}

	for _, g := range genders {
		if t.Gender == g {
			vec = append(vec, genderWeight)
		} else {
			vec = append(vec, 0)
		}
	}

	for _, sz := range sizeRange {
		if containsSize(t.Sizes, sz) {
			vec = append(vec, sizeWeight)
		} else {
			vec = append(vec, 0)
		}
	}

	return vec
}

func containsSize(sizes []int, size int) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
