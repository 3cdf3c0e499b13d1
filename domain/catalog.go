package domain

// Fixed catalog attribute domains. The recommendation encoder derives its
// vector layout from these slices, so their order must not change.
var (
	Brands    = []string{"Adidas", "Nike", "New Balance", "Puma", "Asics"}
	ShoeTypes = []string{"Running", "Lifestyle", "Football", "Badminton"}
	Genders   = []string{"men", "women", "unisex"}
	Sizes     = []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
)

func IsValidBrand(brand string) bool {
	return containsString(Brands, brand)
}

func IsValidShoeType(shoeType string) bool {
	return containsString(ShoeTypes, shoeType)
}

func IsValidGender(gender string) bool {
	return containsString(Genders, gender)
}

func IsValidSize(size int) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
