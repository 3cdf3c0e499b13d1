package recommendation

import "solestride/domain"

// buildProfile aggregates a user's honored line-item snapshots into a
// pseudo-product: the mode of each categorical attribute, and the single
// most common size across all line items. Ties resolve to the value
// encountered first. Returns false when there is no history at all; the
// caller must short-circuit to an empty recommendation list instead of
// scoring a degenerate profile.
func buildProfile(items []domain.OrderItem) (traits, bool) {
	if len(items) == 0 {
		return traits{}, false
	}

	itemBrands := make([]string, 0, len(items))
	itemTypes := make([]string, 0, len(items))
	itemGenders := make([]string, 0, len(items))
	itemSizes := make([]int, 0, len(items))

	for _, it := range items {
		itemBrands = append(itemBrands, it.Brand)
		itemTypes = append(itemTypes, it.ShoeType)
		itemGenders = append(itemGenders, it.Gender)
		if it.SelectedSize > 0 {
			itemSizes = append(itemSizes, it.SelectedSize)
		}
	}

	profile := traits{
		Brand:    mostFrequent(itemBrands),
		ShoeType: mostFrequent(itemTypes),
		Gender:   mostFrequent(itemGenders),
	}

	if size := mostFrequentSize(itemSizes); size > 0 {
		profile.Sizes = []int{size}
	}

	return profile, true
}

func mostFrequent(values []string) string {
	freq := make(map[string]int, len(values))
	best := ""
	bestCount := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		freq[v]++
		if freq[v] > bestCount {
			bestCount = freq[v]
			best = v
		}
	}

	return best
}

func mostFrequentSize(values []int) int {
	freq := make(map[int]int, len(values))
	best := 0
	bestCount := 0
	for _, v := range values {
		freq[v]++
		if freq[v] > bestCount {
			bestCount = freq[v]
			best = v
		}
	}

	return best
}
