package weighted

// Probability pairs an item with its selection chance in percent.
type Probability[T any] struct {
	Item    T       `json:"value"`
	Percent float64 `json:"calculate"`
}

// ComputeProbabilities maps each index to weights[i]/total*100. The map is
// empty when the total weight is zero or weights is empty.
func ComputeProbabilities[W Weight](weights []W) map[int]float64 {
	total := sum(weights)
	probabilities := make(map[int]float64, len(weights))
	if !(total > 0) {
		return probabilities
	}

	for i, w := range weights {
		probabilities[i] = clamp(w) / total * 100
	}
	return probabilities
}

// ComputeCombinedProbabilities is ComputeProbabilities with each percentage
// paired with its item. Mismatched lengths yield an empty map.
func ComputeCombinedProbabilities[T any, W Weight](items []T, weights []W) map[int]Probability[T] {
	if len(items) != len(weights) {
		return map[int]Probability[T]{}
	}

	percents := ComputeProbabilities(weights)
	combined := make(map[int]Probability[T], len(percents))
	for i, p := range percents {
		combined[i] = Probability[T]{Item: items[i], Percent: p}
	}
	return combined
}
