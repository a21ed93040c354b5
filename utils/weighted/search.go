package weighted

import "cmp"

// NotFound is returned by LowerBound when target exceeds every element.
const NotFound = -1

// LowerBound returns the smallest index i such that sorted[i] >= target, or
// NotFound if there is none. sorted must be non-decreasing; the result is
// unspecified otherwise. Ties resolve to the leftmost qualifying index.
func LowerBound[V cmp.Ordered](sorted []V, target V) int {
	low, high := 0, len(sorted)-1
	index := NotFound

	for low <= high {
		mid := low + (high-low)/2
		if sorted[mid] >= target {
			index = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	return index
}
