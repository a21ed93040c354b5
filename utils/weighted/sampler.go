package weighted

import (
	"math"
)

// Weight is any numeric type usable as a relative likelihood.
type Weight interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sampler draws weighted random selections from its Source.
// Construct it once and reuse it; see the package docs for concurrency.
type Sampler struct {
	src Source
}

// NewSampler creates a Sampler backed by crypto/rand.
func NewSampler() *Sampler {
	return &Sampler{src: secureSource{}}
}

// NewSamplerWithSource creates a Sampler drawing from src. A nil src falls
// back to the secure source.
func NewSamplerWithSource(src Source) *Sampler {
	if src == nil {
		src = secureSource{}
	}
	return &Sampler{src: src}
}

// Float64n returns a uniform value in [0, upper), or 0 when upper <= 0.
func (s *Sampler) Float64n(upper float64) float64 {
	return float64n(s.src, upper)
}

// SampleLinear selects one item with probability weights[i]/total by walking
// the weights in order. It returns false when there is nothing to select:
// empty input or mismatched lengths.
//
// If rounding drift exhausts the walk without a match, or every weight is
// zero, the last item is returned.
func SampleLinear[T any, W Weight](s *Sampler, items []T, weights []W) (T, bool) {
	var zero T
	if len(items) == 0 || len(items) != len(weights) {
		return zero, false
	}

	r := s.Float64n(sum(weights))
	for i, w := range weights {
		wf := clamp(w)
		if r < wf {
			return items[i], true
		}
		r -= wf
	}

	return items[len(items)-1], true
}

// SampleBinarySearch selects one item with probability weights[i]/total using
// the cumulative weights and LowerBound. It returns false for empty input,
// mismatched lengths, an all-zero total, or when drift leaves the draw past
// the final cumulative weight.
func SampleBinarySearch[T any, W Weight](s *Sampler, items []T, weights []W) (T, bool) {
	var zero T
	if len(items) == 0 || len(items) != len(weights) {
		return zero, false
	}

	cumulative := Cumulative(weights)
	total := cumulative[len(cumulative)-1]
	if !(total > 0) {
		return zero, false
	}

	r := s.Float64n(total)
	// Searching for the first cumulative weight strictly above r keeps
	// zero-weight items, whose cumulative value repeats their predecessor's,
	// out of reach even when r lands exactly on a boundary.
	idx := LowerBound(cumulative, math.Nextafter(r, math.Inf(1)))
	if idx == NotFound {
		return zero, false
	}

	return items[idx], true
}

// Cumulative returns the running sums of weights as float64, with negative
// weights counted as zero so the result is non-decreasing.
func Cumulative[W Weight](weights []W) []float64 {
	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += clamp(w)
		cumulative[i] = total
	}
	return cumulative
}

func sum[W Weight](weights []W) float64 {
	var total float64
	for _, w := range weights {
		total += clamp(w)
	}
	return total
}

// clamp converts w to float64, treating negative weights as zero.
func clamp[W Weight](w W) float64 {
	f := float64(w)
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return f
}
