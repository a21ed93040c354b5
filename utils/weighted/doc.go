// Package weighted implements weighted random selection backed by a
// cryptographically secure random source.
//
// Two samplers are provided. SampleLinear walks the weights in order and is
// the better choice for small inputs. SampleBinarySearch builds the cumulative
// weights and locates the draw with LowerBound in O(log n), which pays off
// once there are thousands of items.
//
// Basic Usage:
//
//	s := weighted.NewSampler()
//	name, ok := weighted.SampleLinear(s, []string{"a", "b"}, []int{1, 3})
//	if !ok {
//	    // empty input, nothing to select
//	}
//
// Edge cases:
//
// Empty input yields no selection rather than an error. Items whose weight is
// zero (or negative, which is treated as zero) are never chosen. When every
// weight is zero the two samplers differ: SampleLinear falls back to the last
// item while SampleBinarySearch reports no selection. Each follows its own
// algorithm's natural fallback.
//
// Concurrency:
//
// A Sampler holds no mutable state of its own and the default source reads
// from crypto/rand, so one Sampler may be shared by any number of goroutines.
// Custom sources passed to NewSamplerWithSource must give the same guarantee.
package weighted
