package weighted

import (
	"crypto/rand"
	"encoding/binary"
	"math"
)

// Source produces uniformly distributed values in [0, 1).
// Implementations must be safe for concurrent use.
type Source interface {
	Float64() float64
}

// secureSource draws from crypto/rand, which is seeded by the operating system
// and safe for concurrent use.
type secureSource struct{}

var _ Source = secureSource{}

// Float64 builds a value from 53 random bits, the full precision of a float64
// mantissa, so every representable step in [0, 1) is equally likely.
func (secureSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("weighted: crypto/rand unavailable: " + err.Error())
	}
	return float64(binary.LittleEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// SecureSource returns the crypto/rand backed Source used by NewSampler.
func SecureSource() Source {
	return secureSource{}
}

// float64n scales a [0, 1) draw onto [0, upper). Rounding in the
// multiplication can land exactly on upper, so the result is pulled back
// below it to keep the interval half-open.
func float64n(src Source, upper float64) float64 {
	if !(upper > 0) {
		return 0
	}
	r := src.Float64() * upper
	if r >= upper {
		r = math.Nextafter(upper, 0)
	}
	return r
}
