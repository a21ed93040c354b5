package weighted

// DefaultAlphabet is used by RandomString when no alphabet is given.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns length bytes drawn uniformly from alphabet. An empty
// alphabet means DefaultAlphabet. Non-positive lengths give "".
func (s *Sampler) RandomString(length int, alphabet string) string {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if length <= 0 {
		return ""
	}

	n := float64(len(alphabet))
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[int(s.Float64n(n))]
	}
	return string(out)
}
