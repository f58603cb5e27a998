package scramble

import "math/rand/v2"

// Permutation returns a uniformly random ordering of 0..n-1.
func Permutation(rng *rand.Rand, n int) []int {
	return rng.Perm(n)
}

// Shuffled returns a shuffled copy of s.
func Shuffled[T any](rng *rand.Rand, s []T) []T {
	res := append([]T(nil), s...)
	rng.Shuffle(len(res), func(i, j int) {
		res[i], res[j] = res[j], res[i]
	})
	return res
}

// Cycle picks the idx-th element, wrapping around the end of shuffled.
func Cycle[T any](shuffled []T, idx int) T {
	return shuffled[idx%len(shuffled)]
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
