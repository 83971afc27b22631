package dataset

import "math/rand/v2"

// SampleRows returns size row indices drawn without replacement from [0, n)
// as the prefix of a PCG-seeded permutation. The same (n, size, seed) always
// yields the same indices. size is clamped to [0, n].
func SampleRows(n, size int, seed uint64) []int {
	if size > n {
		size = n
	}
	if size <= 0 {
		return []int{}
	}
	r := rand.New(rand.NewPCG(seed, seed))
	perm := r.Perm(n)
	return perm[:size]
}

// AllRows returns 0..n-1.
func AllRows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
