// Package prng provides the single seedable pseudo-random source the
// simulator's randomness routes through: initial process work, the I/O
// trigger and service time, and the lottery scheduler's ticket draw
// (spec.md §5). Nothing in the simulator calls math/rand's package-level
// functions directly; everything takes a *Source so runs are reproducible
// and tests can fix a seed.
package prng

import "math/rand/v2"

// Source wraps a seeded PCG generator. The zero value is not usable; build
// one with New.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed. The same seed
// always produces the same sequence of draws across runs and platforms.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntRange returns a uniform integer in [lo, hi], inclusive on both ends.
// Panics if hi < lo, a caller bug.
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic("prng: IntRange: hi < lo")
	}
	if hi == lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Bool returns true with probability p, clamped to [0, 1].
func (s *Source) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

// UintN returns a uniform integer in [0, n), matching rand.Rand.IntN's
// contract. Panics if n <= 0.
func (s *Source) UintN(n int) int {
	return s.r.IntN(n)
}
