package breaker

import "math"

// SimpleRNG is a tiny deterministic generator so that a seed fully
// determines a session (replays depend on it).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	// Top 53 bits; the low bits of an LCG are weak.
	return float64(r.Next()>>11) / float64(1<<53)
}

// IntBetween returns a uniformly random integer in [lo, hi] inclusive, as
// a float64 so it can be assigned to a velocity directly. Fractional
// bounds are narrowed to the integers they contain; a range holding none
// returns lo rounded up.
func (r *SimpleRNG) IntBetween(lo, hi float64) float64 {
	lo, hi = math.Ceil(lo), math.Floor(hi)
	if hi < lo {
		return lo
	}
	return math.Floor(r.Float64()*(hi-lo+1)) + lo
}
