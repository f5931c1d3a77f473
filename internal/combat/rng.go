package combat

import "math/rand"

// Roll wraps a seeded random source so an encounter replays exactly from its
// seed. The Resolver owns one; nothing in this package touches the global
// rand state.
type Roll struct {
	seed int64
	rng  *rand.Rand
}

func NewRoll(seed int64) *Roll {
	return &Roll{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (r *Roll) Seed() int64 { return r.seed }

// Hit performs a single probabilistic trial at the given chance (0..1).
func (r *Roll) Hit(chance float64) bool {
	return r.rng.Float64() < chance
}

// Range returns a uniform value in [lo, hi).
func (r *Roll) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// IntN returns a uniform int in [0, n).
func (r *Roll) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// D20 rolls a twenty-sided die.
func (r *Roll) D20() int { return 1 + r.rng.Intn(20) }

// Initiative rolls base + d20.
func (r *Roll) Initiative(base int) int { return base + r.D20() }

// Weighted picks an index by relative weight. Zero or negative weights are
// skipped; returns -1 if nothing is selectable.
func (r *Roll) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	pick := r.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		pick -= w
		if pick < 0 {
			return i
		}
	}
	return len(weights) - 1
}
