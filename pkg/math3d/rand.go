package math3d

import "math/rand/v2"

// Rand is an explicit random stream. Every sampling routine in lumen
// takes one, so a render seeded per row or per worker is reproducible and
// goroutines never share generator state.
//
// A Rand is not safe for concurrent use.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a PCG stream. Distinct (seed, stream) pairs give
// independent sequences.
func NewRand(seed, stream uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, stream))}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Sign returns -1 or +1 with equal probability.
func (r *Rand) Sign() float64 {
	if r.r.Uint64()&1 == 0 {
		return -1
	}
	return 1
}

// Uint64 returns a uniform 64-bit value, used to derive child seeds.
func (r *Rand) Uint64() uint64 {
	return r.r.Uint64()
}
