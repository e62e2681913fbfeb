package placement

import (
	"math/rand"
	"time"
)

// Sampler is the random source candidate placements are drawn from.
type Sampler interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Choose returns a uniformly chosen element of set.
	Choose(set []int) int
}

// RandSampler draws from a math/rand source.
type RandSampler struct {
	rnd *rand.Rand
}

// NewRandSampler creates a RandSampler. A zero seed seeds from the clock.
func NewRandSampler(seed int64) *RandSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSampler{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform value in [0, 1).
func (s *RandSampler) Float64() float64 {
	return s.rnd.Float64()
}

// Choose returns a uniformly chosen element of set.
func (s *RandSampler) Choose(set []int) int {
	return set[s.rnd.Intn(len(set))]
}
