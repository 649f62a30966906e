package core

import (
	"math"
	"math/rand/v2"
)

// SeedSequence derives a deterministic stream of scene seeds from a base
// seed, so a session reseeded N times is reproducible from its flags.
type SeedSequence struct {
	r *rand.Rand
}

// NewSeedSequence creates a sequence rooted at seed.
func NewSeedSequence(seed int64) *SeedSequence {
	return &SeedSequence{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Next returns the next seed. Seeds are always positive; zero is reserved
// by scenes to mean "keep the configured seed".
func (s *SeedSequence) Next() int64 {
	return s.r.Int64N(math.MaxInt64-1) + 1
}
