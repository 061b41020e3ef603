package maze

import (
	"math/rand"
	"time"
)

// Rand is the random source the carving walk draws from.
// *rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	// Float32 returns a value in [0.0, 1.0).
	Float32() float32
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRand returns a seeded source and the seed it was built with.
// A zero seed is replaced with a time based one so the caller can still
// replay the level from the returned value.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
