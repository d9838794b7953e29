package pkg

import (
	"time"

	"golang.org/x/exp/rand"
)

// Random - source of every random decision in a game: markers, first mover, bot choices and ids.
type Random interface {
	Intn(n int) int
}

// NewRandom - returns a random source that is safe for concurrent use.
// Zero seed means seeding from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	src := &rand.LockedSource{}
	src.Seed(seed)

	return rand.New(src)
}
