package game

import (
	"math"
	"math/rand/v2"

	"github.com/kevinzwang/randy/internal/session"
)

// NewRand returns the session-private random source. A zero seed is allowed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw returns a uniformly distributed value in [r.Start, r.End].
func Draw(rng *rand.Rand, r Round) uint64 {
	span := r.End - r.Start
	if span == math.MaxUint64 {
		return rng.Uint64()
	}
	return r.Start + rng.Uint64N(span+1)
}

// Judge compares the guess against the drawn value.
func Judge(r Round, drawn uint64) session.Outcome {
	if r.Guess == drawn {
		return session.OutcomeCorrect
	}
	return session.OutcomeIncorrect
}
