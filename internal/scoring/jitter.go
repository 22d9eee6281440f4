package scoring

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// MaxJitter bounds the perturbation added to every composite score.
const MaxJitter = 0.15

// Jitter supplies the small cosmetic perturbation added to a score. It is kept
// as its own labelled term in the breakdown and carries no ranking signal.
type Jitter interface {
	For(verbal string) float64
}

// NoJitter always returns 0.
type NoJitter struct{}

// For implements Jitter.
func (NoJitter) For(string) float64 { return 0 }

// SeededJitter derives the perturbation from a seed and the line itself, so a
// pinned seed gives the same value for the same line regardless of call order.
type SeededJitter struct {
	seed string
}

// NewSeededJitter creates a Jitter pinned to seed.
func NewSeededJitter(seed uint64) *SeededJitter {
	return &SeededJitter{seed: strconv.FormatUint(seed, 10)}
}

// NewRandomJitter creates a Jitter seeded from the clock.
func NewRandomJitter() *SeededJitter {
	return NewSeededJitter(uint64(time.Now().UnixNano()))
}

// For implements Jitter. The result is in [-MaxJitter, MaxJitter].
func (j *SeededJitter) For(verbal string) float64 {
	h := xxhash.Sum64String(j.seed + "\x00" + verbal)
	unit := float64(h>>11) / float64(1<<53) // [0, 1)
	return (unit*2 - 1) * MaxJitter
}
