// Package randutil centralises how draftsim obtains randomness so that packs,
// bot jitter and shuffles can all be replayed from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the randomness the draft core consumes. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the seed so that every call site replays
// the same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed, or a clock-derived seed when seed is zero.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// FromSeed returns New(seed), or a time-seeded generator when seed is zero.
func FromSeed(seed int64) *rand.Rand {
	return New(ResolveSeed(seed))
}

// Shuffle permutes s in place with a Fisher-Yates shuffle.
func Shuffle[T any](rng Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Sample returns up to n elements of s chosen without replacement. s is not
// modified. Asking for more elements than s holds returns all of them in a
// random order.
func Sample[T any](rng Source, s []T, n int) []T {
	if n <= 0 || len(s) == 0 {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	if n > len(c) {
		n = len(c)
	}
	// Partial Fisher-Yates: only the first n positions need settling.
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(c)-i)
		c[i], c[j] = c[j], c[i]
	}
	return c[:n]
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
