package server

import "time"

const (
	// pickTimeStep is taken off the base time for every pick after the first
	pickTimeStep = 5 * time.Second

	// minPickTime is the floor for late picks in a round
	minPickTime = 3 * time.Second
)

// PickTime returns the time allowed for a 1-based pick number given the
// base time of the first pick. A zero base disables the timer.
func PickTime(base time.Duration, pick int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base - time.Duration(pick-1)*pickTimeStep
	return max(d, minPickTime)
}
