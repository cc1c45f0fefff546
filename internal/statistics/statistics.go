package statistics

import (
	"fmt"
	"math"
	"sort"
)

// BotResult represents one bot's outcome in a single simulated draft
type BotResult struct {
	Share     float64 // Fraction of picks that fit the bot's final archetype
	Seed      int64   // RNG seed for the draft (for replay)
	Seat      int     // Seat the bot drafted from
	Picks     int     // Number of cards the bot took
	Archetype string  // Final archetype pair, e.g. "WU"
}

// SeatStats tracks statistics for a single seat
type SeatStats struct {
	Samples  int
	SumShare float64
}

// Statistics tracks the on-archetype share across simulated drafts
type Statistics struct {
	Samples   int
	SumShare  float64
	SumShare2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	Drafts     map[int64]bool // Distinct draft seeds observed
	Archetypes map[string]int // Final archetype frequency
	Seats      map[int]*SeatStats
}

// Mean returns the arithmetic mean share
func (s *Statistics) Mean() float64 {
	if s.Samples == 0 {
		return 0
	}
	return s.SumShare / float64(s.Samples)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Samples < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumShare2 - float64(s.Samples)*mean*mean) / float64(s.Samples-1)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Samples == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Samples))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new bot result into the statistics
func (s *Statistics) Add(result BotResult) {
	share := result.Share
	s.Samples++
	s.SumShare += share
	s.SumShare2 += share * share
	s.Values = append(s.Values, share)

	if s.Drafts == nil {
		s.Drafts = make(map[int64]bool)
	}
	s.Drafts[result.Seed] = true

	if result.Archetype != "" {
		if s.Archetypes == nil {
			s.Archetypes = make(map[string]int)
		}
		s.Archetypes[result.Archetype]++
	}

	if s.Seats == nil {
		s.Seats = make(map[int]*SeatStats)
	}
	seat, ok := s.Seats[result.Seat]
	if !ok {
		seat = &SeatStats{}
		s.Seats[result.Seat] = seat
	}
	seat.Samples++
	seat.SumShare += share
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Samples += other.Samples
	s.SumShare += other.SumShare
	s.SumShare2 += other.SumShare2
	s.Values = append(s.Values, other.Values...)

	if len(other.Drafts) > 0 && s.Drafts == nil {
		s.Drafts = make(map[int64]bool)
	}
	for seed := range other.Drafts {
		s.Drafts[seed] = true
	}
	if len(other.Archetypes) > 0 && s.Archetypes == nil {
		s.Archetypes = make(map[string]int)
	}
	for id, n := range other.Archetypes {
		s.Archetypes[id] += n
	}
	if len(other.Seats) > 0 && s.Seats == nil {
		s.Seats = make(map[int]*SeatStats)
	}
	for seat, st := range other.Seats {
		mine, ok := s.Seats[seat]
		if !ok {
			mine = &SeatStats{}
			s.Seats[seat] = mine
		}
		mine.Samples += st.Samples
		mine.SumShare += st.SumShare
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean share for a specific seat
func (s *Statistics) SeatMean(seat int) float64 {
	st, ok := s.Seats[seat]
	if !ok || st.Samples == 0 {
		return 0
	}
	return st.SumShare / float64(st.Samples)
}

// SortedSeats returns the seats seen, in ascending order
func (s *Statistics) SortedSeats() []int {
	seats := make([]int, 0, len(s.Seats))
	for seat := range s.Seats {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Samples <= 0 {
		return fmt.Errorf("invalid sample count: %d", s.Samples)
	}

	if len(s.Values) != s.Samples {
		return fmt.Errorf("values array length (%d) does not match sample count (%d)",
			len(s.Values), s.Samples)
	}

	for i, v := range s.Values {
		if v < 0 || v > 1 {
			return fmt.Errorf("share %d out of range: %f", i, v)
		}
	}

	totalSeat := 0
	for _, st := range s.Seats {
		totalSeat += st.Samples
	}
	if totalSeat != s.Samples {
		return fmt.Errorf("seat samples total (%d) does not match sample count (%d)",
			totalSeat, s.Samples)
	}

	return nil
}
