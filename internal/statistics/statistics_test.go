package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(BotResult{Share: 0.75, Seed: 7, Seat: 3, Picks: 39, Archetype: "WU"})

	if stats.Samples != 1 {
		t.Errorf("Expected 1 sample, got %d", stats.Samples)
	}
	if stats.Mean() != 0.75 {
		t.Errorf("Expected mean of 0.75, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Archetypes["WU"] != 1 {
		t.Errorf("Expected WU to be counted once, got %d", stats.Archetypes["WU"])
	}
	if stats.SeatMean(3) != 0.75 {
		t.Errorf("Expected seat 3 mean of 0.75, got %f", stats.SeatMean(3))
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	values := []float64{0.2, 0.4, 0.6, 0.8}
	for i, v := range values {
		stats.Add(BotResult{Share: v, Seed: 1, Seat: i + 1})
	}

	if math.Abs(stats.Mean()-0.5) > 1e-9 {
		t.Errorf("Expected mean of 0.5, got %f", stats.Mean())
	}
	// sample variance of 0.2,0.4,0.6,0.8 is 0.2/3
	if math.Abs(stats.Variance()-0.2/3) > 1e-9 {
		t.Errorf("Expected variance of %f, got %f", 0.2/3, stats.Variance())
	}
	if math.Abs(stats.Median()-0.5) > 1e-9 {
		t.Errorf("Expected median of 0.5, got %f", stats.Median())
	}
	if len(stats.Drafts) != 1 {
		t.Errorf("Expected 1 distinct draft, got %d", len(stats.Drafts))
	}
	if got := stats.SortedSeats(); len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Errorf("Expected seats 1..4, got %v", got)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i <= 10; i++ {
		stats.Add(BotResult{Share: float64(i) / 10})
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		if got := stats.Percentile(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i < 100; i++ {
		stats.Add(BotResult{Share: float64(i%2) * 0.5})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()
	if low >= mean || high <= mean {
		t.Errorf("Expected interval around mean %f, got [%f, %f]", mean, low, high)
	}
	if math.Abs((high-low)/2-1.96*stats.StdError()) > 1e-9 {
		t.Errorf("Expected margin of 1.96 standard errors")
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(BotResult{Share: 0.5, Seed: 1, Seat: 1, Archetype: "RG"})
	b := &Statistics{}
	b.Add(BotResult{Share: 1.0, Seed: 2, Seat: 1, Archetype: "RG"})
	b.Add(BotResult{Share: 0.0, Seed: 2, Seat: 2, Archetype: "WB"})

	a.Merge(b)
	a.Merge(nil)

	if a.Samples != 3 {
		t.Errorf("Expected 3 samples, got %d", a.Samples)
	}
	if a.Archetypes["RG"] != 2 {
		t.Errorf("Expected RG twice, got %d", a.Archetypes["RG"])
	}
	if a.SeatMean(1) != 0.75 {
		t.Errorf("Expected seat 1 mean of 0.75, got %f", a.SeatMean(1))
	}
	if len(a.Drafts) != 2 {
		t.Errorf("Expected 2 drafts, got %d", len(a.Drafts))
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected valid stats after merge, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats func() *Statistics
		want  string
	}{
		{"values mismatch", func() *Statistics {
			s := &Statistics{}
			s.Add(BotResult{Share: 0.5})
			s.Values = append(s.Values, 0.1)
			return s
		}, "values array length"},
		{"share out of range", func() *Statistics {
			s := &Statistics{}
			s.Add(BotResult{Share: 1.5})
			return s
		}, "out of range"},
		{"seat mismatch", func() *Statistics {
			s := &Statistics{}
			s.Add(BotResult{Share: 0.5, Seat: 1})
			s.Seats[2] = &SeatStats{Samples: 1}
			return s
		}, "seat samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats().Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
