package server

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/draftsim/internal/booster"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/playtest"
	"github.com/lox/draftsim/internal/storage"
)

// Config holds what every session on the server shares
type Config struct {
	// Seed fixes session randomness: the nth session on a server uses
	// Seed+n. Zero seeds each session from the clock.
	Seed int64

	// PickTimer is the time allowed for the first pick of a round. Zero
	// disables auto-picking.
	PickTimer time.Duration

	SealedPacks     int
	Rates           *booster.Rates
	DraftOptions    []draft.Option
	PlaytestOptions []playtest.Option

	// SavedPools persists finished pools. Nil disables saving.
	SavedPools *storage.SavedPools

	Clock quartz.Clock
}

// Option configures the server
type Option func(*Config)

// sessionSeed returns the seed for the nth session, or zero when sessions
// are clock-seeded.
func (c *Config) sessionSeed(n int64) int64 {
	if c.Seed == 0 {
		return 0
	}
	return c.Seed + n
}

// WithSeed fixes the randomness of every session
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithPickTimer enables the pick timer with the given first-pick time
func WithPickTimer(d time.Duration) Option {
	return func(c *Config) { c.PickTimer = d }
}

// WithSealedPacks sets how many packs open_pack opens
func WithSealedPacks(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.SealedPacks = n
		}
	}
}

// WithRates sets the booster rates for drafts and sealed pools
func WithRates(r booster.Rates) Option {
	return func(c *Config) {
		c.Rates = &r
		c.DraftOptions = append(c.DraftOptions, draft.WithRates(r))
	}
}

// WithDraftOptions appends options applied to every draft
func WithDraftOptions(opts ...draft.Option) Option {
	return func(c *Config) { c.DraftOptions = append(c.DraftOptions, opts...) }
}

// WithPlaytestOptions appends options applied to every playtest engine
func WithPlaytestOptions(opts ...playtest.Option) Option {
	return func(c *Config) { c.PlaytestOptions = append(c.PlaytestOptions, opts...) }
}

// WithSavedPools persists finished pools to the given store
func WithSavedPools(p *storage.SavedPools) Option {
	return func(c *Config) { c.SavedPools = p }
}

// WithClock sets the clock used for timers and timestamps
func WithClock(clock quartz.Clock) Option {
	return func(c *Config) { c.Clock = clock }
}

func newConfig(opts []Option) *Config {
	c := &Config{
		SealedPacks: booster.DefaultSealedPacks,
		Clock:       quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
