// Package booster builds randomized packs from a card catalog following
// fixed rarity slots.
package booster

import (
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/randutil"
)

// Slot sizes for a standard pack.
const (
	LandSlots     = 1
	CommonSlots   = 7
	UncommonSlots = 3
)

// DefaultSealedPacks is the number of packs in a sealed pool.
const DefaultSealedPacks = 6

// Rates holds the rarity rolls for the marquee and wildcard slots. The
// wildcard thresholds are cumulative: a roll below WildcardMythic yields a
// Mythic, below WildcardRare a Rare, below WildcardUncommon an Uncommon and
// anything else a Common.
type Rates struct {
	MarqueeMythic    float64
	WildcardMythic   float64
	WildcardRare     float64
	WildcardUncommon float64
}

// DefaultRates returns the standard slot odds.
func DefaultRates() Rates {
	return Rates{
		MarqueeMythic:    0.13,
		WildcardMythic:   0.05,
		WildcardRare:     0.15,
		WildcardUncommon: 0.40,
	}
}

// wildcardLadder is ordered from rarest to most common. A missing bucket falls
// down the ladder first.
var wildcardLadder = []card.Rarity{card.Mythic, card.Rare, card.Uncommon, card.Common}

// Generator opens packs from a fixed set of buckets. It never fails: empty
// buckets simply leave their slots unfilled.
type Generator struct {
	buckets map[card.Rarity][]card.Card
	rng     randutil.Source
	rates   Rates
}

// Option configures a Generator
type Option func(*Generator)

// WithRates overrides the marquee and wildcard odds
func WithRates(r Rates) Option {
	return func(g *Generator) { g.rates = r }
}

// New partitions the front faces of cards into rarity buckets. Back faces are
// dropped.
func New(cards []card.Card, rng randutil.Source, opts ...Option) *Generator {
	g := &Generator{
		buckets: make(map[card.Rarity][]card.Card, len(card.Rarities)),
		rng:     rng,
		rates:   DefaultRates(),
	}
	for _, c := range cards {
		if c.IsBackFace {
			continue
		}
		g.buckets[c.Rarity] = append(g.buckets[c.Rarity], c)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BucketSize returns how many front faces of the rarity the generator holds.
func (g *Generator) BucketSize(r card.Rarity) int {
	return len(g.buckets[r])
}

// Pack opens one pack. Slot order is land, commons, uncommons, marquee,
// wildcard. Each slot samples its full bucket, so a card may repeat across
// slots but never within one.
func (g *Generator) Pack() []card.Card {
	pack := make([]card.Card, 0, LandSlots+CommonSlots+UncommonSlots+2)
	pack = append(pack, g.draw(card.Land, LandSlots)...)
	pack = append(pack, g.draw(card.Common, CommonSlots)...)
	pack = append(pack, g.draw(card.Uncommon, UncommonSlots)...)

	if r, ok := g.marquee(); ok {
		pack = append(pack, g.draw(r, 1)...)
	}
	if r, ok := g.wildcard(); ok {
		pack = append(pack, g.draw(r, 1)...)
	}
	return pack
}

// Packs opens n packs.
func (g *Generator) Packs(n int) [][]card.Card {
	packs := make([][]card.Card, n)
	for i := range packs {
		packs[i] = g.Pack()
	}
	return packs
}

// Sealed opens n packs and returns their cards as one pool.
func (g *Generator) Sealed(n int) []card.Card {
	var pool []card.Card
	for i := 0; i < n; i++ {
		pool = append(pool, g.Pack()...)
	}
	return pool
}

func (g *Generator) draw(r card.Rarity, n int) []card.Card {
	return randutil.Sample(g.rng, g.buckets[r], n)
}

func (g *Generator) marquee() (card.Rarity, bool) {
	want, other := card.Rare, card.Mythic
	if g.rng.Float64() < g.rates.MarqueeMythic {
		want, other = card.Mythic, card.Rare
	}
	switch {
	case len(g.buckets[want]) > 0:
		return want, true
	case len(g.buckets[other]) > 0:
		return other, true
	default:
		return 0, false
	}
}

func (g *Generator) wildcard() (card.Rarity, bool) {
	roll := g.rng.Float64()
	start := len(wildcardLadder) - 1
	switch {
	case roll < g.rates.WildcardMythic:
		start = 0
	case roll < g.rates.WildcardRare:
		start = 1
	case roll < g.rates.WildcardUncommon:
		start = 2
	}
	for i := start; i < len(wildcardLadder); i++ {
		if len(g.buckets[wildcardLadder[i]]) > 0 {
			return wildcardLadder[i], true
		}
	}
	for i := start - 1; i >= 0; i-- {
		if len(g.buckets[wildcardLadder[i]]) > 0 {
			return wildcardLadder[i], true
		}
	}
	return 0, false
}

// SortByRarity returns a copy of the pack with rarer cards first.
func SortByRarity(pack []card.Card) []card.Card {
	return card.SortByRarity(pack)
}
