// Package bot implements the heuristic drafter that fills the computer seats.
package bot

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/randutil"
)

// Scoring constants.
const (
	MulticolorPenalty = 0.5
	EarlyPoolSize     = 5
	MatchBonus        = 1.5
	CommitmentCap     = 2.0
	Jitter            = 0.1
)

var rarityScore = map[card.Rarity]float64{
	card.Mythic:   4.5,
	card.Rare:     4.0,
	card.Uncommon: 2.5,
	card.Common:   1.0,
	card.Land:     0.5,
}

// Bot is a heuristic drafter that drifts towards two colours as its pool
// grows. A Bot is owned by one draft session and is not safe for concurrent
// use.
type Bot struct {
	id        int
	pool      []card.Card
	counts    [5]int
	archetype []card.Color
	rng       randutil.Source
	logger    *log.Logger
}

// New creates a bot with an empty pool.
func New(id int, rng randutil.Source, logger *log.Logger) *Bot {
	return &Bot{
		id:     id,
		rng:    rng,
		logger: logger.WithPrefix("bot").With("seat", id),
	}
}

// ID returns the bot's seat id
func (b *Bot) ID() int { return b.id }

// Pool returns the cards picked so far, in pick order.
func (b *Bot) Pool() []card.Card { return b.pool }

// Archetype returns the bot's two leading colours. It is empty until the
// first pick.
func (b *Bot) Archetype() []card.Color { return slices.Clone(b.archetype) }

// ColorCounts returns how many picked cards carry each colour.
func (b *Bot) ColorCounts() map[card.Color]int {
	m := make(map[card.Color]int, len(b.counts))
	for i, n := range b.counts {
		m[card.Color(i)] = n
	}
	return m
}

// Pick chooses a card from the pack, commits it to the pool and returns its
// index. It returns -1 for an empty pack. The pack itself is not modified.
func (b *Bot) Pick(pack []card.Card) int {
	best := b.Choose(pack)
	if best < 0 {
		return -1
	}
	b.Commit(pack[best])
	return best
}

// Choose returns the index Pick would take without committing the card.
func (b *Bot) Choose(pack []card.Card) int {
	best, bestScore := -1, -1.0
	for i, c := range pack {
		score := b.Evaluate(c) + b.rng.Float64()*Jitter
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return -1
	}

	b.logger.Debug("Bot pick",
		"card", pack[best].Name,
		"rarity", pack[best].Rarity.String(),
		"score", bestScore,
		"packSize", len(pack),
		"poolSize", len(b.pool),
		"archetype", colorString(b.archetype))
	return best
}

// Evaluate scores a card against the bot's current state, without jitter.
func (b *Bot) Evaluate(c card.Card) float64 {
	score, ok := rarityScore[c.Rarity]
	if !ok {
		score = 1.0
	}

	colors := cardColors(c)
	if len(colors) > 1 && len(b.pool) < EarlyPoolSize {
		score -= MulticolorPenalty
	}

	if len(b.pool) > 0 {
		matches := 0
		for _, col := range colors {
			if slices.Contains(b.archetype, col) {
				matches++
			}
		}
		if matches > 0 {
			commitment := min(float64(len(b.pool))/10, CommitmentCap)
			score += float64(matches) * MatchBonus * commitment
		}
	}
	return score
}

// Commit adds a card to the pool and recomputes the archetype.
func (b *Bot) Commit(c card.Card) {
	b.pool = append(b.pool, c)
	for _, col := range cardColors(c) {
		b.counts[col]++
	}
	b.archetype = topTwo(b.counts)
}

// OnArchetypeShare returns the fraction of the pool whose colours all sit
// inside the archetype. Colourless cards never count as on-archetype.
func (b *Bot) OnArchetypeShare() float64 {
	if len(b.pool) == 0 {
		return 0
	}
	on := 0
	for _, c := range b.pool {
		if FitsPair(c, b.archetype) {
			on++
		}
	}
	return float64(on) / float64(len(b.pool))
}

// FitsPair reports whether a coloured card's colours are all in pair.
func FitsPair(c card.Card, pair []card.Color) bool {
	colors := cardColors(c)
	if len(colors) == 0 {
		return false
	}
	for _, col := range colors {
		if !slices.Contains(pair, col) {
			return false
		}
	}
	return true
}

func cardColors(c card.Card) []card.Color {
	switch c.Class() {
	case card.ClassArtifact, card.ClassLand:
		return nil
	default:
		return c.Colors()
	}
}

// topTwo picks the two highest counts. Equal counts keep WUBRG order.
func topTwo(counts [5]int) []card.Color {
	order := slices.Clone(card.AllColors)
	slices.SortStableFunc(order, func(a, b card.Color) int {
		return counts[b] - counts[a]
	})
	return order[:2]
}

func colorString(cols []card.Color) string {
	s := ""
	for _, c := range cols {
		s += c.String()
	}
	return s
}
