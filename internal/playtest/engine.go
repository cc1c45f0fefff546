// Package playtest simulates drawing from a built deck: opening hands,
// London mulligans, the draw step and moving cards between zones.
package playtest

import (
	"fmt"
	"slices"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
	"github.com/lox/draftsim/internal/randutil"
)

// Defaults for the opening hand.
const (
	DefaultHandSize     = 7
	DefaultMaxMulligans = 6
)

// Zone names a card location
type Zone int

const (
	Library Zone = iota
	Hand
	Battlefield
	Graveyard
)

func (z Zone) String() string {
	switch z {
	case Library:
		return "library"
	case Hand:
		return "hand"
	case Battlefield:
		return "battlefield"
	case Graveyard:
		return "graveyard"
	default:
		return "unknown"
	}
}

// Instance is one physical copy of a card in the playtest.
type Instance struct {
	InstanceID string    `json:"instanceId"`
	Card       card.Card `json:"card"`
}

// Option configures an Engine
type Option func(*Engine)

// WithHandSize sets the opening hand size
func WithHandSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.handSize = n
		}
	}
}

// WithMaxMulligans sets how many mulligans are allowed
func WithMaxMulligans(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxMulligans = n
		}
	}
}

// Engine holds the zones of one practice game. Every operation that can be
// refused reports whether it changed anything.
type Engine struct {
	rng          randutil.Source
	handSize     int
	maxMulligans int

	original    []Instance
	library     []Instance
	hand        []Instance
	battlefield []Instance
	graveyard   []Instance

	mulligans int
	kept      bool
	toBottom  int
	active    bool
}

// New creates an inactive engine.
func New(rng randutil.Source, opts ...Option) *Engine {
	e := &Engine{
		rng:          rng,
		handSize:     DefaultHandSize,
		maxMulligans: DefaultMaxMulligans,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start builds the library from deck plus the basic land counts, shuffles it
// and draws an opening hand. Deck cards are tagged card-<i>, basics
// basic-<Land>-<i>.
func (e *Engine) Start(deck []card.Card, basicLands map[deckbuild.LandName]int) {
	e.original = make([]Instance, 0, len(deck))
	for i, c := range deck {
		e.original = append(e.original, Instance{InstanceID: fmt.Sprintf("card-%d", i), Card: c})
	}
	for _, name := range deckbuild.BasicLandNames {
		land, _ := deckbuild.BasicLandCard(name)
		for i := 0; i < basicLands[name]; i++ {
			e.original = append(e.original, Instance{InstanceID: fmt.Sprintf("basic-%s-%d", name, i), Card: land})
		}
	}
	e.active = true
	e.Reset()
}

// Reset reshuffles the full deck and draws a new opening hand, discarding all
// zone and mulligan state.
func (e *Engine) Reset() {
	e.mulligans = 0
	e.kept = false
	e.toBottom = 0
	e.hand = nil
	e.battlefield = nil
	e.graveyard = nil
	e.library = slices.Clone(e.original)
	randutil.Shuffle(e.rng, e.library)
	e.draw(e.handSize)
}

// End clears the engine.
func (e *Engine) End() {
	*e = Engine{rng: e.rng, handSize: e.handSize, maxMulligans: e.maxMulligans}
}

func (e *Engine) draw(n int) {
	n = min(n, len(e.library))
	e.hand = append(e.hand, e.library[:n]...)
	e.library = slices.Delete(e.library, 0, n)
}

// Mulligan shuffles the hand back and draws a fresh one. It is refused once
// the hand is kept or the mulligan limit is reached.
func (e *Engine) Mulligan() bool {
	if !e.active || e.kept || e.mulligans >= e.maxMulligans {
		return false
	}
	e.mulligans++
	e.library = append(e.library, e.hand...)
	e.hand = nil
	randutil.Shuffle(e.rng, e.library)
	e.draw(e.handSize)
	return true
}

// KeepHand keeps the current hand. One card per mulligan must then go to
// the bottom of the library.
func (e *Engine) KeepHand() bool {
	if !e.active || e.kept {
		return false
	}
	e.kept = true
	e.toBottom = e.mulligans
	return true
}

// PutOnBottom moves a hand card to the bottom of the library while cards are
// still owed.
func (e *Engine) PutOnBottom(i int) bool {
	if e.toBottom <= 0 || i < 0 || i >= len(e.hand) {
		return false
	}
	e.library = append(e.library, e.hand[i])
	e.hand = slices.Delete(e.hand, i, i+1)
	e.toBottom--
	return true
}

// DrawStep draws one card. An empty library is not an error.
func (e *Engine) DrawStep() bool {
	if len(e.library) == 0 {
		return false
	}
	e.draw(1)
	return true
}

func move(from, to *[]Instance, i int) bool {
	if i < 0 || i >= len(*from) {
		return false
	}
	*to = append(*to, (*from)[i])
	*from = slices.Delete(*from, i, i+1)
	return true
}

// PlayCard moves a hand card onto the battlefield.
func (e *Engine) PlayCard(i int) bool { return move(&e.hand, &e.battlefield, i) }

// DestroyCard moves a battlefield card to the graveyard.
func (e *Engine) DestroyCard(i int) bool { return move(&e.battlefield, &e.graveyard, i) }

// DiscardFromHand moves a hand card to the graveyard.
func (e *Engine) DiscardFromHand(i int) bool { return move(&e.hand, &e.graveyard, i) }

// BounceToHand returns a battlefield card to hand.
func (e *Engine) BounceToHand(i int) bool { return move(&e.battlefield, &e.hand, i) }

// ReturnFromGraveyard returns a graveyard card to hand.
func (e *Engine) ReturnFromGraveyard(i int) bool { return move(&e.graveyard, &e.hand, i) }

func (e *Engine) Active() bool                { return e.active }
func (e *Engine) MulliganCount() int          { return e.mulligans }
func (e *Engine) HasKept() bool               { return e.kept }
func (e *Engine) CardsToBottomRemaining() int { return e.toBottom }

// NeedsToBottom reports whether a kept hand still owes bottomed cards.
func (e *Engine) NeedsToBottom() bool { return e.kept && e.toBottom > 0 }

func (e *Engine) LibrarySize() int     { return len(e.library) }
func (e *Engine) HandSize() int        { return len(e.hand) }
func (e *Engine) BattlefieldSize() int { return len(e.battlefield) }
func (e *Engine) GraveyardSize() int   { return len(e.graveyard) }

// Total is the number of instances across all zones.
func (e *Engine) Total() int {
	return len(e.library) + len(e.hand) + len(e.battlefield) + len(e.graveyard)
}

// Zone returns a copy of the named zone, top or first card first.
func (e *Engine) Zone(z Zone) []Instance {
	switch z {
	case Library:
		return slices.Clone(e.library)
	case Hand:
		return slices.Clone(e.hand)
	case Battlefield:
		return slices.Clone(e.battlefield)
	case Graveyard:
		return slices.Clone(e.graveyard)
	default:
		return nil
	}
}
