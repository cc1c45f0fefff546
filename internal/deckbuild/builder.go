// Package deckbuild splits a drafted or sealed pool into a main deck and a
// sideboard, and tracks the basic lands added on top.
package deckbuild

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lox/draftsim/internal/card"
)

// Mana value buckets for the deck view, in display order.
const (
	BucketFivePlus = "5+"
	BucketLands    = "Lands"
)

// Buckets lists the deck view buckets in display order.
var Buckets = []string{"0", "1", "2", "3", "4", BucketFivePlus, BucketLands}

// Group is a stack of same-named cards shown once with a count.
type Group struct {
	Card  card.Card
	Count int
	// IDs holds the card ids in the group, for pool groups.
	IDs []string
	// DeckIndexes holds the main deck positions in the group. Basic lands
	// have none.
	DeckIndexes []int
}

// State is a snapshot of a builder, suitable for persisting.
type State struct {
	Pool       []card.Card      `json:"pool"`
	Deck       []card.Card      `json:"deck"`
	BasicLands map[LandName]int `json:"basicLands"`
}

// Builder holds the partition of a pool into sideboard and main deck.
type Builder struct {
	pool  []card.Card
	deck  []card.Card
	lands map[LandName]int
}

// New creates a builder. pool must not contain the cards already in deck.
// Unknown land names in lands are dropped.
func New(pool, deck []card.Card, lands map[LandName]int) *Builder {
	b := &Builder{
		pool:  slices.Clone(pool),
		deck:  slices.Clone(deck),
		lands: make(map[LandName]int, len(BasicLandNames)),
	}
	for _, name := range BasicLandNames {
		if n := lands[name]; n > 0 {
			b.lands[name] = n
		} else {
			b.lands[name] = 0
		}
	}
	return b
}

// FromState restores a builder from a snapshot.
func FromState(s State) *Builder {
	return New(s.Pool, s.Deck, s.BasicLands)
}

// State returns a snapshot of the builder.
func (b *Builder) State() State {
	return State{Pool: b.Pool(), Deck: b.MainDeck(), BasicLands: b.BasicLands()}
}

// AddToDeck moves the first pool card with the id into the main deck.
func (b *Builder) AddToDeck(cardID string) bool {
	i := slices.IndexFunc(b.pool, func(c card.Card) bool { return c.ID == cardID })
	if i < 0 {
		return false
	}
	b.deck = append(b.deck, b.pool[i])
	b.pool = slices.Delete(b.pool, i, i+1)
	return true
}

// RemoveFromDeck moves the main deck card at index back to the pool.
func (b *Builder) RemoveFromDeck(index int) bool {
	if index < 0 || index >= len(b.deck) {
		return false
	}
	b.pool = append(b.pool, b.deck[index])
	b.deck = slices.Delete(b.deck, index, index+1)
	return true
}

// AddBasicLand adds one basic land.
func (b *Builder) AddBasicLand(name LandName) bool {
	if _, ok := b.lands[name]; !ok {
		return false
	}
	b.lands[name]++
	return true
}

// RemoveBasicLand removes one basic land. Counts never drop below zero.
func (b *Builder) RemoveBasicLand(name LandName) bool {
	if b.lands[name] <= 0 {
		return false
	}
	b.lands[name]--
	return true
}

// Pool returns the sideboard cards.
func (b *Builder) Pool() []card.Card { return slices.Clone(b.pool) }

// MainDeck returns the main deck cards, excluding basic lands.
func (b *Builder) MainDeck() []card.Card { return slices.Clone(b.deck) }

// BasicLands returns the basic land counts.
func (b *Builder) BasicLands() map[LandName]int {
	out := make(map[LandName]int, len(b.lands))
	for k, v := range b.lands {
		out[k] = v
	}
	return out
}

// TotalMainCount is the main deck size including basic lands.
func (b *Builder) TotalMainCount() int {
	n := len(b.deck)
	for _, c := range b.lands {
		n += c
	}
	return n
}

// GroupedPool groups the sideboard by card name in first-seen order.
func (b *Builder) GroupedPool() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, c := range b.pool {
		i, ok := index[c.Name]
		if !ok {
			i = len(groups)
			index[c.Name] = i
			groups = append(groups, Group{Card: c})
		}
		groups[i].Count++
		groups[i].IDs = append(groups[i].IDs, c.ID)
	}
	return groups
}

type deckEntry struct {
	card  card.Card
	index int
	basic bool
}

// DeckByManaValue buckets the main deck and basic lands by mana value. Spells
// group by name, basic lands by type line.
func (b *Builder) DeckByManaValue() map[string][]Group {
	raw := make(map[string][]deckEntry, len(Buckets))
	for i, c := range b.deck {
		key := BucketLands
		if !c.IsLand() {
			key = bucketFor(c.ManaValue())
		}
		raw[key] = append(raw[key], deckEntry{card: c, index: i})
	}
	for _, name := range BasicLandNames {
		for i := 0; i < b.lands[name]; i++ {
			raw[BucketLands] = append(raw[BucketLands], deckEntry{card: basicLandCards[name], index: -1, basic: true})
		}
	}

	out := make(map[string][]Group, len(Buckets))
	for _, key := range Buckets {
		out[key] = groupEntries(raw[key])
	}
	return out
}

func bucketFor(mv int) string {
	if mv >= 5 {
		return BucketFivePlus
	}
	return fmt.Sprint(mv)
}

func groupEntries(entries []deckEntry) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, e := range entries {
		key := e.card.Name
		if e.basic {
			key = e.card.Type
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Card: e.card})
		}
		groups[i].Count++
		if !e.basic {
			groups[i].DeckIndexes = append(groups[i].DeckIndexes, e.index)
		}
	}
	return groups
}

// Export renders the decklist as "<count> <name>" lines. Main deck names come
// in first-seen order, then basic lands in WUBRG order; a drafted card that
// shares a basic's name is merged into one line.
func (b *Builder) Export() string {
	var order []string
	counts := make(map[string]int)
	add := func(name string, n int) {
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name] += n
	}
	for _, c := range b.deck {
		add(c.Name, 1)
	}
	for _, name := range BasicLandNames {
		if n := b.lands[name]; n > 0 {
			add(string(name), n)
		}
	}

	var sb strings.Builder
	for _, name := range order {
		fmt.Fprintf(&sb, "%d %s\n", counts[name], name)
	}
	return sb.String()
}

// WriteDecklist writes the exported decklist to w.
func (b *Builder) WriteDecklist(w io.Writer) error {
	if _, err := io.WriteString(w, b.Export()); err != nil {
		return fmt.Errorf("failed to write decklist: %w", err)
	}
	return nil
}
