package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
)

// SavedPoolKey is the store key of the saved pool.
const SavedPoolKey = "draftsim_saved_pool"

// PoolType says where a pool came from
type PoolType string

const (
	PoolDraft  PoolType = "draft"
	PoolSealed PoolType = "sealed"
)

// SavedPool is a pool kept between sessions, with the deck built from it.
type SavedPool struct {
	Pool       []card.Card                `json:"pool"`
	Deck       []card.Card                `json:"deck,omitempty"`
	BasicLands map[deckbuild.LandName]int `json:"basicLands,omitempty"`
	Type       PoolType                   `json:"type"`
	Metadata   map[string]string          `json:"metadata,omitempty"`
	SavedAt    time.Time                  `json:"savedAt"`
}

// DeckCardCount is the saved deck size including basic lands.
func (p SavedPool) DeckCardCount() int {
	n := len(p.Deck)
	for _, c := range p.BasicLands {
		n += c
	}
	return n
}

// Builder restores a deck builder. Pool holds every card, so the saved deck
// cards are taken out of it first, matching by id.
func (p SavedPool) Builder() *deckbuild.Builder {
	owed := make(map[string]int, len(p.Deck))
	for _, c := range p.Deck {
		owed[c.ID]++
	}
	var side []card.Card
	for _, c := range p.Pool {
		if owed[c.ID] > 0 {
			owed[c.ID]--
			continue
		}
		side = append(side, c)
	}
	return deckbuild.New(side, p.Deck, p.BasicLands)
}

// SavedPools saves and restores the single saved pool.
type SavedPools struct {
	store Store
	clock quartz.Clock
}

// NewSavedPools wraps a store
func NewSavedPools(store Store, clock quartz.Clock) *SavedPools {
	return &SavedPools{store: store, clock: clock}
}

// Save replaces the saved pool. deck may be nil. Saving an empty pool clears
// the saved one.
func (s *SavedPools) Save(ctx context.Context, pool []card.Card, typ PoolType, deck *deckbuild.State, metadata map[string]string) error {
	if len(pool) == 0 {
		return s.Clear(ctx)
	}
	sp := SavedPool{
		Pool:     pool,
		Type:     typ,
		Metadata: metadata,
		SavedAt:  s.clock.Now().UTC(),
	}
	if deck != nil {
		sp.Deck = deck.Deck
		sp.BasicLands = deck.BasicLands
	}
	data, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("failed to encode saved pool: %w", err)
	}
	return s.store.Put(ctx, SavedPoolKey, data)
}

// Load returns the saved pool, or ErrNotFound.
func (s *SavedPools) Load(ctx context.Context) (SavedPool, error) {
	data, ok, err := s.store.Get(ctx, SavedPoolKey)
	if err != nil {
		return SavedPool{}, err
	}
	if !ok {
		return SavedPool{}, ErrNotFound
	}
	var sp SavedPool
	if err := json.Unmarshal(data, &sp); err != nil {
		return SavedPool{}, fmt.Errorf("failed to decode saved pool: %w", err)
	}
	if len(sp.Pool) == 0 {
		return SavedPool{}, ErrNotFound
	}
	return sp, nil
}

// Has reports whether a non-empty pool is saved.
func (s *SavedPools) Has(ctx context.Context) (bool, error) {
	_, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Clear removes the saved pool.
func (s *SavedPools) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, SavedPoolKey)
}
