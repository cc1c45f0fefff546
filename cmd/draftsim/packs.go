package main

import (
	"context"
	"fmt"

	"github.com/lox/draftsim/internal/booster"
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/storage"
)

// OpenCmd prints freshly opened packs
type OpenCmd struct {
	Count int `short:"n" default:"1" help:"Number of packs to open"`
}

func (c *OpenCmd) Run(g *Globals) error {
	logger := g.Logger()
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}
	rng, seed := g.RNG()
	logger.Debug("Opening packs", "count", c.Count, "seed", seed)

	gen := booster.New(cards, rng, booster.WithRates(g.cfg.Rates()))
	for i, pack := range gen.Packs(c.Count) {
		fmt.Println(display.SectionStyle.Render(fmt.Sprintf("Pack %d (%d cards)", i+1, len(pack))))
		fmt.Println(display.Pack(pack, -1))
	}
	return nil
}

// SealedCmd opens a sealed pool and saves it
type SealedCmd struct {
	Packs int `default:"0" help:"Packs in the pool (0 = config sealed_packs)"`
}

func (c *SealedCmd) Run(g *Globals) error {
	logger := g.Logger()
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}
	packs := c.Packs
	if packs <= 0 {
		packs = g.cfg.Booster.SealedPacks
	}
	rng, seed := g.RNG()

	pool := card.SortByCurve(booster.New(cards, rng, booster.WithRates(g.cfg.Rates())).Sealed(packs))
	fmt.Println(display.HeaderStyle.Render(fmt.Sprintf("Sealed pool: %d packs, %d cards", packs, len(pool))))
	fmt.Println(display.Pool(pool))

	pools, store, err := g.SavedPools(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	meta := map[string]string{"seed": fmt.Sprint(seed), "packs": fmt.Sprint(packs)}
	if err := pools.Save(context.Background(), pool, storage.PoolSealed, nil, meta); err != nil {
		return fmt.Errorf("failed to save pool: %w", err)
	}
	logger.Info("Saved sealed pool", "cards", len(pool), "seed", seed)
	return nil
}
