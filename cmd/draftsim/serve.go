package main

import (
	"context"
	"time"

	"github.com/lox/draftsim/internal/server"
)

// ServeCmd serves drafts over WebSocket
type ServeCmd struct {
	Addr      string `help:"Listen address (overrides config)"`
	PickTimer string `help:"Pick timer preset: off, leisurely, slow, moderate or fast (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.Logger()
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}

	if c.PickTimer != "" {
		g.cfg.Server.PickTimer = c.PickTimer
	}
	timer, err := g.cfg.PickTimer()
	if err != nil {
		return err
	}
	addr := g.cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	pools, store, err := g.SavedPools(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	// A zero seed lets every session seed itself from the clock.
	s := server.NewServer(addr, cards, logger,
		server.WithSeed(g.Seed),
		server.WithPickTimer(timer),
		server.WithSealedPacks(g.cfg.Booster.SealedPacks),
		server.WithRates(g.cfg.Rates()),
		server.WithDraftOptions(g.cfg.DraftOptions()...),
		server.WithPlaytestOptions(g.cfg.PlaytestOptions()...),
		server.WithSavedPools(pools),
	)

	logger.Info("Starting draft server",
		"address", addr,
		"seed", g.Seed,
		"pick_timer", timer,
		"storage", g.cfg.Storage.Backend)

	ctx, cancel := signalContext(logger)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
