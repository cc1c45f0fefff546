package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/lox/draftsim/internal/simulator"
)

// SimulateCmd runs bot-only drafts and reports how well bots converge
type SimulateCmd struct {
	Drafts   int  `short:"n" default:"100" help:"Number of drafts to simulate"`
	Workers  int  `short:"w" default:"0" help:"Parallel drafts (0 = number of CPUs)"`
	Progress bool `default:"true" negatable:"" help:"Show a progress bar"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := g.Logger()
	if c.Drafts < 1 {
		return fmt.Errorf("--drafts must be at least 1")
	}
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}
	_, seed := g.RNG()

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	cfg := simulator.Config{
		Drafts:  c.Drafts,
		Seed:    seed,
		Workers: workers,
		Options: g.cfg.DraftOptions(),
		Logger:  logger,
	}
	if c.Progress {
		cfg.OnDraft = newDotProgress(os.Stderr, c.Drafts).OnDraft
	}

	result, err := simulator.New(cards, cfg).Run(ctx)
	if err != nil {
		return err
	}
	if err := result.Stats.Validate(); err != nil {
		logger.Warn("Statistics failed validation", "error", err)
	}
	simulator.PrintSummary(os.Stdout, result)
	return nil
}
