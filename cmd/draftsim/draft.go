package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/history"
	"github.com/lox/draftsim/internal/sessionid"
	"github.com/lox/draftsim/internal/storage"
	"github.com/lox/draftsim/internal/tui"
)

// DraftCmd runs a draft at seat 0 against bots
type DraftCmd struct {
	Auto    bool   `help:"Let the autopilot make every human pick"`
	History string `help:"Write the pick log as TOML to this file" type:"path"`
	NoSave  bool   `help:"Do not save the finished pool"`
}

func (c *DraftCmd) Run(g *Globals) error {
	logger := g.Logger()
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}
	rng, seed := g.RNG()
	id := sessionid.Generate()

	// The TUI owns the terminal, so its session logs nowhere.
	sessionLogger := logger
	if !c.Auto {
		sessionLogger = log.New(io.Discard)
	}
	session := draft.New(cards, rng, sessionLogger, g.cfg.DraftOptions()...)
	logger.Debug("Created draft", "session", id, "seed", seed, "seats", session.Seats(), "rounds", session.Rounds())

	if c.Auto {
		session.Start()
		for session.Phase() == draft.Active {
			if !session.AutoPick() {
				return fmt.Errorf("autopilot made no pick at round %d pick %d", session.Round(), session.Pick())
			}
		}
		fmt.Println(display.DraftStatus(session))
		fmt.Println(display.Pool(session.SortedPool()))
	} else if err := tui.Run(session, sessionLogger); err != nil {
		return err
	}

	if session.Phase() != draft.ReviewingPool {
		logger.Info("Draft abandoned", "phase", session.Phase(), "picks", len(session.HumanPool()))
		return nil
	}

	if c.History != "" {
		if err := writeHistory(c.History, history.FromSession(id, seed, session, time.Now())); err != nil {
			return err
		}
		logger.Info("Wrote draft history", "path", c.History)
	}

	if c.NoSave {
		return nil
	}
	pools, store, err := g.SavedPools(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	meta := map[string]string{"session": id, "seed": fmt.Sprint(seed)}
	if err := pools.Save(context.Background(), session.HumanPool(), storage.PoolDraft, nil, meta); err != nil {
		return fmt.Errorf("failed to save pool: %w", err)
	}
	logger.Info("Saved drafted pool", "cards", len(session.HumanPool()))
	return nil
}

func writeHistory(path string, dl *history.DraftLog) error {
	data, err := history.EncodeToBytes(dl)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, data, 0o644)
}

// HistoryCmd prints a saved pick log
type HistoryCmd struct {
	File string `arg:"" help:"TOML draft log" type:"existingfile"`
	Seat *int   `help:"Only show picks for this seat"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	dl, err := history.Decode(f)
	if err != nil {
		return err
	}

	fmt.Println(display.HeaderStyle.Render(fmt.Sprintf("Draft %s", dl.Session)))
	fmt.Printf("Seats: %d  Rounds: %d  Seed: %d  Time: %s\n", dl.Seats, dl.Rounds, dl.Seed, dl.Time)

	bySeat := dl.PicksBySeat()
	for seat := 0; seat < dl.Seats; seat++ {
		if c.Seat != nil && *c.Seat != seat {
			continue
		}
		picks := bySeat[seat]
		title := fmt.Sprintf("Seat %d (%d picks)", seat, len(picks))
		if arch, ok := dl.Archetype[fmt.Sprintf("seat%d", seat)]; ok {
			title += "  " + arch
		}
		fmt.Println(display.SectionStyle.Render(title))
		for _, p := range picks {
			fmt.Printf("  R%d P%-2d %s\n", p.Round, p.Pick, p.CardName)
		}
	}
	return nil
}

