package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/draftsim/internal/deckbuild"
	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/playtest"
	"github.com/lox/draftsim/internal/storage"
)

// DeckCmd groups the deck building commands
type DeckCmd struct {
	Show   DeckShowCmd   `cmd:"" default:"1" help:"Show the saved pool and deck"`
	Add    DeckAddCmd    `cmd:"" help:"Move pool cards into the main deck"`
	Remove DeckRemoveCmd `cmd:"" help:"Move main deck cards back to the sideboard"`
	Lands  DeckLandsCmd  `cmd:"" help:"Set basic land counts"`
	Export DeckExportCmd `cmd:"" help:"Write the decklist"`
}

// deckContext is the saved pool opened for editing
type deckContext struct {
	logger  *log.Logger
	pools   *storage.SavedPools
	store   storage.Store
	saved   storage.SavedPool
	builder *deckbuild.Builder
}

func openDeck(g *Globals) (*deckContext, error) {
	logger := g.Logger()
	pools, store, err := g.SavedPools(logger)
	if err != nil {
		return nil, err
	}
	saved, err := pools.Load(context.Background())
	if err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errors.New("no saved pool, run draft or sealed first")
		}
		return nil, err
	}
	return &deckContext{logger: logger, pools: pools, store: store, saved: saved, builder: saved.Builder()}, nil
}

func (d *deckContext) save() error {
	state := d.builder.State()
	if err := d.pools.Save(context.Background(), d.saved.Pool, d.saved.Type, &state, d.saved.Metadata); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	d.logger.Debug("Saved deck", "main", d.builder.TotalMainCount())
	return nil
}

func (d *deckContext) Close() error { return d.store.Close() }

type DeckShowCmd struct{}

func (c *DeckShowCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Println(display.HeaderStyle.Render(fmt.Sprintf("%s pool, %d cards, saved %s",
		d.saved.Type, len(d.saved.Pool), d.saved.SavedAt.Format("2006-01-02 15:04"))))
	fmt.Println(display.Deck(d.builder))
	return nil
}

type DeckAddCmd struct {
	IDs []string `arg:"" name:"card-id" help:"Pool card ids to add"`
}

func (c *DeckAddCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	for _, id := range c.IDs {
		if !d.builder.AddToDeck(id) {
			return fmt.Errorf("card %s is not in the sideboard", id)
		}
	}
	if err := d.save(); err != nil {
		return err
	}
	fmt.Println(display.Deck(d.builder))
	return nil
}

type DeckRemoveCmd struct {
	Indexes []int `arg:"" name:"index" help:"Main deck positions to remove (0-based)"`
}

func (c *DeckRemoveCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	// Highest first so earlier positions stay valid.
	indexes := slices.Clone(c.Indexes)
	slices.Sort(indexes)
	slices.Reverse(indexes)
	for _, i := range indexes {
		if !d.builder.RemoveFromDeck(i) {
			return fmt.Errorf("no main deck card at position %d", i)
		}
	}
	if err := d.save(); err != nil {
		return err
	}
	fmt.Println(display.Deck(d.builder))
	return nil
}

type DeckLandsCmd struct {
	Counts []string `arg:"" name:"land=count" help:"Land counts, e.g. Forest=8 Island=9"`
}

func (c *DeckLandsCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	counts, err := parseLandCounts(c.Counts)
	if err != nil {
		return err
	}
	current := d.builder.BasicLands()
	for name, want := range counts {
		for n := current[name]; n < want; n++ {
			d.builder.AddBasicLand(name)
		}
		for n := current[name]; n > want; n-- {
			d.builder.RemoveBasicLand(name)
		}
	}
	if err := d.save(); err != nil {
		return err
	}
	fmt.Println(display.Deck(d.builder))
	return nil
}

// parseLandCounts reads "Name=N" pairs. Names are case-insensitive.
func parseLandCounts(args []string) (map[deckbuild.LandName]int, error) {
	counts := make(map[deckbuild.LandName]int, len(args))
	for _, arg := range args {
		raw, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected land=count, got %q", arg)
		}
		name, ok := deckbuild.ParseLandName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown basic land %q", raw)
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid count for %s: %q", name, value)
		}
		counts[name] = n
	}
	return counts, nil
}

type DeckExportCmd struct {
	Output string `short:"o" help:"Write to file instead of stdout" type:"path"`
}

func (c *DeckExportCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	if c.Output == "" {
		return d.builder.WriteDecklist(os.Stdout)
	}
	if err := storage.WriteFileAtomic(c.Output, []byte(d.builder.Export()), 0o644); err != nil {
		return fmt.Errorf("failed to write decklist: %w", err)
	}
	d.logger.Info("Exported decklist", "path", c.Output, "cards", d.builder.TotalMainCount())
	return nil
}

// PlaytestCmd goldfishes the saved deck. Actions come from the arguments,
// or one per line from stdin when none are given.
type PlaytestCmd struct {
	Actions []string `arg:"" optional:"" help:"Actions such as keep, draw, play:2"`
}

func (c *PlaytestCmd) Run(g *Globals) error {
	d, err := openDeck(g)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.builder.TotalMainCount() == 0 {
		return errors.New("the saved deck is empty, add cards with deck add")
	}

	rng, _ := g.RNG()
	engine := playtest.New(rng, g.cfg.PlaytestOptions()...)
	engine.Start(d.builder.MainDeck(), d.builder.BasicLands())
	fmt.Println(display.Zones(engine))

	if len(c.Actions) > 0 {
		for _, a := range c.Actions {
			if err := runAction(os.Stdout, engine, a); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for engine.Active() && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		if err := runAction(os.Stdout, engine, line); err != nil {
			fmt.Println(display.ErrorStyle.Render(err.Error()))
		}
	}
	return scanner.Err()
}

// runAction parses "name" or "name:index" and applies it
func runAction(w io.Writer, engine *playtest.Engine, spec string) error {
	fields := strings.FieldsFunc(spec, func(r rune) bool { return r == ':' || r == ' ' })
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("invalid action %q", spec)
	}
	name, index := fields[0], -1
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid index in %q", spec)
		}
		index = n
	}

	applied, err := engine.Apply(playtest.Action(name), index)
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintln(w, display.WarningStyle.Render(fmt.Sprintf("%s not allowed now", name)))
	}
	fmt.Fprintln(w, display.Zones(engine))
	return nil
}
