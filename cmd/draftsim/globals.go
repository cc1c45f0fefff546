package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/config"
	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/randutil"
	"github.com/lox/draftsim/internal/storage"
)

// Globals are the flags shared by every command
type Globals struct {
	Config    string `short:"c" default:"draftsim.hcl" help:"Path to the HCL config file" type:"path"`
	Catalog   string `help:"Path to a JSON card catalog (defaults to a built-in demo set)" type:"path"`
	Seed      int64  `help:"Deterministic RNG seed (0 = random)"`
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `help:"Log format: text, json or logfmt (overrides config)"`
	NoColor   bool   `help:"Disable coloured output"`

	cfg *config.Config
}

// setup loads the config once flags are parsed
func (g *Globals) setup() error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	g.cfg = cfg
	if g.NoColor {
		display.DisableColor()
	}
	return nil
}

// Logger builds the root logger from flags and config
func (g *Globals) Logger() *log.Logger {
	level, err := log.ParseLevel(g.cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if g.Debug {
		level = log.DebugLevel
	}

	opts := log.Options{Level: level, ReportTimestamp: true, TimeFormat: time.Kitchen}
	switch g.cfg.Log.Format {
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	}
	return log.NewWithOptions(os.Stderr, opts)
}

// Cards loads the catalog named by --catalog
func (g *Globals) Cards(logger *log.Logger) ([]card.Card, error) {
	if g.Catalog == "" {
		logger.Warn("No --catalog given, using the built-in demo set")
		return card.NewTestCatalog(card.WithGoldCards(20), card.WithBackFaces(5)).All(), nil
	}
	cat, err := card.LoadFile(g.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded catalog", "path", g.Catalog, "cards", cat.Len())
	return cat.All(), nil
}

// RNG returns the seeded generator and the seed that produced it
func (g *Globals) RNG() (*rand.Rand, int64) {
	seed := randutil.ResolveSeed(g.Seed)
	return randutil.New(seed), seed
}

// OpenStore opens the configured storage backend
func (g *Globals) OpenStore(logger *log.Logger) (storage.Store, error) {
	return storage.Open(storage.Backend(g.cfg.Storage.Backend), g.cfg.Storage.Path, logger)
}

// SavedPools opens the configured store wrapped as saved pools. The caller
// closes the returned store.
func (g *Globals) SavedPools(logger *log.Logger) (*storage.SavedPools, storage.Store, error) {
	store, err := g.OpenStore(logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewSavedPools(store, quartz.NewReal()), store, nil
}

// signalContext creates a context that is cancelled on interrupt signals
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
