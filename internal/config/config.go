// Package config loads the HCL configuration file shared by the CLI and the
// server.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/draftsim/internal/booster"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/playtest"
	"github.com/lox/draftsim/internal/storage"
)

// Config represents the complete configuration
type Config struct {
	Draft    DraftSettings    `hcl:"draft,block"`
	Booster  BoosterSettings  `hcl:"booster,block"`
	Playtest PlaytestSettings `hcl:"playtest,block"`
	Storage  StorageSettings  `hcl:"storage,block"`
	Server   ServerSettings   `hcl:"server,block"`
	Log      LogSettings      `hcl:"log,block"`
}

// DraftSettings sizes the draft table
type DraftSettings struct {
	Seats  int `hcl:"seats,optional"`
	Rounds int `hcl:"rounds,optional"`
}

// BoosterSettings holds the pack rarity rates
type BoosterSettings struct {
	MythicRate       float64 `hcl:"mythic_rate,optional"`
	WildcardMythic   float64 `hcl:"wildcard_mythic,optional"`
	WildcardRare     float64 `hcl:"wildcard_rare,optional"`
	WildcardUncommon float64 `hcl:"wildcard_uncommon,optional"`
	SealedPacks      int     `hcl:"sealed_packs,optional"`
}

// PlaytestSettings configures the opening hand
type PlaytestSettings struct {
	HandSize     int `hcl:"hand_size,optional"`
	MaxMulligans int `hcl:"max_mulligans,optional"`
}

// StorageSettings selects the persistence backend
type StorageSettings struct {
	Backend string `hcl:"backend,optional"`
	Path    string `hcl:"path,optional"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	PickTimer string `hcl:"pick_timer,optional"`
}

// LogSettings configures the root logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	rates := booster.DefaultRates()
	return &Config{
		Draft: DraftSettings{
			Seats:  draft.DefaultSeats,
			Rounds: draft.DefaultRounds,
		},
		Booster: BoosterSettings{
			MythicRate:       rates.MarqueeMythic,
			WildcardMythic:   rates.WildcardMythic,
			WildcardRare:     rates.WildcardRare,
			WildcardUncommon: rates.WildcardUncommon,
			SealedPacks:      booster.DefaultSealedPacks,
		},
		Playtest: PlaytestSettings{
			HandSize:     playtest.DefaultHandSize,
			MaxMulligans: playtest.DefaultMaxMulligans,
		},
		Storage: StorageSettings{
			Backend: string(storage.BackendMemory),
		},
		Server: ServerSettings{
			Address:   "localhost",
			Port:      8080,
			PickTimer: "off",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw struct {
		Draft    *DraftSettings    `hcl:"draft,block"`
		Booster  *BoosterSettings  `hcl:"booster,block"`
		Playtest *PlaytestSettings `hcl:"playtest,block"`
		Storage  *StorageSettings  `hcl:"storage,block"`
		Server   *ServerSettings   `hcl:"server,block"`
		Log      *LogSettings      `hcl:"log,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Config{}
	if raw.Draft != nil {
		config.Draft = *raw.Draft
	}
	if raw.Booster != nil {
		config.Booster = *raw.Booster
	}
	if raw.Playtest != nil {
		config.Playtest = *raw.Playtest
	}
	if raw.Storage != nil {
		config.Storage = *raw.Storage
	}
	if raw.Server != nil {
		config.Server = *raw.Server
	}
	if raw.Log != nil {
		config.Log = *raw.Log
	}
	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills zero values from DefaultConfig
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.Draft.Seats == 0 {
		c.Draft.Seats = d.Draft.Seats
	}
	if c.Draft.Rounds == 0 {
		c.Draft.Rounds = d.Draft.Rounds
	}

	if c.Booster.MythicRate == 0 {
		c.Booster.MythicRate = d.Booster.MythicRate
	}
	if c.Booster.WildcardMythic == 0 {
		c.Booster.WildcardMythic = d.Booster.WildcardMythic
	}
	if c.Booster.WildcardRare == 0 {
		c.Booster.WildcardRare = d.Booster.WildcardRare
	}
	if c.Booster.WildcardUncommon == 0 {
		c.Booster.WildcardUncommon = d.Booster.WildcardUncommon
	}
	if c.Booster.SealedPacks == 0 {
		c.Booster.SealedPacks = d.Booster.SealedPacks
	}

	if c.Playtest.HandSize == 0 {
		c.Playtest.HandSize = d.Playtest.HandSize
	}
	if c.Playtest.MaxMulligans == 0 {
		c.Playtest.MaxMulligans = d.Playtest.MaxMulligans
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}

	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.PickTimer == "" {
		c.Server.PickTimer = d.Server.PickTimer
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Draft.Seats < 2 {
		return fmt.Errorf("draft: seats must be at least 2, got %d", c.Draft.Seats)
	}
	if c.Draft.Rounds < 1 {
		return fmt.Errorf("draft: rounds must be at least 1, got %d", c.Draft.Rounds)
	}

	for name, rate := range map[string]float64{
		"mythic_rate":       c.Booster.MythicRate,
		"wildcard_mythic":   c.Booster.WildcardMythic,
		"wildcard_rare":     c.Booster.WildcardRare,
		"wildcard_uncommon": c.Booster.WildcardUncommon,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("booster: %s must be between 0 and 1, got %g", name, rate)
		}
	}
	if sum := c.Booster.WildcardMythic + c.Booster.WildcardRare + c.Booster.WildcardUncommon; sum > 1 {
		return fmt.Errorf("booster: wildcard rates sum to %g, must not exceed 1", sum)
	}
	if c.Booster.SealedPacks < 1 {
		return fmt.Errorf("booster: sealed_packs must be positive, got %d", c.Booster.SealedPacks)
	}

	if c.Playtest.HandSize < 1 {
		return fmt.Errorf("playtest: hand_size must be positive, got %d", c.Playtest.HandSize)
	}
	if c.Playtest.MaxMulligans < 0 || c.Playtest.MaxMulligans > c.Playtest.HandSize {
		return fmt.Errorf("playtest: max_mulligans must be between 0 and hand_size, got %d", c.Playtest.MaxMulligans)
	}

	switch storage.Backend(c.Storage.Backend) {
	case storage.BackendMemory:
	case storage.BackendFile, storage.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage: %s backend requires a path", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("storage: unknown backend %q", c.Storage.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.PickTimer(); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}

	return nil
}

// Rates returns the booster rates as the generator expects them
func (c *Config) Rates() booster.Rates {
	return booster.Rates{
		MarqueeMythic:    c.Booster.MythicRate,
		WildcardMythic:   c.Booster.WildcardMythic,
		WildcardRare:     c.Booster.WildcardRare,
		WildcardUncommon: c.Booster.WildcardUncommon,
	}
}

// DraftOptions returns the session options for the configured table
func (c *Config) DraftOptions() []draft.Option {
	return []draft.Option{
		draft.WithSeats(c.Draft.Seats),
		draft.WithRounds(c.Draft.Rounds),
		draft.WithRates(c.Rates()),
	}
}

// PlaytestOptions returns the engine options for the configured hand
func (c *Config) PlaytestOptions() []playtest.Option {
	return []playtest.Option{
		playtest.WithHandSize(c.Playtest.HandSize),
		playtest.WithMaxMulligans(c.Playtest.MaxMulligans),
	}
}

// PickTimer resolves the configured pick timer preset. "off" disables it.
func (c *Config) PickTimer() (time.Duration, error) {
	if c.Server.PickTimer == "off" {
		return 0, nil
	}
	d, ok := PickTimerPresets[c.Server.PickTimer]
	if !ok {
		return 0, fmt.Errorf("server: unknown pick_timer %q", c.Server.PickTimer)
	}
	return d, nil
}

// PickTimerPresets are the base pick times for the first pick of a round
var PickTimerPresets = map[string]time.Duration{
	"leisurely": 90 * time.Second,
	"slow":      75 * time.Second,
	"moderate":  55 * time.Second,
	"fast":      40 * time.Second,
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
