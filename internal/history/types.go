package history

import "time"

// DraftLog is a finished draft in TOML form.
type DraftLog struct {
	Session   string            `toml:"session"`
	Seats     int               `toml:"seats"`
	Rounds    int               `toml:"rounds"`
	Seed      int64             `toml:"seed,omitempty"`
	Time      string            `toml:"time,omitempty"`
	Pool      []string          `toml:"pool"`
	Archetype map[string]string `toml:"archetypes,omitempty"`
	Picks     []PickEntry       `toml:"pick"`

	Timestamp time.Time `toml:"-"`
}

// PickEntry is a single [[pick]] table
type PickEntry struct {
	Round    int    `toml:"round"`
	Pick     int    `toml:"pick"`
	Seat     int    `toml:"seat"`
	CardID   string `toml:"card_id"`
	CardName string `toml:"card_name"`
}
