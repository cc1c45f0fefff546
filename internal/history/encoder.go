// Package history writes and reads the pick log of a finished draft as TOML.
package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/draftsim/internal/draft"
)

// FromSession builds a log from a session's history. The timestamp is
// rendered in RFC 3339.
func FromSession(id string, seed int64, s *draft.Session, at time.Time) *DraftLog {
	log := &DraftLog{
		Session:   id,
		Seats:     s.Seats(),
		Rounds:    s.Rounds(),
		Seed:      seed,
		Time:      at.UTC().Format(time.RFC3339),
		Timestamp: at,
	}
	for _, c := range s.HumanPool() {
		log.Pool = append(log.Pool, c.Name)
	}
	for _, p := range s.History() {
		log.Picks = append(log.Picks, PickEntry{
			Round:    p.Round,
			Pick:     p.Pick,
			Seat:     p.Seat,
			CardID:   p.Card.ID,
			CardName: p.Card.Name,
		})
	}
	if bots := s.Bots(); len(bots) > 0 {
		log.Archetype = make(map[string]string, len(bots))
		for _, b := range bots {
			var sb strings.Builder
			for _, c := range b.Archetype() {
				sb.WriteString(c.String())
			}
			log.Archetype["seat"+strconv.Itoa(b.ID())] = sb.String()
		}
	}
	return log
}

// Encode writes the log to w.
func Encode(w io.Writer, log *DraftLog) error {
	if log == nil {
		return fmt.Errorf("history: draft log is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(log)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(log *DraftLog) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, log); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Decode reads a log previously written by Encode.
func Decode(r io.Reader) (*DraftLog, error) {
	var log DraftLog
	if _, err := toml.NewDecoder(r).Decode(&log); err != nil {
		return nil, fmt.Errorf("history: failed to decode: %w", err)
	}
	if log.Time != "" {
		ts, err := time.Parse(time.RFC3339, log.Time)
		if err != nil {
			return nil, fmt.Errorf("history: invalid time %q: %w", log.Time, err)
		}
		log.Timestamp = ts
	}
	return &log, nil
}

// PicksBySeat groups the log's picks by seat, preserving pick order.
func (l *DraftLog) PicksBySeat() map[int][]PickEntry {
	out := make(map[int][]PickEntry)
	for _, p := range l.Picks {
		out[p.Seat] = append(out[p.Seat], p)
	}
	return out
}
