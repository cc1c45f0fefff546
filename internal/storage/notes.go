package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// NotesKey is the store key of the card notes.
const NotesKey = "draftsim_card_notes"

// Note is a player's note on a card.
type Note struct {
	Text      string    `json:"text"`
	Badge     string    `json:"badge,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteEntry pairs a note with its card id.
type NoteEntry struct {
	CardID string
	Note
}

// Notes stores per-card notes as one JSON object keyed by card id.
type Notes struct {
	store Store
	clock quartz.Clock
}

// NewNotes wraps a store
func NewNotes(store Store, clock quartz.Clock) *Notes {
	return &Notes{store: store, clock: clock}
}

func (n *Notes) load(ctx context.Context) (map[string]Note, error) {
	data, ok, err := n.store.Get(ctx, NotesKey)
	if err != nil {
		return nil, err
	}
	notes := map[string]Note{}
	if !ok {
		return notes, nil
	}
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

func (n *Notes) save(ctx context.Context, notes map[string]Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return n.store.Put(ctx, NotesKey, data)
}

// Get returns the note on a card.
func (n *Notes) Get(ctx context.Context, cardID string) (Note, bool, error) {
	notes, err := n.load(ctx)
	if err != nil {
		return Note{}, false, err
	}
	note, ok := notes[cardID]
	return note, ok, nil
}

// Set writes a note. Blank text deletes the note instead.
func (n *Notes) Set(ctx context.Context, cardID, text, badge string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return n.Delete(ctx, cardID)
	}
	notes, err := n.load(ctx)
	if err != nil {
		return err
	}
	notes[cardID] = Note{Text: text, Badge: badge, UpdatedAt: n.clock.Now().UTC()}
	return n.save(ctx, notes)
}

// Delete removes the note on a card, if any.
func (n *Notes) Delete(ctx context.Context, cardID string) error {
	notes, err := n.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := notes[cardID]; !ok {
		return nil
	}
	delete(notes, cardID)
	return n.save(ctx, notes)
}

// All returns every note ordered by card id.
func (n *Notes) All(ctx context.Context) ([]NoteEntry, error) {
	notes, err := n.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NoteEntry, 0, len(notes))
	for _, id := range slices.Sorted(maps.Keys(notes)) {
		out = append(out, NoteEntry{CardID: id, Note: notes[id]})
	}
	return out, nil
}

// Count returns the number of notes.
func (n *Notes) Count(ctx context.Context) (int, error) {
	notes, err := n.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(notes), nil
}

// Export writes all notes as indented JSON.
func (n *Notes) Export(ctx context.Context, w io.Writer) error {
	notes, err := n.load(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("failed to export notes: %w", err)
	}
	return nil
}

// Import merges notes from JSON written by Export. Imported notes replace
// existing notes on the same card.
func (n *Notes) Import(ctx context.Context, r io.Reader) (int, error) {
	var imported map[string]Note
	if err := json.NewDecoder(r).Decode(&imported); err != nil {
		return 0, fmt.Errorf("failed to import notes: %w", err)
	}
	notes, err := n.load(ctx)
	if err != nil {
		return 0, err
	}
	maps.Copy(notes, imported)
	return len(imported), n.save(ctx, notes)
}

// Clear removes every note.
func (n *Notes) Clear(ctx context.Context) error {
	return n.store.Delete(ctx, NotesKey)
}
