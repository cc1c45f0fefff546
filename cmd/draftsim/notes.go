package main

import (
	"context"
	"fmt"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/storage"
)

// NotesCmd groups the card note commands
type NotesCmd struct {
	List   NotesListCmd   `cmd:"" default:"1" help:"List every note"`
	Set    NotesSetCmd    `cmd:"" help:"Write a note for a card"`
	Delete NotesDeleteCmd `cmd:"" help:"Delete a card's note"`
	Export NotesExportCmd `cmd:"" help:"Write all notes as JSON"`
	Import NotesImportCmd `cmd:"" help:"Merge notes from a JSON file"`
	Clear  NotesClearCmd  `cmd:"" help:"Delete every note"`
}

// withNotes opens the configured store for the duration of fn
func withNotes(g *Globals, fn func(context.Context, *storage.Notes) error) error {
	store, err := g.OpenStore(g.Logger())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(context.Background(), storage.NewNotes(store, quartz.NewReal()))
}

type NotesListCmd struct{}

func (c *NotesListCmd) Run(g *Globals) error {
	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		entries, err := notes.All(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(display.InfoStyle.Render("(no notes)"))
			return nil
		}
		for _, e := range entries {
			badge := ""
			if e.Badge != "" {
				badge = " [" + e.Badge + "]"
			}
			fmt.Printf("%s%s: %s\n", display.SectionStyle.Render(e.CardID), badge, e.Text)
		}
		return nil
	})
}

type NotesSetCmd struct {
	CardID string `arg:"" help:"Card id"`
	Text   string `arg:"" help:"Note text (empty deletes the note)"`
	Badge  string `help:"Short badge shown beside the card"`
}

func (c *NotesSetCmd) Run(g *Globals) error {
	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		return notes.Set(ctx, c.CardID, c.Text, c.Badge)
	})
}

type NotesDeleteCmd struct {
	CardID string `arg:"" help:"Card id"`
}

func (c *NotesDeleteCmd) Run(g *Globals) error {
	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		return notes.Delete(ctx, c.CardID)
	})
}

type NotesExportCmd struct {
	Output string `short:"o" help:"Write to file instead of stdout" type:"path"`
}

func (c *NotesExportCmd) Run(g *Globals) error {
	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		if c.Output == "" {
			return notes.Export(ctx, os.Stdout)
		}
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		if err := notes.Export(ctx, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

type NotesImportCmd struct {
	File string `arg:"" help:"JSON notes file" type:"existingfile"`
}

func (c *NotesImportCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		n, err := notes.Import(ctx, f)
		if err != nil {
			return err
		}
		g.Logger().Info("Imported notes", "count", n)
		return nil
	})
}

type NotesClearCmd struct{}

func (c *NotesClearCmd) Run(g *Globals) error {
	return withNotes(g, func(ctx context.Context, notes *storage.Notes) error {
		return notes.Clear(ctx)
	})
}
