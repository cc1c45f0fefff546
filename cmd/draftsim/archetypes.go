package main

import (
	"fmt"
	"strings"

	"github.com/lox/draftsim/internal/archetype"
	"github.com/lox/draftsim/internal/display"
)

// ArchetypesCmd analyses the catalog by colour pair
type ArchetypesCmd struct {
	Pair  string `arg:"" optional:"" help:"Colour pair id such as WU or RG (default all)"`
	Cards bool   `help:"List the on-colour cards of each pair"`
}

func (c *ArchetypesCmd) Run(g *Globals) error {
	logger := g.Logger()
	cards, err := g.Cards(logger)
	if err != nil {
		return err
	}

	var analyses []archetype.Analysis
	if c.Pair == "" {
		analyses = archetype.AnalyzeAll(cards)
	} else {
		p, ok := archetype.PairByID(strings.ToUpper(c.Pair))
		if !ok {
			return fmt.Errorf("unknown colour pair %q", c.Pair)
		}
		analyses = []archetype.Analysis{archetype.Analyze(cards, p)}
	}

	for _, a := range analyses {
		fmt.Println(display.Archetype(a))
		if c.Cards {
			fmt.Println(display.Pool(a.OnColor))
		}
		fmt.Println()
	}
	return nil
}
