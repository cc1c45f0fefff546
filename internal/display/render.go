package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/draftsim/internal/archetype"
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/playtest"
)

var rarityLetters = map[card.Rarity]string{
	card.Common:   "C",
	card.Uncommon: "U",
	card.Rare:     "R",
	card.Mythic:   "M",
	card.Land:     "L",
}

// Card renders one card as "Name {cost} [class] R"
func Card(c card.Card) string {
	parts := []string{RarityStyle(c.Rarity).Render(c.Name)}
	if c.Cost != "" {
		parts = append(parts, InfoStyle.Render(c.Cost))
	}
	parts = append(parts,
		ClassStyle(c.Class()).Render("["+c.Class().String()+"]"),
		InfoStyle.Render(rarityLetters[c.Rarity]),
	)
	return strings.Join(parts, " ")
}

// Pack renders a numbered pack listing. selected marks one line; pass -1 for
// none.
func Pack(cards []card.Card, selected int) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(empty pack)")
	}
	var b strings.Builder
	for i, c := range cards {
		marker := "  "
		line := fmt.Sprintf("%2d. %s", i+1, Card(c))
		if i == selected {
			marker = SelectedStyle.Render("> ")
		}
		b.WriteString(marker + line)
		if i < len(cards)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// DraftStatus renders the round, pick and passing direction of a session
func DraftStatus(s *draft.Session) string {
	switch s.Phase() {
	case draft.Active:
		return HeaderStyle.Render(fmt.Sprintf("Round %d/%d  Pick %d  Passing %s",
			s.Round(), s.Rounds(), s.Pick(), s.PassDirection()))
	case draft.ReviewingPool:
		return HeaderStyle.Render(fmt.Sprintf("Draft complete  %d cards", len(s.HumanPool())))
	default:
		return HeaderStyle.Render("Draft " + strings.ToLower(s.Phase().String()))
	}
}

// Pool renders a pool grouped by mana value
func Pool(cards []card.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(no cards)")
	}
	var b strings.Builder
	b.WriteString(SectionStyle.Render(fmt.Sprintf("Pool (%d)", len(cards))))
	current := -1
	for _, c := range card.SortByCurve(cards) {
		if mv := c.ManaValue(); mv != current {
			current = mv
			b.WriteString("\n" + InfoStyle.Render(fmt.Sprintf("-- %d --", mv)))
		}
		b.WriteString("\n  " + Card(c))
	}
	return b.String()
}

// Deck renders the main deck in mana value buckets followed by the
// sideboard.
func Deck(builder *deckbuild.Builder) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(fmt.Sprintf("Main deck (%d)", builder.TotalMainCount())))

	buckets := builder.DeckByManaValue()
	for _, name := range deckbuild.Buckets {
		groups := buckets[name]
		if len(groups) == 0 {
			continue
		}
		b.WriteString("\n" + InfoStyle.Render(fmt.Sprintf("-- %s --", name)))
		for _, g := range groups {
			b.WriteString(fmt.Sprintf("\n  %dx %s", g.Count, Card(g.Card)))
		}
	}

	pool := builder.GroupedPool()
	b.WriteString("\n\n" + SectionStyle.Render(fmt.Sprintf("Sideboard (%d)", len(builder.Pool()))))
	for _, g := range pool {
		b.WriteString(fmt.Sprintf("\n  %dx %s", g.Count, Card(g.Card)))
	}
	return b.String()
}

// Zones renders every playtest zone side by side
func Zones(e *playtest.Engine) string {
	if !e.Active() {
		return InfoStyle.Render("(no playtest running)")
	}

	status := fmt.Sprintf("Mulligans: %d", e.MulliganCount())
	switch {
	case e.NeedsToBottom():
		status += "  " + WarningStyle.Render(fmt.Sprintf("Put %d on the bottom", e.CardsToBottomRemaining()))
	case !e.HasKept():
		status += "  " + WarningStyle.Render("Keep or mulligan?")
	}

	zones := []playtest.Zone{playtest.Hand, playtest.Battlefield, playtest.Graveyard}
	cols := make([]string, 0, len(zones))
	for _, z := range zones {
		cols = append(cols, BoxStyle.Render(zoneColumn(z, e.Zone(z))))
	}

	header := SectionStyle.Render(fmt.Sprintf("Library: %d", e.LibrarySize())) + "  " + status
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func zoneColumn(z playtest.Zone, cards []playtest.Instance) string {
	lines := []string{SectionStyle.Render(fmt.Sprintf("%s (%d)", z, len(cards)))}
	for i, inst := range cards {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, RarityStyle(inst.Card.Rarity).Render(inst.Card.Name)))
	}
	return strings.Join(lines, "\n")
}

// Archetype renders an archetype analysis summary
func Archetype(a archetype.Analysis) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s  %s (%s)", a.Pair.ID, a.Pair.Name, a.Pair.GuildName)))
	b.WriteString(fmt.Sprintf("\nCards: %d  On colour: %d", len(a.Cards), len(a.OnColor)))

	b.WriteString("\n" + SectionStyle.Render("Curve"))
	for _, bucket := range archetype.CurveBuckets {
		n := a.Curve[bucket]
		b.WriteString(fmt.Sprintf("\n  %-3s %s %d", bucket, strings.Repeat("#", n), n))
	}

	if len(a.Keywords) > 0 {
		b.WriteString("\n" + SectionStyle.Render("Keywords"))
		for _, k := range a.Keywords {
			b.WriteString(fmt.Sprintf("\n  %s: %d", k.Name, k.Count))
		}
	}
	if len(a.CreatureTypes) > 0 {
		b.WriteString("\n" + SectionStyle.Render("Creature types"))
		for _, k := range a.CreatureTypes {
			b.WriteString(fmt.Sprintf("\n  %s: %d", k.Name, k.Count))
		}
	}
	return b.String()
}
