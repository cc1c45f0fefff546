// Package display renders draft objects for the terminal with lipgloss.
package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/draftsim/internal/card"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

var rarityStyles = map[card.Rarity]lipgloss.Style{
	card.Common:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	card.Uncommon: lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C5DA")),
	card.Rare:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	card.Mythic:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true),
	card.Land:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A0826D")),
}

var classStyles = map[card.Class]lipgloss.Style{
	card.ClassWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F6D8")),
	card.ClassBlue:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4A90E2")),
	card.ClassBlack:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9B8AA6")),
	card.ClassRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	card.ClassGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB760")),
	card.ClassGold:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
	card.ClassArtifact: lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
	card.ClassLand:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A0826D")),
}

// RarityStyle returns the style used for a card name of the given rarity
func RarityStyle(r card.Rarity) lipgloss.Style {
	if s, ok := rarityStyles[r]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// ClassStyle returns the style used for a colour class tag
func ClassStyle(c card.Class) lipgloss.Style {
	if s, ok := classStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// DisableColor switches all rendering to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
