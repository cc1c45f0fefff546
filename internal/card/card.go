// Package card defines the immutable card record the draft core works with,
// together with the colour and mana value rules derived from it.
package card

import (
	"fmt"
	"strings"
)

// Rarity is the printed rarity of a card. Basic and common lands use Land.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Mythic
	Land
)

var rarityNames = [...]string{"Common", "Uncommon", "Rare", "Mythic", "Land"}

// Rarities lists every rarity in bucket order.
var Rarities = []Rarity{Land, Common, Uncommon, Rare, Mythic}

// String returns the catalog spelling of the rarity
func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "Unknown"
	}
	return rarityNames[r]
}

// ParseRarity parses the catalog spelling of a rarity, case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if strings.EqualFold(name, s) {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Card is a single card face from the catalog.
type Card struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Cost           string   `json:"cost"`
	Type           string   `json:"type"`
	Rarity         Rarity   `json:"rarity"`
	Text           []string `json:"text,omitempty"`
	IsBackFace     bool     `json:"isBackFace,omitempty"`
	HasBackFace    bool     `json:"hasBackFace,omitempty"`
	ColorIndicator string   `json:"colorIndicator,omitempty"`
}

// String returns "Name (ID)"
func (c Card) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// IsLand reports whether the type line names a land.
func (c Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.Type), "land")
}

// IsBasicLand reports whether the card is a basic land.
func (c Card) IsBasicLand() bool {
	return strings.Contains(strings.ToLower(c.Type), "basic land")
}

// IsCreature reports whether the type line names a creature.
func (c Card) IsCreature() bool {
	return strings.Contains(strings.ToLower(c.Type), "creature")
}

// Colors returns the card's colours in WUBRG order.
func (c Card) Colors() []Color {
	return c.colors()
}

// Class returns the colour class used for grouping and sorting.
func (c Card) Class() Class {
	if c.IsLand() {
		return ClassLand
	}
	cols := c.colors()
	switch len(cols) {
	case 0:
		return ClassArtifact
	case 1:
		return Class(cols[0])
	default:
		return ClassGold
	}
}

// IsMulticolor reports whether the card carries more than one colour.
func (c Card) IsMulticolor() bool {
	return len(c.colors()) > 1
}

// ManaValue returns the converted mana cost of the card.
func (c Card) ManaValue() int {
	return ManaValue(c.Cost)
}
