package deckbuild

import (
	"strings"

	"github.com/lox/draftsim/internal/card"
)

// LandName names one of the five basic lands
type LandName string

const (
	Plains   LandName = "Plains"
	Island   LandName = "Island"
	Swamp    LandName = "Swamp"
	Mountain LandName = "Mountain"
	Forest   LandName = "Forest"
)

// BasicLandNames lists the basics in WUBRG order.
var BasicLandNames = []LandName{Plains, Island, Swamp, Mountain, Forest}

var basicLandCards = map[LandName]card.Card{
	Plains:   {ID: "PL", Name: "Plains", Type: "Basic Land — Plains", Rarity: card.Land, ColorIndicator: "w"},
	Island:   {ID: "IS", Name: "Island", Type: "Basic Land — Island", Rarity: card.Land, ColorIndicator: "u"},
	Swamp:    {ID: "SW", Name: "Swamp", Type: "Basic Land — Swamp", Rarity: card.Land, ColorIndicator: "b"},
	Mountain: {ID: "MO", Name: "Mountain", Type: "Basic Land — Mountain", Rarity: card.Land, ColorIndicator: "r"},
	Forest:   {ID: "FO", Name: "Forest", Type: "Basic Land — Forest", Rarity: card.Land, ColorIndicator: "g"},
}

// BasicLandCards returns the synthetic records used for basic lands.
func BasicLandCards() map[LandName]card.Card {
	out := make(map[LandName]card.Card, len(basicLandCards))
	for k, v := range basicLandCards {
		out[k] = v
	}
	return out
}

// BasicLandCard returns the record for one basic land.
func BasicLandCard(name LandName) (card.Card, bool) {
	c, ok := basicLandCards[name]
	return c, ok
}

// ParseLandName accepts a basic land name in any case, or its colour letter.
func ParseLandName(s string) (LandName, bool) {
	for _, name := range BasicLandNames {
		if strings.EqualFold(string(name), s) {
			return name, true
		}
	}
	if col, ok := card.ParseColor(s); ok {
		return BasicLandNames[col], true
	}
	return "", false
}
