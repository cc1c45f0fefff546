package card

import (
	"strings"
)

// Color is one of the five base colours. The numeric order is the fixed
// WUBRG priority used wherever colours tie.
type Color int

const (
	White Color = iota
	Blue
	Black
	Red
	Green
)

// AllColors lists the colours in WUBRG order.
var AllColors = []Color{White, Blue, Black, Red, Green}

var colorSymbols = [...]string{"W", "U", "B", "R", "G"}

// String returns the mana symbol letter
func (c Color) String() string {
	if c < 0 || int(c) >= len(colorSymbols) {
		return "?"
	}
	return colorSymbols[c]
}

// ParseColor parses a single colour letter (either case).
func ParseColor(s string) (Color, bool) {
	for i, sym := range colorSymbols {
		if strings.EqualFold(sym, s) {
			return Color(i), true
		}
	}
	return 0, false
}

// Class is a card's colour class: one of the five colours, or Gold,
// Artifact (colourless) or Land.
type Class int

const (
	ClassWhite Class = iota
	ClassBlue
	ClassBlack
	ClassRed
	ClassGreen
	ClassGold
	ClassArtifact
	ClassLand
)

var classNames = [...]string{"W", "U", "B", "R", "G", "Gold", "Artifact", "Land"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "Unknown"
	}
	return classNames[c]
}

// colors scans the cost for colour symbols, including hybrid and phyrexian
// forms. The colour indicator is used only when the cost has none.
func (c Card) colors() []Color {
	if c.IsLand() {
		return nil
	}
	var found [5]bool
	for _, tok := range costTokens(c.Cost) {
		for i, sym := range colorSymbols {
			if strings.Contains(tok, sym) {
				found[i] = true
			}
		}
	}
	if found == [5]bool{} {
		for i, sym := range colorSymbols {
			if strings.Contains(strings.ToUpper(c.ColorIndicator), sym) {
				found[i] = true
			}
		}
	}
	var cols []Color
	for i, ok := range found {
		if ok {
			cols = append(cols, Color(i))
		}
	}
	return cols
}

// costTokens returns the inner text of every {...} symbol in a cost string.
func costTokens(cost string) []string {
	var toks []string
	for {
		open := strings.IndexByte(cost, '{')
		if open < 0 {
			return toks
		}
		end := strings.IndexByte(cost[open:], '}')
		if end < 0 {
			return toks
		}
		toks = append(toks, cost[open+1:open+end])
		cost = cost[open+end+1:]
	}
}

// ManaValue computes the mana value of a cost string. Numeric symbols add
// their leading number, X symbols add nothing and every other symbol adds one.
func ManaValue(cost string) int {
	total := 0
	for _, tok := range costTokens(cost) {
		if n, ok := leadingInt(tok); ok {
			total += n
			continue
		}
		if strings.Contains(tok, "X") {
			continue
		}
		total++
	}
	return total
}

func leadingInt(s string) (int, bool) {
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}
