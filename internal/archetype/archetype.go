// Package archetype describes the ten two-colour archetypes and summarises
// which catalog cards support each one.
package archetype

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/lox/draftsim/internal/card"
)

// Pair is a two-colour archetype.
type Pair struct {
	ID        string
	Colors    []card.Color
	Name      string
	GuildName string
}

// Pairs lists the ten colour pairs, allied first.
var Pairs = []Pair{
	{ID: "WU", Colors: []card.Color{card.White, card.Blue}, Name: "System Infiltration", GuildName: "Azorius"},
	{ID: "UB", Colors: []card.Color{card.Blue, card.Black}, Name: "Agent Control", GuildName: "Dimir"},
	{ID: "BR", Colors: []card.Color{card.Black, card.Red}, Name: "Sentinel Aggro", GuildName: "Rakdos"},
	{ID: "RG", Colors: []card.Color{card.Red, card.Green}, Name: "Bio-Electric Power", GuildName: "Gruul"},
	{ID: "GW", Colors: []card.Color{card.Green, card.White}, Name: "Zion Resistance", GuildName: "Selesnya"},
	{ID: "WB", Colors: []card.Color{card.White, card.Black}, Name: "Lifesucking Exiles", GuildName: "Orzhov"},
	{ID: "UR", Colors: []card.Color{card.Blue, card.Red}, Name: "Code Modification", GuildName: "Izzet"},
	{ID: "BG", Colors: []card.Color{card.Black, card.Green}, Name: "Harvester Operations", GuildName: "Golgari"},
	{ID: "RW", Colors: []card.Color{card.Red, card.White}, Name: "Armed and Ready", GuildName: "Boros"},
	{ID: "GU", Colors: []card.Color{card.Green, card.Blue}, Name: "System Mastery", GuildName: "Simic"},
}

// PairByID finds a pair by its id, in either colour order.
func PairByID(id string) (Pair, bool) {
	id = strings.ToUpper(id)
	for _, p := range Pairs {
		if p.ID == id || (len(id) == 2 && p.ID == string([]byte{id[1], id[0]})) {
			return p, true
		}
	}
	return Pair{}, false
}

type keyword struct {
	name    string
	pattern *regexp.Regexp
}

var trackedKeywords = []keyword{
	{"Digital", regexp.MustCompile(`(?i)\bDigital\b`)},
	{"Jack-in", regexp.MustCompile(`(?i)\bJack-in\b`)},
	{"Eject", regexp.MustCompile(`(?i)\bEject\b`)},
	{"Override", regexp.MustCompile(`(?i)\bOverride\b`)},
	{"Energy", regexp.MustCompile(`(?i)\{E\}`)},
	{"Flying", regexp.MustCompile(`(?i)\bFlying\b`)},
	{"Vigilance", regexp.MustCompile(`(?i)\bVigilance\b`)},
	{"Lifelink", regexp.MustCompile(`(?i)\bLifelink\b`)},
	{"Haste", regexp.MustCompile(`(?i)\bHaste\b`)},
	{"Trample", regexp.MustCompile(`(?i)\bTrample\b`)},
	{"Flash", regexp.MustCompile(`(?i)\bFlash\b`)},
	{"Menace", regexp.MustCompile(`(?i)\bMenace\b`)},
}

// TrackedKeywords returns the keyword names counted by Analyze, in order.
func TrackedKeywords() []string {
	names := make([]string, len(trackedKeywords))
	for i, k := range trackedKeywords {
		names[i] = k.name
	}
	return names
}

// CurveBuckets are the mana curve columns.
var CurveBuckets = []string{"0", "1", "2", "3", "4", "5", "6+"}

// MaxCreatureTypes caps the creature type breakdown.
const MaxCreatureTypes = 6

// Count is a named tally.
type Count struct {
	Name  string
	Count int
}

// Analysis summarises the cards supporting one pair.
type Analysis struct {
	Pair          Pair
	Cards         []card.Card
	OnColor       []card.Card
	Keywords      []Count
	Curve         map[string]int
	CreatureTypes []Count
}

// BelongsToPair reports whether a card can be played in the pair. Colourless
// cards fit every pair except basic lands, which fit none.
func BelongsToPair(c card.Card, p Pair) bool {
	colors := c.Colors()
	if len(colors) == 0 {
		return !c.IsBasicLand()
	}
	for _, col := range colors {
		if !slices.Contains(p.Colors, col) {
			return false
		}
	}
	return true
}

// Analyze summarises the front faces of cards for the pair.
func Analyze(cards []card.Card, p Pair) Analysis {
	a := Analysis{Pair: p}
	for _, c := range cards {
		if c.IsBackFace || !BelongsToPair(c, p) {
			continue
		}
		a.Cards = append(a.Cards, c)
		if len(c.Colors()) > 0 {
			a.OnColor = append(a.OnColor, c)
		}
	}
	a.Keywords = KeywordCounts(a.Cards)
	a.Curve = ManaCurve(a.Cards)
	a.CreatureTypes = CreatureTypes(a.Cards)
	return a
}

// AnalyzeAll runs Analyze for every pair in order.
func AnalyzeAll(cards []card.Card) []Analysis {
	out := make([]Analysis, len(Pairs))
	for i, p := range Pairs {
		out[i] = Analyze(cards, p)
	}
	return out
}

// KeywordCounts counts the cards whose text or type line mentions each
// tracked keyword. Keywords nobody mentions are left out.
func KeywordCounts(cards []card.Card) []Count {
	var out []Count
	for _, k := range trackedKeywords {
		n := 0
		for _, c := range cards {
			text := strings.Join(append(slices.Clone(c.Text), c.Type), " ")
			if k.pattern.MatchString(text) {
				n++
			}
		}
		if n > 0 {
			out = append(out, Count{Name: k.name, Count: n})
		}
	}
	return out
}

// ManaCurve counts non-land cards by mana value.
func ManaCurve(cards []card.Card) map[string]int {
	curve := make(map[string]int, len(CurveBuckets))
	for _, b := range CurveBuckets {
		curve[b] = 0
	}
	for _, c := range cards {
		if c.IsLand() {
			continue
		}
		mv := c.ManaValue()
		if mv >= 6 {
			curve["6+"]++
		} else {
			curve[CurveBuckets[mv]]++
		}
	}
	return curve
}

var subtypeLine = regexp.MustCompile(`—\s*(.+)`)

// CreatureTypes returns the most common creature subtypes, highest count
// first. Trailing power/toughness is ignored.
func CreatureTypes(cards []card.Card) []Count {
	counts := make(map[string]int)
	var order []string
	for _, c := range cards {
		if !c.IsCreature() {
			continue
		}
		m := subtypeLine.FindStringSubmatch(c.Type)
		if m == nil {
			continue
		}
		for _, sub := range strings.Fields(m[1]) {
			if strings.HasPrefix(sub, "(") || len(sub) <= 2 {
				continue
			}
			if l := strings.ToLower(sub); l == "and" || l == "the" {
				continue
			}
			if counts[sub] == 0 {
				order = append(order, sub)
			}
			counts[sub]++
		}
	}

	out := make([]Count, len(order))
	for i, name := range order {
		out[i] = Count{Name: name, Count: counts[name]}
	}
	slices.SortStableFunc(out, func(a, b Count) int { return cmp.Compare(b.Count, a.Count) })
	if len(out) > MaxCreatureTypes {
		out = out[:MaxCreatureTypes]
	}
	return out
}
