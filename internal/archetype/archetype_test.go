package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/draftsim/internal/card"
)

var sample = []card.Card{
	{ID: "1", Name: "Skyguard", Cost: "{1}{W}", Type: "Creature — Human Soldier (2/1)", Rarity: card.Common, Text: []string{"Flying"}},
	{ID: "2", Name: "Hacker", Cost: "{U}", Type: "Creature — Human Hacker (1/1)", Rarity: card.Common, Text: []string{"Jack-in {2}"}},
	{ID: "3", Name: "Agent", Cost: "{2}{U}{B}", Type: "Creature — Digital Agent (3/3)", Rarity: card.Rare, Text: []string{"Menace"}},
	{ID: "4", Name: "Gun", Cost: "{2}", Type: "Artifact — Equipment", Rarity: card.Common, Text: []string{"Pay {E}{E}: Equipped creature gets +2/+0."}},
	{ID: "5", Name: "Plains", Type: "Basic Land — Plains", Rarity: card.Land},
	{ID: "6", Name: "Hovel", Type: "Land", Rarity: card.Land},
	{ID: "7", Name: "Juggernaut", Cost: "{6}{W}", Type: "Creature — Human Machine (7/7)", Rarity: card.Mythic, Text: []string{"Trample", "Flying"}},
	{ID: "8", Name: "Fire", Cost: "{R}", Type: "Instant", Rarity: card.Common, Text: []string{"Haste"}},
	{ID: "7", Name: "Back", Cost: "", Type: "Creature — Human", Rarity: card.Mythic, IsBackFace: true, ColorIndicator: "w"},
}

func TestPairs(t *testing.T) {
	require.Len(t, Pairs, 10)
	seen := make(map[string]bool)
	for _, p := range Pairs {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
		require.Len(t, p.Colors, 2)
		assert.Equal(t, p.ID, p.Colors[0].String()+p.Colors[1].String())
	}

	p, ok := PairByID("uw")
	require.True(t, ok)
	assert.Equal(t, "Azorius", p.GuildName)
	_, ok = PairByID("WW")
	assert.False(t, ok)
}

func TestBelongsToPair(t *testing.T) {
	wu, _ := PairByID("WU")
	ub, _ := PairByID("UB")

	assert.True(t, BelongsToPair(sample[0], wu))
	assert.True(t, BelongsToPair(sample[1], wu))
	assert.False(t, BelongsToPair(sample[2], wu), "gold card needs both colours in pair")
	assert.True(t, BelongsToPair(sample[2], ub))
	assert.True(t, BelongsToPair(sample[3], wu), "artifacts fit everywhere")
	assert.False(t, BelongsToPair(sample[4], wu), "basic lands fit nowhere")
	assert.True(t, BelongsToPair(sample[5], ub), "non-basic colourless land fits")
}

func TestAnalyze(t *testing.T) {
	wu, _ := PairByID("WU")
	a := Analyze(sample, wu)

	var names []string
	for _, c := range a.Cards {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Skyguard", "Hacker", "Gun", "Hovel", "Juggernaut"}, names)
	assert.Len(t, a.OnColor, 3)

	assert.Equal(t, []Count{
		{Name: "Jack-in", Count: 1},
		{Name: "Energy", Count: 1},
		{Name: "Flying", Count: 2},
		{Name: "Trample", Count: 1},
	}, a.Keywords)

	assert.Equal(t, map[string]int{"0": 0, "1": 1, "2": 2, "3": 0, "4": 0, "5": 0, "6+": 1}, a.Curve)

	require.NotEmpty(t, a.CreatureTypes)
	assert.Equal(t, Count{Name: "Human", Count: 3}, a.CreatureTypes[0])
	for _, ct := range a.CreatureTypes {
		assert.NotContains(t, ct.Name, "(")
	}
}

func TestCreatureTypesCap(t *testing.T) {
	var cards []card.Card
	for _, sub := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel"} {
		cards = append(cards, card.Card{Name: sub, Type: "Creature — " + sub})
	}
	cards = append(cards, card.Card{Name: "x", Type: "Creature — Hotel"})
	types := CreatureTypes(cards)
	require.Len(t, types, MaxCreatureTypes)
	assert.Equal(t, "Hotel", types[0].Name)
	assert.Equal(t, "Alpha", types[1].Name)
}

func TestAnalyzeAll(t *testing.T) {
	all := AnalyzeAll(card.NewTestCatalog().FrontFaces())
	require.Len(t, all, 10)
	for _, a := range all {
		// mono cards cycle evenly, so every pair gets two colours' worth
		assert.Equal(t, 2*200/5, len(a.OnColor), a.Pair.ID)
	}
}

func TestTrackedKeywords(t *testing.T) {
	assert.Len(t, TrackedKeywords(), 12)
}
