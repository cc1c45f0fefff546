package deckbuild

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/randutil"
)

func testPool() []card.Card {
	return []card.Card{
		{ID: "C1", Name: "Grunt", Cost: "{R}", Type: "Creature — Goblin", Rarity: card.Common},
		{ID: "C1", Name: "Grunt", Cost: "{R}", Type: "Creature — Goblin", Rarity: card.Common},
		{ID: "U1", Name: "Bolt", Cost: "{R}", Type: "Instant", Rarity: card.Uncommon},
		{ID: "R1", Name: "Dragon", Cost: "{4}{R}{R}", Type: "Creature — Dragon", Rarity: card.Rare},
		{ID: "L1", Name: "Ruins", Type: "Land", Rarity: card.Land},
		{ID: "A1", Name: "Rock", Cost: "", Type: "Artifact", Rarity: card.Common},
	}
}

func TestAddRemove(t *testing.T) {
	b := New(testPool(), nil, nil)

	assert.True(t, b.AddToDeck("C1"))
	assert.Len(t, b.MainDeck(), 1)
	assert.Len(t, b.Pool(), 5)

	assert.False(t, b.AddToDeck("missing"))
	assert.Len(t, b.Pool(), 5)

	assert.False(t, b.RemoveFromDeck(3))
	assert.False(t, b.RemoveFromDeck(-1))
	assert.True(t, b.RemoveFromDeck(0))
	assert.Empty(t, b.MainDeck())
	assert.Len(t, b.Pool(), 6)
	assert.Equal(t, "Grunt", b.Pool()[5].Name, "removed cards go to the end of the pool")
}

func TestConservation(t *testing.T) {
	pool := card.NewTestCatalog().FrontFaces()[:40]
	b := New(pool, nil, nil)
	rng := randutil.New(3)

	for i := 0; i < 500; i++ {
		if rng.IntN(2) == 0 {
			p := b.Pool()
			if len(p) > 0 {
				b.AddToDeck(p[rng.IntN(len(p))].ID)
			} else {
				b.AddToDeck("nope")
			}
		} else {
			b.RemoveFromDeck(rng.IntN(len(b.MainDeck()) + 2))
		}
		require.Equal(t, len(pool), len(b.Pool())+len(b.MainDeck()))
	}
}

func TestBasicLands(t *testing.T) {
	b := New(nil, nil, map[LandName]int{Island: 2, "Wastes": 4})
	assert.Equal(t, 2, b.BasicLands()[Island])
	_, ok := b.BasicLands()["Wastes"]
	assert.False(t, ok)

	assert.True(t, b.AddBasicLand(Forest))
	assert.False(t, b.AddBasicLand("Wastes"))
	assert.True(t, b.RemoveBasicLand(Island))
	assert.True(t, b.RemoveBasicLand(Island))
	assert.False(t, b.RemoveBasicLand(Island), "cannot go below zero")
	assert.Equal(t, 0, b.BasicLands()[Island])
	assert.Equal(t, 1, b.TotalMainCount())
}

func TestGroupedPool(t *testing.T) {
	b := New(testPool(), nil, nil)
	groups := b.GroupedPool()
	require.Len(t, groups, 5)
	assert.Equal(t, "Grunt", groups[0].Card.Name)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, []string{"C1", "C1"}, groups[0].IDs)
}

func TestDeckByManaValue(t *testing.T) {
	b := New(testPool(), nil, map[LandName]int{Mountain: 3})
	for _, id := range []string{"C1", "C1", "R1", "L1", "A1"} {
		require.True(t, b.AddToDeck(id))
	}

	buckets := b.DeckByManaValue()
	require.Len(t, buckets, len(Buckets))

	assert.Empty(t, buckets["2"])
	require.Len(t, buckets["0"], 1)
	assert.Equal(t, "Rock", buckets["0"][0].Card.Name)

	require.Len(t, buckets["1"], 1)
	assert.Equal(t, 2, buckets["1"][0].Count)
	assert.Equal(t, []int{0, 1}, buckets["1"][0].DeckIndexes)

	require.Len(t, buckets[BucketFivePlus], 1)
	assert.Equal(t, "Dragon", buckets[BucketFivePlus][0].Card.Name)

	lands := buckets[BucketLands]
	require.Len(t, lands, 2)
	assert.Equal(t, "Ruins", lands[0].Card.Name)
	assert.Equal(t, []int{3}, lands[0].DeckIndexes)
	assert.Equal(t, "Basic Land — Mountain", lands[1].Card.Type)
	assert.Equal(t, 3, lands[1].Count)
	assert.Empty(t, lands[1].DeckIndexes)

	assert.Equal(t, 8, b.TotalMainCount())
}

func TestExport(t *testing.T) {
	b := New(testPool(), nil, map[LandName]int{Plains: 0, Mountain: 9, Island: 1})
	for _, id := range []string{"R1", "C1", "U1", "C1"} {
		require.True(t, b.AddToDeck(id))
	}
	want := "1 Dragon\n2 Grunt\n1 Bolt\n1 Island\n9 Mountain\n"
	assert.Equal(t, want, b.Export())

	var buf bytes.Buffer
	require.NoError(t, b.WriteDecklist(&buf))
	assert.Equal(t, want, buf.String())
}

func TestExportMergesDraftedBasics(t *testing.T) {
	forest := basicLandCards[Forest]
	b := New([]card.Card{forest}, nil, map[LandName]int{Forest: 2})
	require.True(t, b.AddToDeck("FO"))
	assert.Equal(t, "3 Forest\n", b.Export())
}

func TestStateRoundTrip(t *testing.T) {
	b := New(testPool(), nil, map[LandName]int{Swamp: 4})
	b.AddToDeck("R1")

	restored := FromState(b.State())
	assert.Equal(t, b.Pool(), restored.Pool())
	assert.Equal(t, b.MainDeck(), restored.MainDeck())
	assert.Equal(t, b.BasicLands(), restored.BasicLands())
}

func TestBasicLandCards(t *testing.T) {
	cards := BasicLandCards()
	require.Len(t, cards, 5)
	ids := map[string]LandName{"PL": Plains, "IS": Island, "SW": Swamp, "MO": Mountain, "FO": Forest}
	for id, name := range ids {
		c := cards[name]
		assert.Equal(t, id, c.ID)
		assert.True(t, c.IsBasicLand())
		assert.Equal(t, card.ClassLand, c.Class())
	}

	name, ok := ParseLandName("g")
	assert.True(t, ok)
	assert.Equal(t, Forest, name)
	name, ok = ParseLandName("swamp")
	assert.True(t, ok)
	assert.Equal(t, Swamp, name)
	_, ok = ParseLandName("wastes")
	assert.False(t, ok)
}
