package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManaValue(t *testing.T) {
	tests := []struct {
		cost string
		want int
	}{
		{"", 0},
		{"{W}", 1},
		{"{2}{W}{W}", 4},
		{"{X}{R}", 1},
		{"{X}{X}{G}", 1},
		{"{10}", 10},
		{"{W/U}{W/U}", 2},
		{"{2/W}", 2},
		{"{B/P}", 1},
		{"{E}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			assert.Equal(t, tt.want, ManaValue(tt.cost))
		})
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want Class
	}{
		{"mono white", Card{Cost: "{1}{W}", Type: "Creature"}, ClassWhite},
		{"mono green", Card{Cost: "{G}{G}", Type: "Sorcery"}, ClassGreen},
		{"gold", Card{Cost: "{1}{U}{B}", Type: "Instant"}, ClassGold},
		{"hybrid is gold", Card{Cost: "{R/G}", Type: "Creature"}, ClassGold},
		{"artifact", Card{Cost: "{3}", Type: "Artifact — Equipment"}, ClassArtifact},
		{"land beats cost", Card{Cost: "", Type: "Land — Forest"}, ClassLand},
		{"colour indicator", Card{Cost: "", Type: "Creature — Werewolf", ColorIndicator: "g"}, ClassGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.Class())
		})
	}
}

func TestColors(t *testing.T) {
	c := Card{Cost: "{1}{G}{W}", Type: "Creature"}
	assert.Equal(t, []Color{White, Green}, c.Colors())
	assert.True(t, c.IsMulticolor())

	assert.Empty(t, Card{Cost: "{4}", Type: "Artifact"}.Colors())
	assert.Empty(t, Card{Type: "Basic Land — Island", ColorIndicator: "u"}.Colors())
}

func TestRarityText(t *testing.T) {
	for _, r := range Rarities {
		b, err := r.MarshalText()
		require.NoError(t, err)

		var got Rarity
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, r, got)
	}

	var r Rarity
	assert.Error(t, r.UnmarshalText([]byte("Special")))
}

func TestSortByRarity(t *testing.T) {
	pack := []Card{
		{Name: "Common1", Rarity: Common},
		{Name: "Rare1", Rarity: Rare},
		{Name: "Land1", Rarity: Land},
		{Name: "Uncommon1", Rarity: Uncommon},
		{Name: "Mythic1", Rarity: Mythic},
		{Name: "Common2", Rarity: Common},
	}

	sorted := SortByRarity(pack)
	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Mythic1", "Rare1", "Uncommon1", "Common1", "Common2", "Land1"}, names)
	assert.Equal(t, "Common1", pack[0].Name, "input must not be reordered")
}

func TestSort(t *testing.T) {
	cards := []Card{
		{Name: "Forest", Type: "Basic Land — Forest", Rarity: Land},
		{Name: "Golem", Cost: "{4}", Type: "Artifact Creature", Rarity: Common},
		{Name: "Bolt", Cost: "{R}", Type: "Instant", Rarity: Common},
		{Name: "Angel", Cost: "{3}{W}{W}", Type: "Creature", Rarity: Mythic},
		{Name: "Squire", Cost: "{1}{W}", Type: "Creature", Rarity: Common},
		{Name: "Charm", Cost: "{U}{R}", Type: "Instant", Rarity: Uncommon},
	}

	sorted := Sort(cards)
	var names []string
	for _, c := range sorted {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Angel", "Squire", "Bolt", "Charm", "Golem", "Forest"}, names)
}

func TestLoad(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		src := `[
			{"id": "C001", "name": "Grunt", "cost": "{R}", "type": "Creature — Goblin (1/1)", "rarity": "Common", "text": ["Haste"]},
			{"id": "D001", "name": "Day", "cost": "{1}{G}", "type": "Creature — Human", "rarity": "Uncommon", "hasBackFace": true},
			{"id": "D001", "name": "Night", "cost": "", "type": "Creature — Werewolf", "rarity": "Uncommon", "isBackFace": true, "colorIndicator": "g"}
		]`
		cat, err := Load(strings.NewReader(src))
		require.NoError(t, err)

		assert.Len(t, cat.All(), 3)
		assert.Equal(t, 2, cat.Len())

		day, ok := cat.ByID("D001")
		require.True(t, ok)
		assert.Equal(t, "Day", day.Name)

		night, ok := cat.BackFace(day)
		require.True(t, ok)
		assert.Equal(t, "Night", night.Name)
		assert.Equal(t, ClassGreen, night.Class())

		grunt, _ := cat.ByID("C001")
		_, ok = cat.BackFace(grunt)
		assert.False(t, ok)
	})

	t.Run("schema rejects unknown rarity", func(t *testing.T) {
		_, err := Load(strings.NewReader(`[{"id": "X", "name": "X", "cost": "", "type": "Land", "rarity": "Special"}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("schema rejects missing fields", func(t *testing.T) {
		_, err := Load(strings.NewReader(`[{"id": "X"}]`))
		assert.Error(t, err)
	})

	t.Run("duplicate front faces", func(t *testing.T) {
		src := `[
			{"id": "A", "name": "One", "cost": "", "type": "Land", "rarity": "Land"},
			{"id": "A", "name": "Two", "cost": "", "type": "Land", "rarity": "Land"}
		]`
		_, err := Load(strings.NewReader(src))
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestNewTestCatalog(t *testing.T) {
	cat := NewTestCatalog(WithBackFaces(2))
	assert.Equal(t, 212, cat.Len())
	assert.Len(t, cat.All(), 214)
	for _, c := range cat.FrontFaces() {
		assert.False(t, c.IsBackFace)
	}
}
