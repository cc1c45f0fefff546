package card

import "fmt"

// TestCatalogOption configures test catalog creation
type TestCatalogOption func(*testCatalogBuilder)

type testCatalogBuilder struct {
	counts    map[Rarity]int
	gold      int
	backFaces int
}

// WithRarityCount sets how many cards of a rarity the catalog holds
func WithRarityCount(r Rarity, n int) TestCatalogOption {
	return func(b *testCatalogBuilder) { b.counts[r] = n }
}

// WithGoldCards adds n two-colour uncommons
func WithGoldCards(n int) TestCatalogOption {
	return func(b *testCatalogBuilder) { b.gold = n }
}

// WithBackFaces adds n double-faced commons with their back faces
func WithBackFaces(n int) TestCatalogOption {
	return func(b *testCatalogBuilder) { b.backFaces = n }
}

// NewTestCatalog builds a synthetic catalog of mono-coloured creatures
// cycling through WUBRG, plus colourless lands. Defaults: 10 lands,
// 100 commons, 60 uncommons, 30 rares, 10 mythics. Tests use it, and the CLI
// drafts from it when no catalog file is given. The generated ids are unique,
// so NewCatalog cannot fail here.
func NewTestCatalog(opts ...TestCatalogOption) *Catalog {
	b := &testCatalogBuilder{counts: map[Rarity]int{
		Land:     10,
		Common:   100,
		Uncommon: 60,
		Rare:     30,
		Mythic:   10,
	}}
	for _, opt := range opts {
		opt(b)
	}

	var cards []Card
	for _, r := range Rarities {
		for i := 0; i < b.counts[r]; i++ {
			cards = append(cards, testCard(r, i))
		}
	}
	for i := 0; i < b.gold; i++ {
		a := AllColors[i%5]
		z := AllColors[(i+1)%5]
		cards = append(cards, Card{
			ID:     fmt.Sprintf("GLD%03d", i),
			Name:   fmt.Sprintf("Gold %s%s %d", a, z, i),
			Cost:   fmt.Sprintf("{1}{%s}{%s}", a, z),
			Type:   "Creature — Human Soldier (2/2)",
			Rarity: Uncommon,
		})
	}
	for i := 0; i < b.backFaces; i++ {
		id := fmt.Sprintf("DFC%03d", i)
		cards = append(cards,
			Card{ID: id, Name: fmt.Sprintf("Front %d", i), Cost: "{1}{G}", Type: "Creature — Wolf (2/2)", Rarity: Common, HasBackFace: true},
			Card{ID: id, Name: fmt.Sprintf("Back %d", i), Type: "Creature — Werewolf (4/4)", Rarity: Common, IsBackFace: true, ColorIndicator: "g"},
		)
	}

	catalog, err := NewCatalog(cards)
	if err != nil {
		panic(err)
	}
	return catalog
}

func testCard(r Rarity, i int) Card {
	if r == Land {
		return Card{
			ID:     fmt.Sprintf("L%03d", i),
			Name:   fmt.Sprintf("Test Land %d", i),
			Type:   "Land",
			Rarity: Land,
		}
	}
	color := AllColors[i%5]
	return Card{
		ID:     fmt.Sprintf("%c%03d", r.String()[0], i),
		Name:   fmt.Sprintf("Test %s %d", r, i),
		Cost:   fmt.Sprintf("{%d}{%s}", i%4, color),
		Type:   "Creature — Human (2/2)",
		Rarity: r,
	}
}
