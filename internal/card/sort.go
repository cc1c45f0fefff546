package card

import (
	"cmp"
	"slices"
)

// rarityRank orders rarer cards first.
var rarityRank = map[Rarity]int{Mythic: 0, Rare: 1, Uncommon: 2, Common: 3, Land: 4}

// identityRank places colourless after gold and lands last.
func identityRank(c Card) int {
	switch c.Class() {
	case ClassLand:
		return 7
	case ClassArtifact:
		return 6
	case ClassGold:
		return 5
	default:
		return int(c.Class())
	}
}

// Sort returns a copy of cards ordered by colour identity, rarity, mana
// value and name. This is the gallery order.
func Sort(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b Card) int {
		return cmp.Or(
			cmp.Compare(identityRank(a), identityRank(b)),
			cmp.Compare(rarityRank[a.Rarity], rarityRank[b.Rarity]),
			cmp.Compare(a.ManaValue(), b.ManaValue()),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}

// SortByRarity returns a copy of cards with rarer cards first, keeping the
// original order within a rarity.
func SortByRarity(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b Card) int {
		return cmp.Compare(rarityRank[a.Rarity], rarityRank[b.Rarity])
	})
	return out
}

// SortByCurve returns a copy of cards ordered by mana value, then by colour
// class name. This is the order a drafted pool is reviewed in.
func SortByCurve(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b Card) int {
		return cmp.Or(
			cmp.Compare(a.ManaValue(), b.ManaValue()),
			cmp.Compare(a.Class().String(), b.Class().String()),
		)
	})
	return out
}
