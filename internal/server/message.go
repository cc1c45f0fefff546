package server

import (
	"encoding/json"
	"time"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
	"github.com/lox/draftsim/internal/playtest"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type PickCardData struct {
	CardID string `json:"cardId"`
}

type DeckCardData struct {
	CardID string `json:"cardId"`
}

type DeckIndexData struct {
	Index int `json:"index"`
}

type LandData struct {
	Land string `json:"land"`
}

type PlaytestActionData struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DraftStateData struct {
	SessionID string      `json:"sessionId"`
	Phase     string      `json:"phase"`
	Round     int         `json:"round"`
	Pick      int         `json:"pick"`
	Rounds    int         `json:"rounds"`
	Seats     int         `json:"seats"`
	Direction string      `json:"direction"`
	PackID    string      `json:"packId,omitempty"`
	Pool      []card.Card `json:"pool"`
}

type PackContentData struct {
	PackID      string      `json:"packId"`
	Round       int         `json:"round"`
	Pick        int         `json:"pick"`
	Cards       []card.Card `json:"cards"`
	TimeLimitMs int64       `json:"timeLimitMs,omitempty"`
}

type GroupData struct {
	Card        card.Card `json:"card"`
	Count       int       `json:"count"`
	IDs         []string  `json:"ids,omitempty"`
	DeckIndexes []int     `json:"deckIndexes,omitempty"`
}

type DeckStateData struct {
	PoolType   string                 `json:"poolType"`
	MainCount  int                    `json:"mainCount"`
	Buckets    map[string][]GroupData `json:"buckets"`
	Sideboard  []GroupData            `json:"sideboard"`
	BasicLands map[string]int         `json:"basicLands"`
}

type DecklistData struct {
	Text string `json:"text"`
}

type PlaytestStateData struct {
	Active        bool                `json:"active"`
	Applied       bool                `json:"applied"`
	MulliganCount int                 `json:"mulliganCount"`
	Kept          bool                `json:"kept"`
	ToBottom      int                 `json:"toBottom"`
	Library       int                 `json:"library"`
	Hand          []playtest.Instance `json:"hand"`
	Battlefield   []playtest.Instance `json:"battlefield"`
	Graveyard     []playtest.Instance `json:"graveyard"`
}

func groupData(groups []deckbuild.Group) []GroupData {
	out := make([]GroupData, len(groups))
	for i, g := range groups {
		out[i] = GroupData{Card: g.Card, Count: g.Count, IDs: g.IDs, DeckIndexes: g.DeckIndexes}
	}
	return out
}

func deckState(poolType string, b *deckbuild.Builder) DeckStateData {
	buckets := make(map[string][]GroupData, len(deckbuild.Buckets))
	for name, groups := range b.DeckByManaValue() {
		buckets[name] = groupData(groups)
	}
	lands := make(map[string]int, len(deckbuild.BasicLandNames))
	for name, n := range b.BasicLands() {
		lands[string(name)] = n
	}
	return DeckStateData{
		PoolType:   poolType,
		MainCount:  b.TotalMainCount(),
		Buckets:    buckets,
		Sideboard:  groupData(b.GroupedPool()),
		BasicLands: lands,
	}
}

func playtestState(e *playtest.Engine, applied bool) PlaytestStateData {
	return PlaytestStateData{
		Active:        e.Active(),
		Applied:       applied,
		MulliganCount: e.MulliganCount(),
		Kept:          e.HasKept(),
		ToBottom:      e.CardsToBottomRemaining(),
		Library:       e.LibrarySize(),
		Hand:          e.Zone(playtest.Hand),
		Battlefield:   e.Zone(playtest.Battlefield),
		Graveyard:     e.Zone(playtest.Graveyard),
	}
}
