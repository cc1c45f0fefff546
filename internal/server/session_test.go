package server

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/storage"
)

// recordingSender keeps every message a session sends
type recordingSender struct {
	mu   sync.Mutex
	msgs []*Message
}

func (r *recordingSender) SendMessage(msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

// last decodes the most recent message of type t into v
func (r *recordingSender) last(t *testing.T, typ MessageType, v any) bool {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Type == typ {
			if v != nil {
				require.NoError(t, json.Unmarshal(r.msgs[i].Data, v))
			}
			return true
		}
	}
	return false
}

func (r *recordingSender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

func (r *recordingSender) count(typ MessageType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.Type == typ {
			n++
		}
	}
	return n
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *recordingSender) {
	t.Helper()
	opts = append([]Option{WithSeed(42), WithClock(quartz.NewMock(t))}, opts...)
	cfg := newConfig(opts)
	sender := &recordingSender{}
	s := NewSession("test-session", cfg.Seed, cfg, card.NewTestCatalog().All(), sender, testLogger())
	t.Cleanup(s.Close)
	return s, sender
}

func message(t *testing.T, typ MessageType, data any) *Message {
	t.Helper()
	msg, err := NewMessage(typ, data, time.Time{})
	require.NoError(t, err)
	return msg
}

func TestSessionDraftFlow(t *testing.T) {
	store := storage.NewMemoryStore()
	pools := storage.NewSavedPools(store, quartz.NewMock(t))
	s, sender := newTestSession(t, WithSavedPools(pools))
	ctx := context.Background()

	s.Handle(ctx, message(t, MessageTypeStartDraft, nil))

	var state DraftStateData
	require.True(t, sender.last(t, MessageTypeDraftState, &state))
	assert.Equal(t, "test-session", state.SessionID)
	assert.Equal(t, "active", state.Phase)
	assert.Equal(t, 1, state.Round)
	assert.Equal(t, "left", state.Direction)

	var pack PackContentData
	require.True(t, sender.last(t, MessageTypePackContent, &pack))
	assert.Len(t, pack.Cards, 13)
	assert.Zero(t, pack.TimeLimitMs)

	picks := 0
	for state.Phase == "active" {
		require.True(t, sender.last(t, MessageTypePackContent, &pack))
		s.Handle(ctx, message(t, MessageTypePickCard, PickCardData{CardID: pack.Cards[0].ID}))
		require.True(t, sender.last(t, MessageTypeDraftState, &state))
		picks++
	}

	assert.Equal(t, 39, picks)
	assert.Equal(t, "reviewing_pool", state.Phase)
	assert.Len(t, state.Pool, 39)

	var deck DeckStateData
	require.True(t, sender.last(t, MessageTypeDeckState, &deck))
	assert.Equal(t, "draft", deck.PoolType)
	assert.Zero(t, deck.MainCount)

	saved, err := pools.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved.Pool, 39)
	assert.Equal(t, storage.PoolDraft, saved.Type)
	assert.Equal(t, "test-session", saved.Metadata["session"])
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  func(t *testing.T) *Message
		code string
	}{
		{"pick without draft", func(t *testing.T) *Message {
			return message(t, MessageTypePickCard, PickCardData{CardID: "C001"})
		}, ErrCodeNoDraft},
		{"close without draft", func(t *testing.T) *Message {
			return message(t, MessageTypeCloseDraft, nil)
		}, ErrCodeNoDraft},
		{"deck edit without pool", func(t *testing.T) *Message {
			return message(t, MessageTypeAddToDeck, DeckCardData{CardID: "C001"})
		}, ErrCodeNoPool},
		{"export without pool", func(t *testing.T) *Message {
			return message(t, MessageTypeExportDeck, nil)
		}, ErrCodeNoPool},
		{"playtest without pool", func(t *testing.T) *Message {
			return message(t, MessageTypeStartPlaytest, nil)
		}, ErrCodeNoPool},
		{"playtest action without playtest", func(t *testing.T) *Message {
			return message(t, MessageTypePlaytestAction, PlaytestActionData{Action: "keep"})
		}, ErrCodeNoPlaytest},
		{"resume without store", func(t *testing.T) *Message {
			return message(t, MessageTypeResumePool, nil)
		}, ErrCodeNoPool},
		{"bad land", func(t *testing.T) *Message {
			return message(t, MessageTypeAddLand, LandData{Land: "Wastes"})
		}, ErrCodeInvalidLand},
		{"malformed data", func(t *testing.T) *Message {
			return &Message{Type: MessageTypePickCard, Data: json.RawMessage(`"nope"`)}
		}, ErrCodeInvalidMessage},
		{"unknown type", func(t *testing.T) *Message {
			return message(t, MessageType("shuffle"), nil)
		}, ErrCodeUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sender := newTestSession(t)
			s.Handle(context.Background(), tt.msg(t))

			var e ErrorData
			require.True(t, sender.last(t, MessageTypeError, &e))
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestSessionInvalidPick(t *testing.T) {
	s, sender := newTestSession(t)
	ctx := context.Background()
	s.Handle(ctx, message(t, MessageTypeStartDraft, nil))
	sender.reset()

	s.Handle(ctx, message(t, MessageTypePickCard, PickCardData{CardID: "not-a-card"}))

	var e ErrorData
	require.True(t, sender.last(t, MessageTypeError, &e))
	assert.Equal(t, ErrCodeInvalidPick, e.Code)
	assert.False(t, sender.last(t, MessageTypeDraftState, nil))
}

func TestSessionCloseDraft(t *testing.T) {
	s, sender := newTestSession(t)
	ctx := context.Background()
	s.Handle(ctx, message(t, MessageTypeStartDraft, nil))
	s.Handle(ctx, message(t, MessageTypeCloseDraft, nil))

	var state DraftStateData
	require.True(t, sender.last(t, MessageTypeDraftState, &state))
	assert.Equal(t, "closed", state.Phase)

	sender.reset()
	s.Handle(ctx, message(t, MessageTypePickCard, PickCardData{CardID: "C001"}))
	var e ErrorData
	require.True(t, sender.last(t, MessageTypeError, &e))
	assert.Equal(t, ErrCodeInvalidPick, e.Code)
}

func TestSessionSealedDeckAndPlaytest(t *testing.T) {
	store := storage.NewMemoryStore()
	pools := storage.NewSavedPools(store, quartz.NewMock(t))
	s, sender := newTestSession(t, WithSavedPools(pools), WithSealedPacks(6))
	ctx := context.Background()

	s.Handle(ctx, message(t, MessageTypeOpenPack, nil))
	var deck DeckStateData
	require.True(t, sender.last(t, MessageTypeDeckState, &deck))
	assert.Equal(t, "sealed", deck.PoolType)
	total := 0
	for _, g := range deck.Sideboard {
		total += g.Count
	}
	assert.Equal(t, 78, total)

	first := deck.Sideboard[0].IDs[0]
	s.Handle(ctx, message(t, MessageTypeAddToDeck, DeckCardData{CardID: first}))
	for range 16 {
		s.Handle(ctx, message(t, MessageTypeAddLand, LandData{Land: "forest"}))
	}
	s.Handle(ctx, message(t, MessageTypeRemoveLand, LandData{Land: "G"}))
	require.True(t, sender.last(t, MessageTypeDeckState, &deck))
	assert.Equal(t, 16, deck.MainCount)
	assert.Equal(t, 15, deck.BasicLands["Forest"])

	s.Handle(ctx, message(t, MessageTypeRemoveFromDeck, DeckIndexData{Index: 5}))
	var e ErrorData
	require.True(t, sender.last(t, MessageTypeError, &e))
	assert.Equal(t, ErrCodeInvalidCard, e.Code)

	s.Handle(ctx, message(t, MessageTypeExportDeck, nil))
	var list DecklistData
	require.True(t, sender.last(t, MessageTypeDecklist, &list))
	assert.Contains(t, list.Text, "15 Forest")

	saved, err := pools.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.PoolSealed, saved.Type)
	assert.Equal(t, 16, saved.DeckCardCount())

	s.Handle(ctx, message(t, MessageTypeStartPlaytest, nil))
	var pt PlaytestStateData
	require.True(t, sender.last(t, MessageTypePlaytestState, &pt))
	assert.True(t, pt.Active)
	assert.Len(t, pt.Hand, 7)
	assert.Equal(t, 9, pt.Library)

	s.Handle(ctx, message(t, MessageTypePlaytestAction, PlaytestActionData{Action: "keep"}))
	require.True(t, sender.last(t, MessageTypePlaytestState, &pt))
	assert.True(t, pt.Applied)
	assert.True(t, pt.Kept)

	s.Handle(ctx, message(t, MessageTypePlaytestAction, PlaytestActionData{Action: "mulligan"}))
	require.True(t, sender.last(t, MessageTypePlaytestState, &pt))
	assert.False(t, pt.Applied, "mulligan after keeping is refused")

	s.Handle(ctx, message(t, MessageTypePlaytestAction, PlaytestActionData{Action: "shuffle"}))
	require.True(t, sender.last(t, MessageTypeError, &e))
	assert.Equal(t, ErrCodeInvalidAction, e.Code)
}

func TestSessionResumePool(t *testing.T) {
	store := storage.NewMemoryStore()
	pools := storage.NewSavedPools(store, quartz.NewMock(t))
	ctx := context.Background()

	s, sender := newTestSession(t, WithSavedPools(pools))
	s.Handle(ctx, message(t, MessageTypeResumePool, nil))
	var e ErrorData
	require.True(t, sender.last(t, MessageTypeError, &e))
	assert.Equal(t, ErrCodeNoPool, e.Code)

	s.Handle(ctx, message(t, MessageTypeOpenPack, nil))
	var deck DeckStateData
	require.True(t, sender.last(t, MessageTypeDeckState, &deck))
	s.Handle(ctx, message(t, MessageTypeAddToDeck, DeckCardData{CardID: deck.Sideboard[0].IDs[0]}))

	other, otherSender := newTestSession(t, WithSavedPools(pools))
	other.Handle(ctx, message(t, MessageTypeResumePool, nil))
	require.True(t, otherSender.last(t, MessageTypeDeckState, &deck))
	assert.Equal(t, "sealed", deck.PoolType)
	assert.Equal(t, 1, deck.MainCount)
}

func TestSessionPickTimer(t *testing.T) {
	clock := quartz.NewMock(t)
	s, sender := newTestSession(t, WithClock(clock), WithPickTimer(40*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Handle(ctx, message(t, MessageTypeStartDraft, nil))
	var pack PackContentData
	require.True(t, sender.last(t, MessageTypePackContent, &pack))
	assert.Equal(t, int64(40000), pack.TimeLimitMs)

	// a pick just before expiry moves on to a shorter timer
	clock.Advance(39 * time.Second).MustWait(ctx)
	s.Handle(ctx, message(t, MessageTypePickCard, PickCardData{CardID: pack.Cards[0].ID}))
	require.True(t, sender.last(t, MessageTypePackContent, &pack))
	assert.Equal(t, 2, pack.Pick)
	assert.Equal(t, int64(35000), pack.TimeLimitMs)

	// the first timer was disarmed, so only the second one fires
	sender.reset()
	clock.Advance(35 * time.Second).MustWait(ctx)
	require.Eventually(t, func() bool { return sender.count(MessageTypePackContent) == 1 },
		time.Second, 10*time.Millisecond)

	var state DraftStateData
	require.True(t, sender.last(t, MessageTypeDraftState, &state))
	assert.Equal(t, 3, state.Pick)
	assert.Len(t, state.Pool, 2)
}
