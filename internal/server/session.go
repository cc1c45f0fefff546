package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/draftsim/internal/booster"
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/playtest"
	"github.com/lox/draftsim/internal/randutil"
	"github.com/lox/draftsim/internal/storage"
)

// Sender delivers messages to the client owning a session
type Sender interface {
	SendMessage(msg *Message) error
}

// Session is the state one client works on: a draft, the deck built from
// its pool and a playtest of that deck. All methods are serialised by mu,
// including pick timer callbacks.
type Session struct {
	id     string
	cfg    *Config
	cards  []card.Card
	rng    randutil.Source
	sender Sender
	logger *log.Logger

	mu       sync.Mutex
	draft    *draft.Session
	pool     []card.Card
	poolType storage.PoolType
	builder  *deckbuild.Builder
	playtest *playtest.Engine

	timer    *quartz.Timer
	timerGen int
}

// NewSession creates a session with no draft running. A zero seed draws one
// from the clock.
func NewSession(id string, seed int64, cfg *Config, cards []card.Card, sender Sender, logger *log.Logger) *Session {
	rng := randutil.FromSeed(seed)
	return &Session{
		id:       id,
		cfg:      cfg,
		cards:    cards,
		rng:      rng,
		sender:   sender,
		logger:   logger.WithPrefix("session").With("session", id),
		playtest: playtest.New(rng, cfg.PlaytestOptions...),
	}
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Handle processes one client message
func (s *Session) Handle(ctx context.Context, msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("Handling message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeStartDraft:
		s.startDraft()
	case MessageTypePickCard:
		var data PickCardData
		if !s.decode(msg, &data) {
			return
		}
		s.pickCard(ctx, data.CardID)
	case MessageTypeCloseDraft:
		s.closeDraft()
	case MessageTypeOpenPack:
		s.openSealed(ctx)
	case MessageTypeResumePool:
		s.resumePool(ctx)
	case MessageTypeAddToDeck:
		var data DeckCardData
		if !s.decode(msg, &data) {
			return
		}
		s.editDeck(ctx, func(b *deckbuild.Builder) bool { return b.AddToDeck(data.CardID) }, ErrCodeInvalidCard)
	case MessageTypeRemoveFromDeck:
		var data DeckIndexData
		if !s.decode(msg, &data) {
			return
		}
		s.editDeck(ctx, func(b *deckbuild.Builder) bool { return b.RemoveFromDeck(data.Index) }, ErrCodeInvalidCard)
	case MessageTypeAddLand, MessageTypeRemoveLand:
		var data LandData
		if !s.decode(msg, &data) {
			return
		}
		land, ok := deckbuild.ParseLandName(data.Land)
		if !ok {
			s.sendError(ErrCodeInvalidLand, fmt.Sprintf("Unknown basic land %q", data.Land))
			return
		}
		if msg.Type == MessageTypeAddLand {
			s.editDeck(ctx, func(b *deckbuild.Builder) bool { return b.AddBasicLand(land) }, ErrCodeInvalidLand)
		} else {
			s.editDeck(ctx, func(b *deckbuild.Builder) bool { return b.RemoveBasicLand(land) }, ErrCodeInvalidLand)
		}
	case MessageTypeExportDeck:
		if s.builder == nil {
			s.sendError(ErrCodeNoPool, "No pool to export")
			return
		}
		s.send(MessageTypeDecklist, DecklistData{Text: s.builder.Export()})
	case MessageTypeStartPlaytest:
		if s.builder == nil {
			s.sendError(ErrCodeNoPool, "Build a deck before playtesting")
			return
		}
		s.playtest.Start(s.builder.MainDeck(), s.builder.BasicLands())
		s.send(MessageTypePlaytestState, playtestState(s.playtest, true))
	case MessageTypePlaytestAction:
		var data PlaytestActionData
		if !s.decode(msg, &data) {
			return
		}
		s.playtestAction(data)
	default:
		s.sendError(ErrCodeUnknownType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

// Close stops the pick timer and ends any running draft.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
	if s.draft != nil && s.draft.Phase() == draft.Active {
		s.draft.Close()
	}
}

func (s *Session) startDraft() {
	s.stopTimer()
	s.draft = draft.New(s.cards, s.rng, s.logger, s.cfg.DraftOptions...)
	s.draft.Events().Subscribe(draft.SubscriberFunc(func(e draft.Event) {
		if ev, ok := e.(draft.DraftCompletedEvent); ok {
			s.setPool(ev.Pool, storage.PoolDraft)
		}
	}))
	s.draft.Start()
	s.logger.Info("Draft started", "seats", s.draft.Seats(), "rounds", s.draft.Rounds())
	s.sendDraft()
}

func (s *Session) pickCard(ctx context.Context, cardID string) {
	if s.draft == nil {
		s.sendError(ErrCodeNoDraft, "No draft running")
		return
	}
	if !s.draft.HumanPick(cardID) {
		s.sendError(ErrCodeInvalidPick, fmt.Sprintf("Card %q is not in the current pack", cardID))
		return
	}
	s.afterPick(ctx)
}

// afterPick reports the new draft state and persists a finished pool.
func (s *Session) afterPick(ctx context.Context) {
	s.sendDraft()
	if s.draft.Phase() == draft.ReviewingPool {
		s.savePool(ctx)
		s.send(MessageTypeDeckState, deckState(string(s.poolType), s.builder))
	}
}

func (s *Session) closeDraft() {
	if s.draft == nil {
		s.sendError(ErrCodeNoDraft, "No draft running")
		return
	}
	s.stopTimer()
	s.draft.Close()
	s.sendDraft()
}

func (s *Session) openSealed(ctx context.Context) {
	var opts []booster.Option
	if s.cfg.Rates != nil {
		opts = append(opts, booster.WithRates(*s.cfg.Rates))
	}
	gen := booster.New(s.cards, s.rng, opts...)
	s.setPool(gen.Sealed(s.cfg.SealedPacks), storage.PoolSealed)
	s.logger.Info("Opened sealed pool", "packs", s.cfg.SealedPacks, "cards", len(s.pool))
	s.savePool(ctx)
	s.send(MessageTypeDeckState, deckState(string(s.poolType), s.builder))
}

func (s *Session) resumePool(ctx context.Context) {
	if s.cfg.SavedPools == nil {
		s.sendError(ErrCodeNoPool, "No saved pool")
		return
	}
	saved, err := s.cfg.SavedPools.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.sendError(ErrCodeNoPool, "No saved pool")
		return
	}
	if err != nil {
		s.logger.Error("Failed to load saved pool", "error", err)
		s.sendError(ErrCodeStorage, "Failed to load saved pool")
		return
	}
	s.pool = saved.Pool
	s.poolType = saved.Type
	s.builder = saved.Builder()
	s.send(MessageTypeDeckState, deckState(string(s.poolType), s.builder))
}

func (s *Session) setPool(pool []card.Card, typ storage.PoolType) {
	s.pool = pool
	s.poolType = typ
	s.builder = deckbuild.New(pool, nil, nil)
}

func (s *Session) editDeck(ctx context.Context, edit func(*deckbuild.Builder) bool, code string) {
	if s.builder == nil {
		s.sendError(ErrCodeNoPool, "No pool to build from")
		return
	}
	if !edit(s.builder) {
		s.sendError(code, "Deck change not possible")
		return
	}
	s.savePool(ctx)
	s.send(MessageTypeDeckState, deckState(string(s.poolType), s.builder))
}

func (s *Session) savePool(ctx context.Context) {
	if s.cfg.SavedPools == nil || s.builder == nil {
		return
	}
	state := s.builder.State()
	meta := map[string]string{"session": s.id}
	if err := s.cfg.SavedPools.Save(ctx, s.pool, s.poolType, &state, meta); err != nil {
		s.logger.Error("Failed to save pool", "error", err)
		s.sendError(ErrCodeStorage, "Failed to save pool")
	}
}

func (s *Session) playtestAction(data PlaytestActionData) {
	if !s.playtest.Active() {
		s.sendError(ErrCodeNoPlaytest, "No playtest running")
		return
	}
	applied, err := s.playtest.Apply(playtest.Action(data.Action), data.Index)
	if err != nil {
		s.sendError(ErrCodeInvalidAction, err.Error())
		return
	}
	s.send(MessageTypePlaytestState, playtestState(s.playtest, applied))
}

// sendDraft sends the draft state and, while picking, rearms the pick timer
// before sending the pack.
func (s *Session) sendDraft() {
	d := s.draft
	s.send(MessageTypeDraftState, DraftStateData{
		SessionID: s.id,
		Phase:     d.Phase().String(),
		Round:     d.Round(),
		Pick:      d.Pick(),
		Rounds:    d.Rounds(),
		Seats:     d.Seats(),
		Direction: d.PassDirection().String(),
		PackID:    d.CurrentPackID(),
		Pool:      d.SortedPool(),
	})
	if d.Phase() != draft.Active {
		s.stopTimer()
		return
	}
	limit := PickTime(s.cfg.PickTimer, d.Pick())
	s.armTimer(limit)
	s.send(MessageTypePackContent, PackContentData{
		PackID:      d.CurrentPackID(),
		Round:       d.Round(),
		Pick:        d.Pick(),
		Cards:       d.CurrentPack(),
		TimeLimitMs: limit.Milliseconds(),
	})
}

func (s *Session) armTimer(limit time.Duration) {
	s.stopTimer()
	if limit <= 0 {
		return
	}
	gen := s.timerGen
	s.timer = s.cfg.Clock.AfterFunc(limit, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.timerGen || s.draft == nil || s.draft.Phase() != draft.Active {
			return
		}
		s.logger.Info("Pick timer expired, auto-picking", "round", s.draft.Round(), "pick", s.draft.Pick())
		if s.draft.AutoPick() {
			s.afterPick(context.Background())
		}
	}, "server", "pick_timer")
}

// stopTimer cancels the pending auto-pick. Bumping the generation also
// disarms a callback that has already fired but not yet taken the lock.
func (s *Session) stopTimer() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) decode(msg *Message, v any) bool {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		s.sendError(ErrCodeInvalidMessage, fmt.Sprintf("Failed to parse %s data", msg.Type))
		return false
	}
	return true
}

func (s *Session) send(t MessageType, data any) {
	msg, err := NewMessage(t, data, s.cfg.Clock.Now())
	if err != nil {
		s.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	if err := s.sender.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to send message", "type", t, "error", err)
	}
}

func (s *Session) sendError(code, message string) {
	s.logger.Debug("Sending error", "code", code, "message", message)
	s.send(MessageTypeError, ErrorData{Code: code, Message: message})
}
