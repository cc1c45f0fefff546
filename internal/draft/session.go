// Package draft runs a pack-passing draft between one human seat and a table
// of bots.
package draft

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/draftsim/internal/booster"
	"github.com/lox/draftsim/internal/bot"
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/randutil"
)

// Table defaults.
const (
	DefaultSeats  = 8
	DefaultRounds = 3
	HumanSeat     = 0
)

// Phase is the lifecycle state of a Session
type Phase int

const (
	// Idle is the state before Start.
	Idle Phase = iota
	Active
	ReviewingPool
	Closed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case ReviewingPool:
		return "reviewing_pool"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Direction is the way packs travel round the table
type Direction int

const (
	// Left hands the pack at seat s to seat s-1; seat 0 passes to the last seat.
	Left Direction = iota
	// Right hands the pack at seat s to seat s+1; the last seat passes to seat 0.
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// DirectionForRound returns the passing direction of a 1-based round. Even
// rounds pass right.
func DirectionForRound(round int) Direction {
	if round%2 == 0 {
		return Right
	}
	return Left
}

// Pack is one booster in play. ID stays with the pack as it travels.
type Pack struct {
	ID     string
	Round  int
	Origin int
	Cards  []card.Card
}

// Pick is one entry of the pick log
type Pick struct {
	Round int
	Pick  int
	Seat  int
	Card  card.Card
}

// Option configures a Session
type Option func(*Session)

// WithSeats sets the table size, human included
func WithSeats(n int) Option {
	return func(s *Session) {
		if n >= 2 {
			s.seats = n
		}
	}
}

// WithRounds sets how many packs each seat opens
func WithRounds(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.rounds = n
		}
	}
}

// WithRates overrides the booster slot odds
func WithRates(r booster.Rates) Option {
	return func(s *Session) { s.rates = &r }
}

// WithEventBus publishes session events to bus
func WithEventBus(bus EventBus) Option {
	return func(s *Session) { s.bus = bus }
}

// Session is a single draft. It is single-owner: callers that share a
// Session across goroutines must serialise access themselves.
type Session struct {
	seats  int
	rounds int
	rates  *booster.Rates

	gen    *booster.Generator
	rng    randutil.Source
	logger *log.Logger
	bus    EventBus

	phase     Phase
	round     int
	pick      int
	packs     []*Pack
	offset    int
	humanPool []card.Card
	autopilot *bot.Bot
	bots      []*bot.Bot
	history   []Pick
}

// New creates an idle session drafting from the front faces of cards.
func New(cards []card.Card, rng randutil.Source, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		seats:  DefaultSeats,
		rounds: DefaultRounds,
		rng:    rng,
		logger: logger.WithPrefix("draft"),
		bus:    NewEventBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	var genOpts []booster.Option
	if s.rates != nil {
		genOpts = append(genOpts, booster.WithRates(*s.rates))
	}
	s.gen = booster.New(cards, rng, genOpts...)
	return s
}

// Events returns the bus the session publishes to
func (s *Session) Events() EventBus { return s.bus }

// Start discards any previous state, seats fresh bots and opens the first
// round of packs.
func (s *Session) Start() {
	s.phase = Active
	s.humanPool = nil
	s.history = nil
	s.autopilot = bot.New(HumanSeat, s.rng, s.logger)
	s.bots = make([]*bot.Bot, s.seats-1)
	for i := range s.bots {
		s.bots[i] = bot.New(i+1, s.rng, s.logger)
	}
	s.logger.Info("Draft started", "seats", s.seats, "rounds", s.rounds)
	s.openRound(1)
}

func (s *Session) openRound(round int) {
	s.round = round
	s.pick = 1
	s.offset = 0
	s.packs = make([]*Pack, s.seats)
	for seat := range s.packs {
		s.packs[seat] = &Pack{
			ID:     PackID(round, seat),
			Round:  round,
			Origin: seat,
			Cards:  s.gen.Pack(),
		}
	}
	dir := DirectionForRound(round)
	s.logger.Debug("Round started", "round", round, "direction", dir.String(), "packSize", len(s.packs[0].Cards))
	s.bus.Publish(NewRoundStartedEvent(round, dir, len(s.packs[0].Cards)))
}

// PackID returns the stable id of the pack a seat opens in a round
func PackID(round, origin int) string {
	return fmt.Sprintf("r%d-p%d", round, origin)
}

// slot maps a seat to the pack it currently holds.
func (s *Session) slot(seat int) int {
	n := len(s.packs)
	return ((seat+s.offset)%n + n) % n
}

func (s *Session) packAt(seat int) *Pack {
	return s.packs[s.slot(seat)]
}

// HumanPick takes cardID from the human seat's pack, lets every bot pick and
// passes the packs. Unknown ids and picks outside the Active phase are
// ignored and report false.
func (s *Session) HumanPick(cardID string) bool {
	if s.phase != Active {
		return false
	}
	pack := s.packAt(HumanSeat)
	idx := slices.IndexFunc(pack.Cards, func(c card.Card) bool { return c.ID == cardID })
	if idx < 0 {
		s.logger.Debug("Ignoring pick of unknown card", "cardID", cardID, "packID", pack.ID)
		return false
	}

	picked := s.take(HumanSeat, pack, idx)
	s.humanPool = append(s.humanPool, picked)
	s.autopilot.Commit(picked)

	for seat := 1; seat < s.seats; seat++ {
		p := s.packAt(seat)
		if i := s.bots[seat-1].Pick(p.Cards); i >= 0 {
			s.take(seat, p, i)
		}
	}

	s.pass()
	s.pick++

	if len(s.packAt(HumanSeat).Cards) == 0 {
		if s.round >= s.rounds {
			s.phase = ReviewingPool
			s.logger.Info("Draft completed", "picks", len(s.humanPool))
			s.bus.Publish(NewDraftCompletedEvent(s.humanPool, len(s.humanPool)))
		} else {
			s.openRound(s.round + 1)
		}
	}
	return true
}

// AutoPick picks for the human seat using the card a bot in its position
// would take.
func (s *Session) AutoPick() bool {
	if s.phase != Active {
		return false
	}
	cards := s.packAt(HumanSeat).Cards
	idx := s.autopilot.Choose(cards)
	if idx < 0 {
		return false
	}
	return s.HumanPick(cards[idx].ID)
}

func (s *Session) take(seat int, p *Pack, idx int) card.Card {
	c := p.Cards[idx]
	p.Cards = slices.Delete(p.Cards, idx, idx+1)
	pick := Pick{Round: s.round, Pick: s.pick, Seat: seat, Card: c}
	s.history = append(s.history, pick)
	s.bus.Publish(NewPickMadeEvent(pick, p.ID, len(p.Cards)))
	return c
}

// pass moves every pack one seat along by shifting the offset.
func (s *Session) pass() {
	if DirectionForRound(s.round) == Left {
		s.offset++
	} else {
		s.offset--
	}
}

// Close ends the session and discards the bots. The human pool is kept.
func (s *Session) Close() {
	from := s.phase
	s.phase = Closed
	s.bots = nil
	s.autopilot = nil
	s.packs = nil
	s.logger.Info("Draft closed", "from", from.String())
	s.bus.Publish(NewDraftClosedEvent(from))
}

// Phase returns the lifecycle state
func (s *Session) Phase() Phase { return s.phase }

// Round returns the 1-based round number
func (s *Session) Round() int { return s.round }

// Pick returns the 1-based pick number within the round
func (s *Session) Pick() int { return s.pick }

// Seats returns the table size
func (s *Session) Seats() int { return s.seats }

// Rounds returns the number of rounds
func (s *Session) Rounds() int { return s.rounds }

// PassDirection returns the direction packs travel in the current round
func (s *Session) PassDirection() Direction { return DirectionForRound(s.round) }

// CurrentPack returns a copy of the human seat's pack. It is empty outside
// the Active phase.
func (s *Session) CurrentPack() []card.Card {
	if s.phase != Active {
		return nil
	}
	return slices.Clone(s.packAt(HumanSeat).Cards)
}

// CurrentPackID returns the id of the pack in front of the human seat
func (s *Session) CurrentPackID() string {
	if s.phase != Active {
		return ""
	}
	return s.packAt(HumanSeat).ID
}

// SeatOf returns the seat currently holding the pack, or -1.
func (s *Session) SeatOf(packID string) int {
	if s.phase != Active {
		return -1
	}
	for seat := 0; seat < len(s.packs); seat++ {
		if s.packAt(seat).ID == packID {
			return seat
		}
	}
	return -1
}

// HumanPool returns the human's picks in pick order
func (s *Session) HumanPool() []card.Card { return slices.Clone(s.humanPool) }

// SortedPool returns the human pool ordered by mana value, then colour class
func (s *Session) SortedPool() []card.Card { return card.SortByCurve(s.humanPool) }

// Bots returns the bot seats in seat order. It is nil once closed.
func (s *Session) Bots() []*bot.Bot { return s.bots }

// Autopilot returns the bot that shadows the human seat
func (s *Session) Autopilot() *bot.Bot { return s.autopilot }

// History returns every pick made so far, in resolution order
func (s *Session) History() []Pick { return slices.Clone(s.history) }
