// Package session ties the counter, the round state and the strategy engine
// together the way a player at the table uses them: cards are entered as
// they are seen, and advice and count statistics are read back.
package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/game"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNoDealerCard  = errors.New("no dealer card")
	ErrCannotSplit   = errors.New("current hand cannot be split")
	ErrCannotDouble  = errors.New("current hand cannot double")
	ErrHandComplete  = errors.New("current hand is already complete")
	ErrNoSuchHand    = errors.New("no such hand")
)

// Session is a single player's view of one shoe. It is not safe for
// concurrent use.
type Session struct {
	id      string
	engine  *strategy.Engine
	counter *count.Counter
	state   *game.State
	journal []Entry

	useDeviations bool
	logger        *log.Logger
	clock         quartz.Clock
	started       time.Time
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger. Every line carries the session id.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock sets the clock used for journal timestamps
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithDeviations controls whether the true count is passed to the engine
func WithDeviations(enabled bool) Option {
	return func(s *Session) { s.useDeviations = enabled }
}

// New creates a session over an engine and a counter
func New(engine *strategy.Engine, counter *count.Counter, rules game.Rules, opts ...Option) *Session {
	s := &Session{
		id:            uuid.NewString(),
		engine:        engine,
		counter:       counter,
		state:         game.NewState(rules),
		useDeviations: true,
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		clock:         quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.WithPrefix("session").With("id", s.id[:8])
	s.started = s.clock.Now()
	s.logger.Info("Session started",
		"decks", counter.NumDecks(),
		"system", counter.System().Name,
		"surrender", engine.SurrenderAllowed(),
		"deviations", s.useDeviations)
	return s
}

// ID returns the session's unique id
func (s *Session) ID() string { return s.id }

// Started returns when the session was created
func (s *Session) Started() time.Time { return s.started }

// State exposes the round state for display
func (s *Session) State() *game.State { return s.state }

// Counter exposes the counter for display
func (s *Session) Counter() *count.Counter { return s.counter }

// PlayerCard counts r and deals it to the current hand
func (s *Session) PlayerCard(r card.Rank) {
	if !s.counter.AddCard(r) {
		s.logger.Warn("Ignoring unknown card", "rank", r)
		return
	}
	hand := s.state.CurrentHandIndex()
	s.state.AddPlayerCard(r)
	s.record(PlayerEntry, r, hand)
	s.logger.Debug("Player card", "rank", r, "hand", hand, "running", s.counter.RunningCount())
}

// DealerCard counts r and appends it to the dealer's cards. The first dealer
// card of a round is the up-card.
func (s *Session) DealerCard(r card.Rank) {
	if !s.counter.AddCard(r) {
		s.logger.Warn("Ignoring unknown card", "rank", r)
		return
	}
	s.state.AddDealerCard(r)
	s.record(DealerEntry, r, -1)
	s.logger.Debug("Dealer card", "rank", r, "running", s.counter.RunningCount())
}

// OtherCard counts a card seen at the table that belongs to nobody tracked
func (s *Session) OtherCard(r card.Rank) {
	if !s.counter.AddCard(r) {
		s.logger.Warn("Ignoring unknown card", "rank", r)
		return
	}
	s.record(OtherEntry, r, -1)
	s.logger.Debug("Other card", "rank", r, "running", s.counter.RunningCount())
}

// Stand completes the current hand and moves to the next active one
func (s *Session) Stand() error {
	if s.state.CurrentHand().IsComplete() {
		return ErrHandComplete
	}
	s.state.StandCurrentHand()
	return nil
}

// Double doubles the current hand. The next player card completes it.
func (s *Session) Double() error {
	if !s.state.DoubleDownCurrentHand() {
		return ErrCannotDouble
	}
	return nil
}

// Split splits the current pair
func (s *Session) Split() error {
	at := s.state.CurrentHandIndex()
	if !s.state.SplitCurrentHand() {
		return ErrCannotSplit
	}
	s.shiftJournal(at)
	s.logger.Info("Split hand", "hand", at, "hands", len(s.state.Hands()))
	return nil
}

// SelectHand moves the cursor to hand i
func (s *Session) SelectHand(i int) error {
	if !s.state.SetCurrentHandIndex(i) {
		return ErrNoSuchHand
	}
	return nil
}

// ClearRound starts a new round. The count carries over.
func (s *Session) ClearRound() {
	s.state.Clear()
	s.journal = nil
	s.logger.Debug("Round cleared")
}

// NewShoe resets the count and starts a new round
func (s *Session) NewShoe() {
	s.counter.NewShoe()
	s.ClearRound()
	s.logger.Info("New shoe", "decks", s.counter.NumDecks())
}

// trueCount returns the count handed to the engine, or nil when deviations
// are disabled
func (s *Session) trueCount() *float64 {
	if !s.useDeviations {
		return nil
	}
	tc := s.counter.TrueCount()
	return &tc
}
