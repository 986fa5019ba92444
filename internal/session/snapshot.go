package session

import (
	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/game"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// Advice is the engine's decision for one hand
type Advice struct {
	Hand      int
	Cards     []card.Rank
	Dealer    card.Rank
	TrueCount *float64 // nil when deviations are disabled
	Decision  strategy.Decision
}

// Advice returns the decision for the current hand against the up-card
func (s *Session) Advice() (Advice, error) {
	up, ok := s.state.DealerUpCard()
	if !ok {
		return Advice{}, ErrNoDealerCard
	}
	return s.adviceFor(s.state.CurrentHandIndex(), up), nil
}

func (s *Session) adviceFor(i int, up card.Rank) Advice {
	hand, _ := s.state.HandAt(i)
	tc := s.trueCount()
	d := s.engine.Decide(hand.Cards(), up, tc)

	s.logger.Debug("Advice", "hand", i, "cards", card.Join(hand.Cards()), "dealer", up, "action", d.Action, "deviation", d.Deviation)
	return Advice{Hand: i, Cards: hand.Cards(), Dealer: up, TrueCount: tc, Decision: d}
}

// HandView is one player hand as shown to the user
type HandView struct {
	Index   int
	Cards   []card.Rank
	Display string
	Status  game.Status
	Current bool
	Advice  *strategy.Decision // set for active hands once the up-card is known
}

// Snapshot is everything a display needs after each input
type Snapshot struct {
	ID     string
	System string

	RunningCount   float64
	TrueCount      float64
	CardsSeen      int
	TotalCards     int
	DecksRemaining float64
	Penetration    float64
	Advantage      float64
	Trend          count.Trend
	Betting        count.Suggestion

	// Insurance is only offered against an ace
	Insurance bool

	Dealer  []card.Rank
	Hands   []HandView
	Current int
}

// Snapshot captures the count and the round
func (s *Session) Snapshot() Snapshot {
	c := s.counter
	tc := c.TrueCount()

	snap := Snapshot{
		ID:             s.id,
		System:         c.System().Name,
		RunningCount:   c.RunningCount(),
		TrueCount:      tc,
		CardsSeen:      c.CardsSeen(),
		TotalCards:     c.TotalCards(),
		DecksRemaining: c.DecksRemaining(),
		Penetration:    c.Penetration(),
		Advantage:      c.Advantage(),
		Trend:          c.Trend(),
		Betting:        c.BettingSuggestion(),
		Dealer:         s.state.DealerCards(),
		Current:        s.state.CurrentHandIndex(),
	}

	up, hasUp := s.state.DealerUpCard()
	if hasUp && up.IsAce() {
		snap.Insurance = s.engine.ShouldTakeInsurance(tc)
	}

	for i, h := range s.state.Hands() {
		view := HandView{
			Index:   i,
			Cards:   h.Cards(),
			Display: h.String(),
			Status:  h.Status(),
			Current: i == snap.Current,
		}
		if hasUp && h.Status() == game.Active && h.Len() > 0 {
			d := s.adviceFor(i, up).Decision
			view.Advice = &d
		}
		snap.Hands = append(snap.Hands, view)
	}

	return snap
}
