package game

import (
	"github.com/lox/blackjack-advisor/internal/card"
)

// DefaultMaxHands bounds how many hands a round can reach through splits.
// 32 is the worst case an eight deck shoe can produce.
const DefaultMaxHands = 32

// Rules are the table rules that affect hand bookkeeping
type Rules struct {
	MaxHands    int  // upper bound on player hands per round
	ResplitAces bool // hands born from split aces may split again
}

// DefaultRules returns the rules used when none are configured
func DefaultRules() Rules {
	return Rules{
		MaxHands:    DefaultMaxHands,
		ResplitAces: false,
	}
}

// State owns the player's hands for one round plus the dealer's cards
type State struct {
	rules       Rules
	hands       []*Hand
	current     int
	dealerCards []card.Rank
	newRound    bool
}

// NewState creates an empty round with a single hand
func NewState(rules Rules) *State {
	if rules.MaxHands <= 0 {
		rules.MaxHands = DefaultMaxHands
	}
	return &State{
		rules:    rules,
		hands:    []*Hand{NewHand()},
		newRound: true,
	}
}

// Rules returns the rules the state was created with
func (s *State) Rules() Rules {
	return s.rules
}

// Hands returns the player hands in table order
func (s *State) Hands() []*Hand {
	return append([]*Hand(nil), s.hands...)
}

// HandAt returns the hand at index i
func (s *State) HandAt(i int) (*Hand, bool) {
	if i < 0 || i >= len(s.hands) {
		return nil, false
	}
	return s.hands[i], true
}

// CurrentHandIndex returns the cursor position
func (s *State) CurrentHandIndex() int {
	return s.current
}

// CurrentHand returns the hand waiting for a decision. An invalid cursor
// falls back to the first hand.
func (s *State) CurrentHand() *Hand {
	if s.current >= 0 && s.current < len(s.hands) {
		return s.hands[s.current]
	}
	return s.hands[0]
}

// PlayerCards returns the cards of the current hand
func (s *State) PlayerCards() []card.Rank {
	return s.CurrentHand().Cards()
}

// IsNewRound reports whether nothing has been dealt since the last Clear
func (s *State) IsNewRound() bool {
	return s.newRound
}

// AddPlayerCard deals a card to the current hand and advances the cursor
// once that hand is complete.
func (s *State) AddPlayerCard(r card.Rank) {
	hand := s.CurrentHand()
	hand.AddCard(r)
	s.newRound = false

	if hand.IsComplete() {
		s.MoveToNextActiveHand()
	}
}

// SetDealerCard replaces the dealer's cards with a single up-card
func (s *State) SetDealerCard(r card.Rank) {
	s.dealerCards = []card.Rank{r}
	s.newRound = false
}

// AddDealerCard appends a dealer card. The first dealer card is the up-card.
func (s *State) AddDealerCard(r card.Rank) {
	s.dealerCards = append(s.dealerCards, r)
	s.newRound = false
}

// DealerUpCard returns the dealer's first card
func (s *State) DealerUpCard() (card.Rank, bool) {
	if len(s.dealerCards) == 0 {
		return "", false
	}
	return s.dealerCards[0], true
}

// DealerCards returns a copy of the dealer's cards
func (s *State) DealerCards() []card.Rank {
	return append([]card.Rank(nil), s.dealerCards...)
}

// RemoveLastDealerCard pops the most recent dealer card
func (s *State) RemoveLastDealerCard() (card.Rank, bool) {
	if len(s.dealerCards) == 0 {
		return "", false
	}
	last := s.dealerCards[len(s.dealerCards)-1]
	s.dealerCards = s.dealerCards[:len(s.dealerCards)-1]
	return last, true
}

// RemoveLastCardFromCurrentHand pops the most recent card of the current hand
func (s *State) RemoveLastCardFromCurrentHand() (card.Rank, bool) {
	return s.CurrentHand().RemoveLastCard()
}

// RemoveLastCardFromHand pops the most recent card of hand i
func (s *State) RemoveLastCardFromHand(i int) (card.Rank, bool) {
	hand, ok := s.HandAt(i)
	if !ok {
		return "", false
	}
	return hand.RemoveLastCard()
}

// CanSplitCurrentHand reports whether the current hand is a splittable pair
// and the hand limit has not been reached.
func (s *State) CanSplitCurrentHand() bool {
	return s.CurrentHand().canSplit(s.rules.ResplitAces) && len(s.hands) < s.rules.MaxHands
}

// SplitCurrentHand splits the current pair into two one-card hands. The new
// hand is inserted directly after the current one and the cursor stays on
// the first half. Returns false without changes when the split is not
// allowed.
func (s *State) SplitCurrentHand() bool {
	if !s.CanSplitCurrentHand() {
		return false
	}

	s.ValidateCurrentHandIndex()
	current := s.hands[s.current]
	if !current.IsPair() {
		return false
	}

	r := current.cards[0]
	current.cards = []card.Rank{r}
	current.splitHand = true
	if r.IsAce() {
		current.splitAces = true
	}

	second := newSplitHand(r)

	s.hands = append(s.hands, nil)
	copy(s.hands[s.current+2:], s.hands[s.current+1:])
	s.hands[s.current+1] = second

	s.ValidateCurrentHandIndex()
	return true
}

// MoveToNextActiveHand moves the cursor to the first active hand after the
// current one, wrapping around to the start. Returns false when every hand
// is complete.
func (s *State) MoveToNextActiveHand() bool {
	for i := s.current + 1; i < len(s.hands); i++ {
		if s.hands[i].status == Active {
			s.current = i
			return true
		}
	}

	for i := 0; i < s.current && i < len(s.hands); i++ {
		if s.hands[i].status == Active {
			s.current = i
			return true
		}
	}

	return s.CurrentHand().status == Active
}

// AllHandsComplete reports whether no hand needs a decision
func (s *State) AllHandsComplete() bool {
	for _, h := range s.hands {
		if !h.IsComplete() {
			return false
		}
	}
	return true
}

// ActiveHandCount returns the number of hands still active
func (s *State) ActiveHandCount() int {
	n := 0
	for _, h := range s.hands {
		if h.status == Active {
			n++
		}
	}
	return n
}

// StandCurrentHand stands the current hand and advances the cursor
func (s *State) StandCurrentHand() {
	s.CurrentHand().Stand()
	s.MoveToNextActiveHand()
}

// DoubleDownCurrentHand doubles the current hand. The cursor stays put so
// the one card dealt to the doubled hand lands on it; AddPlayerCard then
// moves on.
func (s *State) DoubleDownCurrentHand() bool {
	return s.CurrentHand().DoubleDown()
}

// SetCurrentHandIndex moves the cursor to hand i if it exists
func (s *State) SetCurrentHandIndex(i int) bool {
	if i < 0 || i >= len(s.hands) {
		return false
	}
	s.current = i
	return true
}

// ValidateCurrentHandIndex clamps the cursor back into range
func (s *State) ValidateCurrentHandIndex() {
	switch {
	case s.current < 0:
		s.current = 0
	case s.current >= len(s.hands):
		s.current = len(s.hands) - 1
	}
}

// Clear resets the round to a single empty hand and no dealer cards
func (s *State) Clear() {
	s.hands = []*Hand{NewHand()}
	s.current = 0
	s.dealerCards = nil
	s.newRound = true
}
