package game

import (
	"fmt"

	"github.com/lox/blackjack-advisor/internal/card"
)

// Status represents where a hand is in its lifecycle
type Status int

const (
	Active Status = iota
	Standing
	Busted
	Blackjack
	Doubled
)

// String returns the lowercase status name
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Standing:
		return "standing"
	case Busted:
		return "busted"
	case Blackjack:
		return "blackjack"
	case Doubled:
		return "doubled"
	default:
		return "unknown"
	}
}

// IsTerminal returns true once no further decisions are needed
func (s Status) IsTerminal() bool {
	return s != Active
}

// Hand is one set of player cards
type Hand struct {
	cards         []card.Rank
	status        Status
	betMultiplier float64
	splitHand     bool // born from a split, cannot be a natural blackjack
	splitAces     bool // born from splitting aces
}

// NewHand creates a hand seeded with the given cards
func NewHand(cards ...card.Rank) *Hand {
	h := &Hand{
		cards:         append([]card.Rank(nil), cards...),
		betMultiplier: 1.0,
	}
	h.status = deriveStatus(h.cards, Active, h.splitHand)
	return h
}

func newSplitHand(r card.Rank) *Hand {
	return &Hand{
		cards:         []card.Rank{r},
		status:        Active,
		betMultiplier: 1.0,
		splitHand:     true,
		splitAces:     r.IsAce(),
	}
}

// deriveStatus computes the status implied by cards given the status the
// hand had before the change. Busted and Blackjack are facts about the
// cards and are recomputed; Standing and Doubled are player choices and are
// kept while the cards still allow them.
func deriveStatus(cards []card.Rank, prior Status, splitHand bool) Status {
	if len(cards) == 0 {
		return Active
	}

	total, _ := card.HandValue(cards)
	switch {
	case total > 21:
		return Busted
	case total == 21 && len(cards) == 2 && !splitHand:
		return Blackjack
	}

	switch prior {
	case Busted, Blackjack:
		return Active
	default:
		return prior
	}
}

// Cards returns a copy of the hand's cards in the order they were dealt
func (h *Hand) Cards() []card.Rank {
	return append([]card.Rank(nil), h.cards...)
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Status returns the hand status
func (h *Hand) Status() Status {
	return h.status
}

// BetMultiplier is 1.0, or 2.0 once doubled
func (h *Hand) BetMultiplier() float64 {
	return h.betMultiplier
}

// IsSplitHand reports whether the hand came from a split
func (h *Hand) IsSplitHand() bool {
	return h.splitHand
}

// SplitAces reports whether the hand came from splitting aces
func (h *Hand) SplitAces() bool {
	return h.splitAces
}

// AddCard appends a card and recomputes the status. A terminal status is
// never reopened by adding cards.
func (h *Hand) AddCard(r card.Rank) {
	h.cards = append(h.cards, r)

	next := deriveStatus(h.cards, h.status, h.splitHand)
	if h.status == Active || next == Busted {
		h.status = next
	}
}

// RemoveLastCard pops the most recent card for undo. A busted or blackjack
// hand that drops back to 21 or less becomes Active again.
func (h *Hand) RemoveLastCard() (card.Rank, bool) {
	if len(h.cards) == 0 {
		return "", false
	}

	last := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	h.status = deriveStatus(h.cards, h.status, h.splitHand)
	return last, true
}

// Value returns the hand total and whether it is soft
func (h *Hand) Value() (int, bool) {
	return card.HandValue(h.cards)
}

// IsPair reports whether the hand is exactly two cards of the same rank
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0] == h.cards[1]
}

// CanDoubleDown reports whether the hand may still double
func (h *Hand) CanDoubleDown() bool {
	return len(h.cards) == 2 && h.status == Active
}

// CanBeSplit reports whether the hand is an active pair. Hands born from
// split aces are never split again here; State applies the configurable
// re-split rule instead.
func (h *Hand) CanBeSplit() bool {
	return h.canSplit(false)
}

func (h *Hand) canSplit(resplitAces bool) bool {
	if !h.IsPair() || h.status != Active {
		return false
	}
	if h.splitAces && !resplitAces {
		return false
	}
	return true
}

// DoubleDown doubles the bet and completes the hand
func (h *Hand) DoubleDown() bool {
	if !h.CanDoubleDown() {
		return false
	}
	h.betMultiplier = 2.0
	h.status = Doubled
	return true
}

// Stand completes an active hand
func (h *Hand) Stand() bool {
	if h.status != Active {
		return false
	}
	h.status = Standing
	return true
}

// IsComplete returns true when the hand needs no more decisions
func (h *Hand) IsComplete() bool {
	return h.status.IsTerminal()
}

// Clone returns a deep copy of the hand
func (h *Hand) Clone() *Hand {
	c := *h
	c.cards = append([]card.Rank(nil), h.cards...)
	return &c
}

// String renders the hand as "10, 6 [16] (standing)". Soft totals below 21
// are shown as "soft N"; an empty hand renders as "no cards".
func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "no cards"
	}

	total, soft := h.Value()
	value := fmt.Sprintf("%d", total)
	if soft && total != 21 {
		value = fmt.Sprintf("soft %d", total)
	}

	s := fmt.Sprintf("%s [%s]", card.Join(h.cards), value)
	if h.status != Active {
		s += fmt.Sprintf(" (%s)", h.status)
	}
	return s
}
