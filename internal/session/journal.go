package session

import (
	"time"

	"github.com/lox/blackjack-advisor/internal/card"
)

// EntryKind says where an entered card went
type EntryKind int

const (
	PlayerEntry EntryKind = iota
	DealerEntry
	OtherEntry
)

func (k EntryKind) String() string {
	switch k {
	case PlayerEntry:
		return "player"
	case DealerEntry:
		return "dealer"
	case OtherEntry:
		return "other"
	default:
		return "unknown"
	}
}

// Entry is one card entered during the current round
type Entry struct {
	Kind EntryKind
	Rank card.Rank
	Hand int // player hand index, -1 for dealer and other cards
	At   time.Time
}

func (s *Session) record(kind EntryKind, r card.Rank, hand int) {
	s.journal = append(s.journal, Entry{Kind: kind, Rank: r, Hand: hand, At: s.clock.Now()})
}

// Journal returns the cards entered this round, oldest first
func (s *Session) Journal() []Entry {
	return append([]Entry(nil), s.journal...)
}

// shiftJournal keeps hand indices pointing at the right hands after hand at
// was split: later hands move one to the right and the pair's second card
// now lives in the new hand at+1.
func (s *Session) shiftJournal(at int) {
	for i := range s.journal {
		if s.journal[i].Kind == PlayerEntry && s.journal[i].Hand > at {
			s.journal[i].Hand++
		}
	}
	for i := len(s.journal) - 1; i >= 0; i-- {
		if s.journal[i].Kind == PlayerEntry && s.journal[i].Hand == at {
			s.journal[i].Hand = at + 1
			return
		}
	}
}

// Undo reverts the most recent card entry. The card always leaves the count;
// it leaves its hand or the dealer's cards only while it is still the last
// card there. Stand, double and split decisions are not undone.
func (s *Session) Undo() (Entry, error) {
	if len(s.journal) == 0 {
		return Entry{}, ErrNothingToUndo
	}

	e := s.journal[len(s.journal)-1]
	s.journal = s.journal[:len(s.journal)-1]
	s.counter.RemoveCard(e.Rank)

	switch e.Kind {
	case PlayerEntry:
		if hand, ok := s.state.HandAt(e.Hand); ok && lastIs(hand.Cards(), e.Rank) {
			s.state.RemoveLastCardFromHand(e.Hand)
			s.state.SetCurrentHandIndex(e.Hand)
		}
	case DealerEntry:
		if lastIs(s.state.DealerCards(), e.Rank) {
			s.state.RemoveLastDealerCard()
		}
	}

	s.logger.Debug("Undo", "kind", e.Kind, "rank", e.Rank, "hand", e.Hand, "running", s.counter.RunningCount())
	return e, nil
}

func lastIs(cards []card.Rank, r card.Rank) bool {
	return len(cards) > 0 && cards[len(cards)-1] == r
}
