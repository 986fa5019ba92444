// Package shoe deals ranks from a shuffled multi-deck shoe. It feeds the
// counting drill and the counting system tests.
package shoe

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack-advisor/internal/card"
)

const suits = 4

// Shoe is a shuffled stack of ranks
type Shoe struct {
	decks int
	cards []card.Rank
	rng   *rand.Rand
}

// New creates a shuffled shoe of decks × 52 cards
func New(decks int, rng *rand.Rand) *Shoe {
	if decks <= 0 {
		decks = 1
	}
	s := &Shoe{decks: decks, rng: rng}
	s.Reset()
	return s
}

// Reset refills the shoe and shuffles it
func (s *Shoe) Reset() {
	s.cards = s.cards[:0]
	for range s.decks * suits {
		s.cards = append(s.cards, card.Ranks()...)
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card
func (s *Shoe) Draw() (card.Rank, bool) {
	if len(s.cards) == 0 {
		return "", false
	}
	r := s.cards[0]
	s.cards = s.cards[1:]
	return r, true
}

// DrawN draws up to n cards
func (s *Shoe) DrawN(n int) []card.Rank {
	n = min(n, len(s.cards))
	out := make([]card.Rank, n)
	copy(out, s.cards[:n])
	s.cards = s.cards[n:]
	return out
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the shoe size in decks
func (s *Shoe) Decks() int {
	return s.decks
}
