// Package card models blackjack card ranks. Suits never affect a blackjack
// decision, so a card is represented by its rank symbol alone.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRank is returned when a symbol is not part of the rank alphabet.
var ErrInvalidRank = errors.New("invalid card rank")

// Rank is one of the 13 rank symbols: 2-10, J, Q, K, A.
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var alphabet = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Ranks returns the rank alphabet in ascending order.
func Ranks() []Rank {
	out := make([]Rank, len(alphabet))
	copy(out, alphabet)
	return out
}

// Parse converts a user supplied symbol into a Rank.
// It is case-insensitive and accepts "T" as an alias for "10".
func Parse(s string) (Rank, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "T" {
		return Ten, nil
	}
	r := Rank(sym)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	return r, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Rank {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseList parses a comma and/or whitespace separated list of ranks,
// e.g. "A,K" or "10 6".
func ParseList(s string) ([]Rank, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	ranks := make([]Rank, 0, len(fields))
	for _, f := range fields {
		r, err := Parse(f)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// MustParseList is like ParseList but panics on error.
func MustParseList(s string) []Rank {
	ranks, err := ParseList(s)
	if err != nil {
		panic(err)
	}
	return ranks
}

// Valid reports whether r is part of the rank alphabet.
func (r Rank) Valid() bool {
	for _, a := range alphabet {
		if r == a {
			return true
		}
	}
	return false
}

// Value returns the blackjack point value with aces counted high.
// Unknown ranks are worth 0.
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 11
	case Ten, Jack, Queen, King:
		return 10
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return int(r[0] - '0')
	default:
		return 0
	}
}

// IsAce returns true if the rank is an Ace
func (r Rank) IsAce() bool {
	return r == Ace
}

// IsTen returns true for 10 and the face cards
func (r Rank) IsTen() bool {
	return r == Ten || r == Jack || r == Queen || r == King
}

// Key returns the rank used to index strategy tables: every ten-valued
// card collapses to "10".
func (r Rank) Key() Rank {
	if r.IsTen() {
		return Ten
	}
	return r
}

// String returns the rank symbol
func (r Rank) String() string {
	return string(r)
}

// Join renders ranks as a comma separated list ("A, K").
func Join(ranks []Rank) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// HandValue totals a list of ranks. Aces start at 11 and are reduced to 1,
// one at a time, while the total exceeds 21. The hand is soft when at least
// one ace is still counted as 11.
func HandValue(ranks []Rank) (total int, soft bool) {
	aces := 0
	for _, r := range ranks {
		total += r.Value()
		if r.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return total, aces > 0 && total <= 21
}
