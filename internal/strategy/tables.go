package strategy

import (
	"fmt"

	"github.com/lox/blackjack-advisor/internal/card"
)

// Code is a short action code used in strategy tables
type Code string

const (
	CodeHit           Code = "H"
	CodeStand         Code = "S"
	CodeDouble        Code = "D"  // double if allowed, otherwise hit
	CodeDoubleOrStand Code = "Ds" // double if allowed, otherwise stand
	CodeSurrender     Code = "R"  // surrender if allowed, otherwise hit
	CodeSplit         Code = "Y"
	CodeNoSplit       Code = "N"
)

// Codes returns every code a table may contain
func Codes() []Code {
	return []Code{CodeHit, CodeStand, CodeDouble, CodeDoubleOrStand, CodeSurrender, CodeSplit, CodeNoSplit}
}

// Valid reports whether c is a known code
func (c Code) Valid() bool {
	for _, known := range Codes() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCode validates a code read from a document
func ParseCode(s string) (Code, error) {
	c := Code(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown action code %q", s)
	}
	return c, nil
}

// Columns is the number of dealer up-card columns: 2 through 9, ten, ace
const Columns = 10

// Row holds one action code per dealer column
type Row [Columns]Code

// ParseRow converts a list of codes into a Row
func ParseRow(codes []string) (Row, error) {
	var row Row
	if len(codes) != Columns {
		return row, fmt.Errorf("expected %d actions, got %d", Columns, len(codes))
	}
	for i, s := range codes {
		c, err := ParseCode(s)
		if err != nil {
			return row, err
		}
		row[i] = c
	}
	return row, nil
}

// ActionInfo is the display text attached to a code
type ActionInfo struct {
	Action      string
	Description string
}

// Settings records the table rules a strategy was computed for
type Settings struct {
	Decks              int
	DealerStandsSoft17 bool
	DoubleAfterSplit   bool
	Surrender          string
	Description        string
}

// Tables is a complete basic strategy. Build one, validate it with
// Validate (or New), and treat it as read-only afterwards.
type Tables struct {
	Settings    Settings
	ActionCodes map[Code]ActionInfo
	DealerIndex map[card.Rank]int
	Hard        map[int]Row
	Soft        map[int]Row
	Pairs       map[card.Rank]Row // keyed by Rank.Key()
	Surrender   map[int]Row       // optional
}

// DefaultActionCodes returns English display text for every code
func DefaultActionCodes() map[Code]ActionInfo {
	return map[Code]ActionInfo{
		CodeHit:           {Action: "Hit", Description: "Take another card"},
		CodeStand:         {Action: "Stand", Description: "Keep the current hand"},
		CodeDouble:        {Action: "Double", Description: "Double if allowed, otherwise hit"},
		CodeDoubleOrStand: {Action: "Double", Description: "Double if allowed, otherwise stand"},
		CodeSurrender:     {Action: "Surrender", Description: "Surrender if allowed, otherwise hit"},
		CodeSplit:         {Action: "Split", Description: "Split the pair"},
		CodeNoSplit:       {Action: "", Description: ""},
	}
}

// DefaultDealerIndex maps up-cards onto columns, with ten-valued cards
// sharing one column
func DefaultDealerIndex() map[card.Rank]int {
	idx := make(map[card.Rank]int, 13)
	for _, r := range card.Ranks() {
		switch {
		case r.IsAce():
			idx[r] = 9
		case r.IsTen():
			idx[r] = 8
		default:
			idx[r] = r.Value() - 2
		}
	}
	return idx
}

// PairRanks returns the keys the pair table must cover
func PairRanks() []card.Rank {
	return []card.Rank{
		card.Ace, card.Two, card.Three, card.Four, card.Five,
		card.Six, card.Seven, card.Eight, card.Nine, card.Ten,
	}
}

// PairLabel formats a pair key the way documents spell it, e.g. "8,8"
func PairLabel(r card.Rank) string {
	k := r.Key()
	return string(k) + "," + string(k)
}

// ParsePairLabel is the inverse of PairLabel
func ParsePairLabel(s string) (card.Rank, error) {
	ranks, err := card.ParseList(s)
	if err != nil {
		return "", err
	}
	if len(ranks) != 2 || ranks[0].Key() != ranks[1].Key() {
		return "", fmt.Errorf("pair key %q is not two equal ranks", s)
	}
	return ranks[0].Key(), nil
}
