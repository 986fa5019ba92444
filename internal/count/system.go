package count

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack-advisor/internal/card"
)

// ErrMissingWeight is returned when a counting system does not assign a
// weight to every rank.
var ErrMissingWeight = errors.New("missing card weight")

// Default betting thresholds, in true count units
const (
	DefaultIncreaseBet   = 2.0
	DefaultMaxBet        = 4.0
	DefaultTakeInsurance = 3.0

	// minBetThreshold is fixed; only the upper bands are configurable
	minBetThreshold = -2.0
)

// Properties describes a counting system. They are informational only.
type Properties struct {
	Balanced             bool
	Level                int
	InsuranceCorrelation float64
	BettingCorrelation   float64
	PlayingEfficiency    float64
}

// Thresholds are the true counts at which betting and insurance advice change
type Thresholds struct {
	IncreaseBet   float64
	MaxBet        float64
	TakeInsurance float64
}

// DefaultThresholds returns the thresholds used when a system omits them
func DefaultThresholds() Thresholds {
	return Thresholds{
		IncreaseBet:   DefaultIncreaseBet,
		MaxBet:        DefaultMaxBet,
		TakeInsurance: DefaultTakeInsurance,
	}
}

// System is a card counting system: a weight per rank plus betting thresholds
type System struct {
	Name        string
	Description string
	Weights     map[card.Rank]float64
	Properties  Properties
	Thresholds  Thresholds
	Advantages  []string
}

// WongHalves returns the built-in Wong Halves system
func WongHalves() *System {
	return &System{
		Name:        "Wong Halves",
		Description: "Level 3 balanced count with half-point weights",
		Weights: map[card.Rank]float64{
			card.Two:   0.5,
			card.Three: 1.0,
			card.Four:  1.0,
			card.Five:  1.5,
			card.Six:   1.0,
			card.Seven: 0.5,
			card.Eight: 0.0,
			card.Nine:  -0.5,
			card.Ten:   -1.0,
			card.Jack:  -1.0,
			card.Queen: -1.0,
			card.King:  -1.0,
			card.Ace:   -1.0,
		},
		Properties: Properties{
			Balanced:             true,
			Level:                3,
			InsuranceCorrelation: 0.99,
			BettingCorrelation:   0.99,
			PlayingEfficiency:    0.57,
		},
		Thresholds: DefaultThresholds(),
	}
}

// Validate checks that every rank has a weight
func (s *System) Validate() error {
	for _, r := range card.Ranks() {
		if _, ok := s.Weights[r]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingWeight, r)
		}
	}
	return nil
}

// Weight returns the weight of r, and false for ranks the system does not know
func (s *System) Weight(r card.Rank) (float64, bool) {
	w, ok := s.Weights[r]
	return w, ok
}

// Balanced reports whether a full shoe sums to zero under this system
func (s *System) Balanced() bool {
	sum := 0.0
	for _, r := range card.Ranks() {
		sum += s.Weights[r]
	}
	return sum > -1e-9 && sum < 1e-9
}
