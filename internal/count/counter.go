package count

import (
	"fmt"
	"math"

	"github.com/lox/blackjack-advisor/internal/card"
)

// DefaultDecks is the shoe size used when none is given
const DefaultDecks = 8

const cardsPerDeck = 52

// Tier is a betting recommendation band
type Tier int

const (
	StandardBet Tier = iota
	MinBet
	IncreaseBet
	MaxBet
)

// String returns the label shown to the player
func (t Tier) String() string {
	switch t {
	case MaxBet:
		return "max bet"
	case IncreaseBet:
		return "increase bet"
	case MinBet:
		return "min bet"
	default:
		return "standard bet"
	}
}

// Suggestion is a betting recommendation for the current true count
type Suggestion struct {
	Tier        Tier
	Label       string
	Explanation string
}

// Counter tracks the running and true count for one shoe
type Counter struct {
	system       *System
	numDecks     int
	totalCards   int
	cardsSeen    int
	runningCount float64
}

// NewCounter creates a counter for a shoe of numDecks decks. A nil system
// means Wong Halves; numDecks <= 0 means DefaultDecks.
func NewCounter(numDecks int, sys *System) (*Counter, error) {
	if numDecks <= 0 {
		numDecks = DefaultDecks
	}
	if sys == nil {
		sys = WongHalves()
	}
	if err := sys.Validate(); err != nil {
		return nil, fmt.Errorf("invalid counting system %q: %w", sys.Name, err)
	}

	return &Counter{
		system:     sys,
		numDecks:   numDecks,
		totalCards: numDecks * cardsPerDeck,
	}, nil
}

// System returns the counting system in use
func (c *Counter) System() *System {
	return c.system
}

// AddCard counts a seen card. Ranks the system does not know are ignored
// and reported with a false return.
func (c *Counter) AddCard(r card.Rank) bool {
	w, ok := c.system.Weight(r)
	if !ok {
		return false
	}
	c.runningCount += w
	c.cardsSeen++
	return true
}

// RemoveCard reverses AddCard for undo
func (c *Counter) RemoveCard(r card.Rank) bool {
	w, ok := c.system.Weight(r)
	if !ok || c.cardsSeen == 0 {
		return false
	}
	c.runningCount -= w
	c.cardsSeen--
	return true
}

// RunningCount is the sum of the weights of every card seen
func (c *Counter) RunningCount() float64 { return c.runningCount }

// CardsSeen is the number of cards counted this shoe
func (c *Counter) CardsSeen() int { return c.cardsSeen }

// TotalCards is the size of the shoe in cards
func (c *Counter) TotalCards() int { return c.totalCards }

// NumDecks is the size of the shoe in decks
func (c *Counter) NumDecks() int { return c.numDecks }

// TrueCount returns the running count per remaining deck, rounded to two
// decimals. It is 0 once the shoe is exhausted.
func (c *Counter) TrueCount() float64 {
	decks := float64(c.totalCards-c.cardsSeen) / cardsPerDeck
	if decks <= 0 {
		return 0
	}
	return round2(c.runningCount / decks)
}

// DecksRemaining returns the unseen part of the shoe in decks, rounded to two
// decimals
func (c *Counter) DecksRemaining() float64 {
	return round2(float64(c.totalCards-c.cardsSeen) / cardsPerDeck)
}

// Penetration returns the fraction of the shoe already seen
func (c *Counter) Penetration() float64 {
	if c.totalCards == 0 {
		return 0
	}
	return float64(c.cardsSeen) / float64(c.totalCards)
}

// BettingSuggestion maps the true count onto a betting tier. Higher bands
// win when thresholds overlap.
func (c *Counter) BettingSuggestion() Suggestion {
	tc := c.TrueCount()
	th := c.system.Thresholds

	var (
		tier Tier
		edge string
	)
	switch {
	case tc >= th.MaxBet:
		tier, edge = MaxBet, "strong player advantage"
	case tc >= th.IncreaseBet:
		tier, edge = IncreaseBet, "player advantage"
	case tc <= minBetThreshold:
		tier, edge = MinBet, "house advantage"
	default:
		tier, edge = StandardBet, "neutral"
	}

	return Suggestion{
		Tier:        tier,
		Label:       tier.String(),
		Explanation: fmt.Sprintf("true count %.1f - %s", tc, edge),
	}
}

// ShouldTakeInsurance reports whether the true count reaches the insurance
// threshold
func (c *Counter) ShouldTakeInsurance() bool {
	return c.TrueCount() >= c.system.Thresholds.TakeInsurance
}

// Advantage estimates the player's edge on a 0..1 scale for display,
// mapping true counts -5..+5 linearly.
func (c *Counter) Advantage() float64 {
	a := (c.TrueCount() + 5) / 10
	return math.Max(0, math.Min(1, a))
}

// Reset zeroes the count for a fresh shoe
func (c *Counter) Reset() {
	c.cardsSeen = 0
	c.runningCount = 0
}

// NewShoe is Reset under the name the table uses
func (c *Counter) NewShoe() {
	c.Reset()
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
