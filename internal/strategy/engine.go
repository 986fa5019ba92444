package strategy

import (
	"fmt"

	"github.com/lox/blackjack-advisor/internal/card"
)

// Action is the play a Decision recommends
type Action int

const (
	NoHand Action = iota
	InvalidDealer
	Bust
	Hit
	Stand
	Double
	Split
	Surrender
)

func (a Action) String() string {
	switch a {
	case NoHand:
		return "no hand"
	case InvalidDealer:
		return "invalid dealer card"
	case Bust:
		return "bust"
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Playable reports whether the action is a move at the table rather than a
// report about the input
func (a Action) Playable() bool {
	return a >= Hit
}

// Decision is the engine's answer for one hand
type Decision struct {
	Action      Action
	Display     string // action text from the tables
	Explanation string
	Code        Code // table code behind the decision, empty for input reports
	Deviation   bool // produced by a count deviation
}

const deviationNote = " (count deviation)"

// surrender rows mark hands to give up with Y
const surrenderYes = CodeSplit

// Engine evaluates basic strategy and count deviations. It holds no per-hand
// state and never mutates its tables.
type Engine struct {
	tables         *Tables
	deviations     *Deviations
	allowSurrender bool
	insurance      float64
}

// Option configures an Engine
type Option func(*Engine)

// WithSurrender enables or disables late surrender (default enabled)
func WithSurrender(allow bool) Option {
	return func(e *Engine) {
		e.allowSurrender = allow
	}
}

// WithInsuranceThreshold overrides the threshold from the deviations
func WithInsuranceThreshold(tc float64) Option {
	return func(e *Engine) {
		e.insurance = tc
	}
}

// New validates the tables and builds an engine. A nil d means basic
// strategy only.
func New(t *Tables, d *Deviations, opts ...Option) (*Engine, error) {
	if t == nil {
		return nil, fmt.Errorf("strategy tables are required")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if d == nil {
		d = NoDeviations()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		tables:         t,
		deviations:     d,
		allowSurrender: true,
		insurance:      d.InsuranceThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// WithSurrender returns a copy of the engine with surrender toggled. The
// tables are shared.
func (e *Engine) WithSurrender(allow bool) *Engine {
	c := *e
	c.allowSurrender = allow
	return &c
}

// SurrenderAllowed reports whether late surrender is offered
func (e *Engine) SurrenderAllowed() bool { return e.allowSurrender }

// InsuranceThreshold is the true count at which insurance is taken
func (e *Engine) InsuranceThreshold() float64 { return e.insurance }

// Tables returns the basic strategy tables
func (e *Engine) Tables() *Tables { return e.tables }

// Deviations returns the count deviations
func (e *Engine) Deviations() *Deviations { return e.deviations }

// CalculateHandValue returns the total of cards and whether it is soft
func (e *Engine) CalculateHandValue(cards []card.Rank) (int, bool) {
	return card.HandValue(cards)
}

// ShouldTakeInsurance reports whether tc reaches the insurance threshold
func (e *Engine) ShouldTakeInsurance(tc float64) bool {
	return tc >= e.insurance
}

// Decide returns the recommended play for cards against the dealer's
// up-card. A nil trueCount skips every count deviation.
//
// Layers are evaluated in order and the first one that produces a play
// wins: surrender deviations, basic surrender, pair/soft/hard deviations,
// then the basic strategy tables.
func (e *Engine) Decide(cards []card.Rank, dealer card.Rank, trueCount *float64) Decision {
	if len(cards) == 0 {
		return Decision{Action: NoHand, Display: "no hand", Explanation: "add the player's cards"}
	}

	col, ok := e.tables.DealerIndex[dealer]
	if !ok {
		return Decision{Action: InvalidDealer, Display: "invalid dealer card", Explanation: "choose a valid dealer card"}
	}

	total, soft := card.HandValue(cards)
	if total > 21 {
		return Decision{Action: Bust, Display: "bust", Explanation: fmt.Sprintf("hand total %d", total)}
	}

	pair := len(cards) == 2 && cards[0] == cards[1]
	eights := pair && cards[0] == card.Eight

	skipBasicSurrender := false
	if trueCount != nil && e.allowSurrender && !eights {
		if dev, ok := e.deviations.Surrender[HandKey(total, dealer)]; ok && dev.evaluate(*trueCount) == applies {
			if dev.Action == CodeSurrender {
				return e.deviationDecision(Surrender, CodeSurrender, dev)
			}
			skipBasicSurrender = true
		}
	}

	if !skipBasicSurrender && e.allowSurrender && len(cards) == 2 && !soft {
		if row, ok := e.tables.Surrender[total]; ok && !eights && row[col] == surrenderYes {
			return e.basicDecision(Surrender, CodeSurrender)
		}
	}

	if trueCount != nil {
		if d, ok := e.checkDeviations(cards, total, soft, pair, eights, dealer, *trueCount); ok {
			return d
		}
	}

	return e.basicStrategy(cards, total, soft, pair, col)
}

// checkDeviations applies pair, soft and hard deviations in that order. 8,8
// is never played on its hard 16.
func (e *Engine) checkDeviations(cards []card.Rank, total int, soft, pair, eights bool, dealer card.Rank, tc float64) (Decision, bool) {
	if pair {
		dev, ok := e.deviations.Pairs[PairKey(cards[0], dealer)]
		if ok && dev.Action == CodeSplit && dev.evaluate(tc) == applies {
			return e.deviationDecision(Split, CodeSplit, dev), true
		}
	}
	if eights {
		return Decision{}, false
	}

	key := HandKey(total, dealer)
	if soft {
		dev, ok := e.deviations.Soft[key]
		if ok && dev.evaluate(tc) == applies {
			return e.resolveDeviation(dev, len(cards)), true
		}
		return Decision{}, false
	}

	dev, ok := e.deviations.Hard[key]
	if ok && dev.evaluateInferred(tc) == applies {
		return e.resolveDeviation(dev, len(cards)), true
	}
	return Decision{}, false
}

// resolveDeviation turns a deviation's code into a play, degrading doubles
// on hands that already have more than two cards
func (e *Engine) resolveDeviation(dev Deviation, n int) Decision {
	switch dev.Action {
	case CodeDoubleOrStand:
		if n > 2 {
			return e.cannotDouble(Stand, CodeStand, "cannot double, standing instead"+deviationNote, true)
		}
		return e.deviationDecision(Double, CodeDouble, dev)
	case CodeDouble:
		if n > 2 {
			return e.cannotDouble(Hit, CodeHit, "cannot double, hitting instead"+deviationNote, true)
		}
		return e.deviationDecision(Double, CodeDouble, dev)
	case CodeSurrender:
		if !e.allowSurrender || n > 2 {
			return e.deviationDecision(Hit, CodeHit, dev)
		}
		return e.deviationDecision(Surrender, CodeSurrender, dev)
	case CodeStand:
		return e.deviationDecision(Stand, CodeStand, dev)
	case CodeSplit:
		return e.deviationDecision(Split, CodeSplit, dev)
	default:
		return e.deviationDecision(Hit, CodeHit, dev)
	}
}

func (e *Engine) splits(r card.Rank, col int) bool {
	row, ok := e.tables.Pairs[r.Key()]
	return ok && row[col] == CodeSplit
}

func (e *Engine) basicStrategy(cards []card.Rank, total int, soft, pair bool, col int) Decision {
	if pair && e.splits(cards[0], col) {
		return e.basicDecision(Split, CodeSplit)
	}

	code := CodeHit
	if row, ok := e.tables.Soft[total]; soft && ok {
		code = row[col]
	} else if row, ok := e.tables.Hard[total]; ok {
		code = row[col]
	}

	info, ok := e.tables.ActionCodes[code]
	if !ok || info.Action == "" {
		return fallback(total)
	}

	n := len(cards)
	switch code {
	case CodeDoubleOrStand:
		if n > 2 {
			return e.cannotDouble(Stand, CodeStand, "cannot double, standing", false)
		}
		return e.basicDecision(Double, code)
	case CodeDouble:
		if n > 2 {
			return e.cannotDouble(Hit, CodeHit, "cannot double, hitting", false)
		}
		return e.basicDecision(Double, code)
	case CodeSurrender:
		if e.allowSurrender && n == 2 {
			return e.basicDecision(Surrender, code)
		}
		return e.basicDecision(Hit, CodeHit)
	case CodeStand:
		return e.basicDecision(Stand, code)
	case CodeSplit:
		return e.basicDecision(Split, code)
	case CodeHit:
		return e.basicDecision(Hit, code)
	default:
		return fallback(total)
	}
}

// fallback covers codes with no display text
func fallback(total int) Decision {
	if total >= 17 {
		return Decision{Action: Stand, Display: "Stand", Explanation: "hand total is 17 or more", Code: CodeStand}
	}
	return Decision{Action: Hit, Display: "Hit", Explanation: "hand total is below 17", Code: CodeHit}
}

func (e *Engine) info(code Code) ActionInfo {
	if info, ok := e.tables.ActionCodes[code]; ok && info.Action != "" {
		return info
	}
	return DefaultActionCodes()[code]
}

func (e *Engine) basicDecision(a Action, code Code) Decision {
	info := e.info(code)
	return Decision{
		Action:      a,
		Display:     info.Action,
		Explanation: info.Description,
		Code:        code,
	}
}

func (e *Engine) deviationDecision(a Action, code Code, dev Deviation) Decision {
	info := e.info(code)
	desc := dev.Description
	if desc == "" {
		desc = info.Description
	}
	return Decision{
		Action:      a,
		Display:     info.Action,
		Explanation: desc + deviationNote,
		Code:        code,
		Deviation:   true,
	}
}

func (e *Engine) cannotDouble(a Action, code Code, explanation string, deviation bool) Decision {
	return Decision{
		Action:      a,
		Display:     e.info(code).Action,
		Explanation: explanation,
		Code:        code,
		Deviation:   deviation,
	}
}
