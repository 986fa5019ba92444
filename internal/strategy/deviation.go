package strategy

import (
	"fmt"

	"github.com/lox/blackjack-advisor/internal/card"
)

// DefaultInsuranceThreshold is the true count at which insurance pays
const DefaultInsuranceThreshold = 3.0

// Operator compares a true count with a deviation threshold
type Operator int

const (
	OpUnspecified Operator = iota
	OpAtLeast              // >=
	OpAtMost               // <=
)

// ParseOperator accepts "", ">=" and "<="
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "":
		return OpUnspecified, nil
	case ">=":
		return OpAtLeast, nil
	case "<=":
		return OpAtMost, nil
	default:
		return OpUnspecified, fmt.Errorf("unknown comparison operator %q", s)
	}
}

func (o Operator) String() string {
	switch o {
	case OpAtLeast:
		return ">="
	case OpAtMost:
		return "<="
	default:
		return ""
	}
}

// Deviation overrides basic strategy for one hand and up-card once the true
// count crosses Threshold
type Deviation struct {
	Threshold   float64
	Operator    Operator
	Action      Code
	Basic       Code // play being replaced, used to infer a missing operator
	Description string
}

type outcome int

const (
	notApplicable outcome = iota
	applies
	holdsBasic // threshold crossed, entry says keep the basic play
)

// evaluate compares tc using the entry's operator, defaulting to >=
func (d Deviation) evaluate(tc float64) outcome {
	op := d.Operator
	if op == OpUnspecified {
		op = OpAtLeast
	}
	return d.compare(tc, op)
}

// evaluateInferred is used for hard hands, where older documents leave the
// operator out and it follows from the basic and deviation actions: a more
// aggressive play needs a high count, a more passive one a low count.
func (d Deviation) evaluateInferred(tc float64) outcome {
	op := d.Operator
	if op == OpUnspecified {
		op = inferOperator(d.Basic, d.Action)
	}
	return d.compare(tc, op)
}

func inferOperator(basic, action Code) Operator {
	switch {
	case basic == CodeHit && (action == CodeStand || action == CodeDouble || action == CodeSurrender):
		return OpAtLeast
	case basic == CodeStand && (action == CodeHit || action == CodeDouble):
		return OpAtMost
	default:
		return OpUnspecified
	}
}

func (d Deviation) compare(tc float64, op Operator) outcome {
	var crossed bool
	switch op {
	case OpAtLeast:
		crossed = tc >= d.Threshold
	case OpAtMost:
		crossed = tc <= d.Threshold
	default:
		return notApplicable
	}

	switch {
	case !crossed:
		return notApplicable
	case d.Action == CodeNoSplit:
		return holdsBasic
	default:
		return applies
	}
}

// Deviations holds the count-based overrides, keyed by HandKey or PairKey
type Deviations struct {
	InsuranceThreshold float64
	Hard               map[string]Deviation
	Soft               map[string]Deviation
	Pairs              map[string]Deviation
	Surrender          map[string]Deviation
}

// NoDeviations returns an empty set, leaving basic strategy untouched
func NoDeviations() *Deviations {
	return &Deviations{
		InsuranceThreshold: DefaultInsuranceThreshold,
		Hard:               map[string]Deviation{},
		Soft:               map[string]Deviation{},
		Pairs:              map[string]Deviation{},
		Surrender:          map[string]Deviation{},
	}
}

// Len returns the number of deviations across all tables
func (d *Deviations) Len() int {
	return len(d.Hard) + len(d.Soft) + len(d.Pairs) + len(d.Surrender)
}

// HandKey builds the "16-10" style key for a total against an up-card.
// Ten-valued up-cards share the "10" key.
func HandKey(total int, dealer card.Rank) string {
	return fmt.Sprintf("%d-%s", total, dealer.Key())
}

// PairKey builds the "10,10-5" style key for a pair against an up-card
func PairKey(r card.Rank, dealer card.Rank) string {
	return PairLabel(r) + "-" + string(dealer.Key())
}
