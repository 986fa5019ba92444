package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-advisor/internal/card"
)

func row(s string) Row {
	r, err := ParseRow(strings.Fields(s))
	if err != nil {
		panic(err)
	}
	return r
}

func fill(c Code) Row {
	var r Row
	for i := range r {
		r[i] = c
	}
	return r
}

// testTables is an eight deck S17 DAS late surrender chart
func testTables() *Tables {
	hard := map[int]Row{}
	for total := 5; total <= 8; total++ {
		hard[total] = fill(CodeHit)
	}
	hard[9] = row("H D D D D H H H H H")
	hard[10] = row("D D D D D D D D H H")
	hard[11] = row("D D D D D D D D D H")
	hard[12] = row("H H S S S H H H H H")
	for total := 13; total <= 16; total++ {
		hard[total] = row("S S S S S H H H H H")
	}
	for total := 17; total <= 21; total++ {
		hard[total] = fill(CodeStand)
	}

	soft := map[int]Row{
		13: row("H H H D D H H H H H"),
		14: row("H H H D D H H H H H"),
		15: row("H H D D D H H H H H"),
		16: row("H H D D D H H H H H"),
		17: row("H D D D D H H H H H"),
		18: row("S Ds Ds Ds Ds S S H H H"),
		19: fill(CodeStand),
		20: fill(CodeStand),
		21: fill(CodeStand),
	}

	pairs := map[card.Rank]Row{
		card.Ace:   fill(CodeSplit),
		card.Two:   row("Y Y Y Y Y Y N N N N"),
		card.Three: row("Y Y Y Y Y Y N N N N"),
		card.Four:  row("N N N Y Y N N N N N"),
		card.Five:  fill(CodeNoSplit),
		card.Six:   row("Y Y Y Y Y N N N N N"),
		card.Seven: row("Y Y Y Y Y Y N N N N"),
		card.Eight: fill(CodeSplit),
		card.Nine:  row("Y Y Y Y Y N Y Y N N"),
		card.Ten:   fill(CodeNoSplit),
	}

	surrender := map[int]Row{}
	for total := 5; total <= 21; total++ {
		surrender[total] = fill(CodeNoSplit)
	}
	surrender[15] = row("N N N N N N N N Y N")
	surrender[16] = row("N N N N N N N Y Y Y")

	return &Tables{
		Settings:    Settings{Decks: 8, DealerStandsSoft17: true, DoubleAfterSplit: true, Surrender: "late"},
		ActionCodes: DefaultActionCodes(),
		DealerIndex: DefaultDealerIndex(),
		Hard:        hard,
		Soft:        soft,
		Pairs:       pairs,
		Surrender:   surrender,
	}
}

func dev(threshold float64, op Operator, action, basic Code) Deviation {
	return Deviation{Threshold: threshold, Operator: op, Action: action, Basic: basic}
}

func testDeviations() *Deviations {
	d := NoDeviations()

	d.Hard = map[string]Deviation{
		"16-10": dev(0, OpAtLeast, CodeStand, CodeHit),
		"15-10": dev(4, OpAtLeast, CodeStand, CodeHit),
		"16-9":  dev(4, OpAtLeast, CodeStand, CodeHit),
		"13-2":  dev(-1, OpAtMost, CodeHit, CodeStand),
		"13-3":  dev(-2, OpAtMost, CodeHit, CodeStand),
		"12-2":  dev(3, OpAtLeast, CodeStand, CodeHit),
		"12-3":  dev(2, OpAtLeast, CodeStand, CodeHit),
		"12-4":  dev(0, OpAtMost, CodeHit, CodeStand),
		"11-A":  dev(1, OpUnspecified, CodeDouble, CodeHit),
		"10-10": dev(4, OpUnspecified, CodeDouble, CodeHit),
		"10-A":  dev(4, OpUnspecified, CodeDouble, CodeHit),
		"9-2":   dev(1, OpUnspecified, CodeDouble, CodeHit),
		"9-7":   dev(3, OpAtLeast, CodeDouble, CodeHit),
	}
	d.Surrender = map[string]Deviation{
		"16-8":  dev(4, OpAtLeast, CodeSurrender, ""),
		"15-9":  dev(2, OpAtLeast, CodeSurrender, ""),
		"15-A":  dev(1, OpAtLeast, CodeSurrender, ""),
		"14-10": dev(3, OpAtLeast, CodeSurrender, ""),
		"15-10": dev(-1, OpAtMost, CodeHit, CodeSurrender),
		"16-9":  dev(-1, OpAtMost, CodeHit, CodeSurrender),
	}
	d.Soft = map[string]Deviation{
		"19-4": dev(3, OpAtLeast, CodeDouble, CodeStand),
		"19-5": dev(1, OpAtLeast, CodeDoubleOrStand, CodeStand),
		"19-6": dev(1, OpAtLeast, CodeDoubleOrStand, CodeStand),
		"17-2": dev(1, OpAtLeast, CodeDouble, CodeHit),
	}
	d.Pairs = map[string]Deviation{
		"10,10-4": dev(6, OpAtLeast, CodeSplit, CodeNoSplit),
		"10,10-5": dev(5, OpAtLeast, CodeSplit, CodeNoSplit),
		"10,10-6": dev(4, OpAtLeast, CodeSplit, CodeNoSplit),
	}
	return d
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(testTables(), testDeviations(), opts...)
	require.NoError(t, err)
	return e
}

func tc(v float64) *float64 {
	return &v
}

func cards(s string) []card.Rank {
	return card.MustParseList(s)
}
