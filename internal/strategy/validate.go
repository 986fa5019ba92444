package strategy

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lox/blackjack-advisor/internal/card"
)

// ErrIncomplete is wrapped by every ValidationError
var ErrIncomplete = errors.New("incomplete strategy tables")

// ValidationError names the table and the entry that failed validation
type ValidationError struct {
	Table  string
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Table, e.Key, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrIncomplete
}

const (
	minHard = 5
	minSoft = 13
	maxHand = 21
)

// Validate checks that the tables cover every hand the engine can look up
func (t *Tables) Validate() error {
	if err := t.validateDealerIndex(); err != nil {
		return err
	}
	if err := validateTotals("hard", t.Hard, minHard); err != nil {
		return err
	}
	if err := validateTotals("soft", t.Soft, minSoft); err != nil {
		return err
	}

	for _, r := range PairRanks() {
		row, ok := t.Pairs[r]
		if !ok {
			return &ValidationError{Table: "pairs", Key: PairLabel(r), Reason: "missing"}
		}
		if err := validateRow("pairs", PairLabel(r), row); err != nil {
			return err
		}
	}

	if len(t.Surrender) > 0 {
		if err := validateTotals("surrender", t.Surrender, minHard); err != nil {
			return err
		}
	}

	for c := range t.ActionCodes {
		if !c.Valid() {
			return &ValidationError{Table: "action_codes", Key: string(c), Reason: "unknown code"}
		}
	}

	return nil
}

func (t *Tables) validateDealerIndex() error {
	for _, r := range card.Ranks() {
		i, ok := t.DealerIndex[r]
		if !ok {
			return &ValidationError{Table: "dealer_card_index", Key: string(r), Reason: "missing"}
		}
		if i < 0 || i >= Columns {
			return &ValidationError{
				Table:  "dealer_card_index",
				Key:    string(r),
				Reason: fmt.Sprintf("column %d out of range", i),
			}
		}
	}
	return nil
}

func validateTotals(table string, rows map[int]Row, from int) error {
	for total := from; total <= maxHand; total++ {
		row, ok := rows[total]
		if !ok {
			return &ValidationError{Table: table, Key: strconv.Itoa(total), Reason: "missing"}
		}
		if err := validateRow(table, strconv.Itoa(total), row); err != nil {
			return err
		}
	}
	return nil
}

func validateRow(table, key string, row Row) error {
	for i, c := range row {
		if !c.Valid() {
			return &ValidationError{
				Table:  table,
				Key:    key,
				Reason: fmt.Sprintf("column %d has unknown code %q", i, c),
			}
		}
	}
	return nil
}

// Validate checks that every deviation names a known action
func (d *Deviations) Validate() error {
	tables := []struct {
		name string
		m    map[string]Deviation
	}{
		{"deviations.hard_hands", d.Hard},
		{"deviations.soft_hands", d.Soft},
		{"deviations.pairs", d.Pairs},
		{"deviations.surrender", d.Surrender},
	}

	for _, tbl := range tables {
		for key, dev := range tbl.m {
			if !dev.Action.Valid() {
				return &ValidationError{Table: tbl.name, Key: key, Reason: fmt.Sprintf("unknown deviation action %q", dev.Action)}
			}
			if dev.Basic != "" && !dev.Basic.Valid() {
				return &ValidationError{Table: tbl.name, Key: key, Reason: fmt.Sprintf("unknown basic action %q", dev.Basic)}
			}
		}
	}
	return nil
}
