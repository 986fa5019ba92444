package tables

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// strategyDoc is a strategy document after syntax decoding, before any
// keys or codes are interpreted
type strategyDoc struct {
	Settings    strategy.Settings
	ActionCodes map[string]strategy.ActionInfo
	DealerIndex map[string]int
	Hard        map[string][]string
	Soft        map[string][]string
	Pairs       map[string][]string
	Surrender   map[string][]string
}

// LoadStrategy reads a strategy document. The format follows the file
// extension.
func LoadStrategy(path string) (*strategy.Tables, error) {
	src, f, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return parseStrategy(src, path, f)
}

func parseStrategy(src []byte, name string, f Format) (*strategy.Tables, error) {
	var (
		doc *strategyDoc
		err error
	)
	switch f {
	case FormatHCL, FormatJSON:
		doc, err = decodeHCLStrategy(src, name, f)
	case FormatYAML, FormatTOML:
		doc, err = decodeLayoutStrategy(src, name, f)
	default:
		err = parseFailed(name, fmt.Errorf("unsupported format %q", f))
	}
	if err != nil {
		return nil, err
	}
	return doc.build(name)
}

func (d *strategyDoc) build(name string) (*strategy.Tables, error) {
	t := &strategy.Tables{
		Settings:    d.Settings,
		ActionCodes: make(map[strategy.Code]strategy.ActionInfo, len(d.ActionCodes)),
		DealerIndex: make(map[card.Rank]int, len(d.DealerIndex)),
		Pairs:       make(map[card.Rank]strategy.Row, len(d.Pairs)),
	}

	for k, info := range d.ActionCodes {
		c, err := strategy.ParseCode(k)
		if err != nil {
			return nil, invalid(name, "action_codes."+k, "%v", err)
		}
		t.ActionCodes[c] = info
	}

	for k, col := range d.DealerIndex {
		r := card.Rank(k)
		if !r.Valid() {
			return nil, invalid(name, "dealer_card_index."+k, "unknown rank")
		}
		t.DealerIndex[r] = col
	}

	var err error
	if t.Hard, err = totalRows(name, "hard", d.Hard); err != nil {
		return nil, err
	}
	if t.Soft, err = totalRows(name, "soft", d.Soft); err != nil {
		return nil, err
	}
	if t.Surrender, err = totalRows(name, "surrender", d.Surrender); err != nil {
		return nil, err
	}

	for k, codes := range d.Pairs {
		r, err := strategy.ParsePairLabel(k)
		if err != nil {
			return nil, invalid(name, "pairs."+k, "%v", err)
		}
		row, err := strategy.ParseRow(codes)
		if err != nil {
			return nil, invalid(name, "pairs."+k, "%v", err)
		}
		t.Pairs[r] = row
	}

	if err := t.Validate(); err != nil {
		return nil, fromStrategyError(name, err)
	}
	return t, nil
}

func totalRows(name, table string, rows map[string][]string) (map[int]strategy.Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	out := make(map[int]strategy.Row, len(rows))
	for k, codes := range rows {
		total, err := strconv.Atoi(k)
		if err != nil {
			return nil, invalid(name, table+"."+k, "hand total is not a number")
		}
		row, err := strategy.ParseRow(codes)
		if err != nil {
			return nil, invalid(name, table+"."+k, "%v", err)
		}
		out[total] = row
	}
	return out, nil
}

func fromStrategyError(name string, err error) error {
	var verr *strategy.ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{
			Document: name,
			Key:      verr.Table + "." + verr.Key,
			Reason:   verr.Reason,
			cause:    err,
		}
	}
	return &ValidationError{Document: name, Reason: err.Error(), cause: err}
}
