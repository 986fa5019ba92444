package tables

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

type deviationDoc struct {
	Threshold   any // number or numeric string, nil when missing
	Operator    string
	Action      string
	Basic       string
	Description string
}

type deviationsDoc struct {
	Insurance any
	Hard      map[string]deviationDoc
	Soft      map[string]deviationDoc
	Pairs     map[string]deviationDoc
	Surrender map[string]deviationDoc
}

func newDeviationsDoc() *deviationsDoc {
	return &deviationsDoc{
		Hard:      map[string]deviationDoc{},
		Soft:      map[string]deviationDoc{},
		Pairs:     map[string]deviationDoc{},
		Surrender: map[string]deviationDoc{},
	}
}

// table maps a deviation kind onto its table. Both the HCL block labels and
// the section names of the YAML layout are accepted.
func (d *deviationsDoc) table(kind string) (map[string]deviationDoc, bool) {
	switch kind {
	case "hard", "hard_hands":
		return d.Hard, true
	case "soft", "soft_hands":
		return d.Soft, true
	case "pair", "pairs":
		return d.Pairs, true
	case "surrender":
		return d.Surrender, true
	default:
		return nil, false
	}
}

// LoadDeviations reads a deviations document. A missing file is not an
// error: the result is an empty set and basic strategy applies unchanged.
func LoadDeviations(path string) (*strategy.Deviations, error) {
	src, f, err := readDocument(path)
	if errors.Is(err, ErrNotFound) {
		return strategy.NoDeviations(), nil
	}
	if err != nil {
		return nil, err
	}
	return parseDeviations(src, path, f)
}

func parseDeviations(src []byte, name string, f Format) (*strategy.Deviations, error) {
	var (
		doc *deviationsDoc
		err error
	)
	switch f {
	case FormatHCL, FormatJSON:
		doc, err = decodeHCLDeviations(src, name, f)
	case FormatYAML, FormatTOML:
		doc, err = decodeLayoutDeviations(src, name, f)
	default:
		err = parseFailed(name, fmt.Errorf("unsupported format %q", f))
	}
	if err != nil {
		return nil, err
	}
	return doc.build(name)
}

func (d *deviationsDoc) build(name string) (*strategy.Deviations, error) {
	out := strategy.NoDeviations()

	if d.Insurance != nil {
		v, err := toFloat(d.Insurance)
		if err != nil {
			return nil, invalid(name, "insurance.true_count_threshold", "%v", err)
		}
		out.InsuranceThreshold = v
	}

	tables := []struct {
		section string
		in      map[string]deviationDoc
		out     map[string]strategy.Deviation
		pairs   bool
	}{
		{"hard_hands", d.Hard, out.Hard, false},
		{"soft_hands", d.Soft, out.Soft, false},
		{"pairs", d.Pairs, out.Pairs, true},
		{"surrender", d.Surrender, out.Surrender, false},
	}

	for _, tbl := range tables {
		for k, raw := range tbl.in {
			where := tbl.section + "." + k

			key, err := canonicalKey(k, tbl.pairs)
			if err != nil {
				return nil, invalid(name, where, "%v", err)
			}
			dev, err := raw.build()
			if err != nil {
				return nil, invalid(name, where, "%v", err)
			}
			tbl.out[key] = dev
		}
	}

	if err := out.Validate(); err != nil {
		return nil, fromStrategyError(name, err)
	}
	return out, nil
}

func (raw deviationDoc) build() (strategy.Deviation, error) {
	var dev strategy.Deviation

	if raw.Threshold == nil {
		return dev, fmt.Errorf("true_count_threshold is required")
	}
	threshold, err := toFloat(raw.Threshold)
	if err != nil {
		return dev, err
	}

	op, err := strategy.ParseOperator(raw.Operator)
	if err != nil {
		return dev, err
	}

	action, err := strategy.ParseCode(raw.Action)
	if err != nil {
		return dev, fmt.Errorf("deviation_action: %w", err)
	}

	var basic strategy.Code
	if raw.Basic != "" {
		if basic, err = strategy.ParseCode(raw.Basic); err != nil {
			return dev, fmt.Errorf("basic_action: %w", err)
		}
	}

	return strategy.Deviation{
		Threshold:   threshold,
		Operator:    op,
		Action:      action,
		Basic:       basic,
		Description: raw.Description,
	}, nil
}

// canonicalKey parses "16-10" or "10,10-5" and rebuilds it with the
// engine's key functions, so "16-K" and "J,J-5" land on the right entries.
func canonicalKey(k string, pair bool) (string, error) {
	i := strings.LastIndex(k, "-")
	if i <= 0 || i == len(k)-1 {
		return "", fmt.Errorf("key must look like %q", map[bool]string{false: "16-10", true: "10,10-5"}[pair])
	}

	dealer, err := card.Parse(k[i+1:])
	if err != nil {
		return "", err
	}

	if pair {
		r, err := strategy.ParsePairLabel(k[:i])
		if err != nil {
			return "", err
		}
		return strategy.PairKey(r, dealer), nil
	}

	total, err := strconv.Atoi(k[:i])
	if err != nil {
		return "", fmt.Errorf("hand total %q is not a number", k[:i])
	}
	return strategy.HandKey(total, dealer), nil
}
