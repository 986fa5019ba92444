package tables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
)

const defaultSystemName = "Wong Halves"

type countingDoc struct {
	Name        string
	Description string
	CardValues  map[string]any
	Properties  count.Properties
	Advantages  []string

	// nil when the document omits the threshold
	IncreaseBet   any
	MaxBet        any
	TakeInsurance any
}

// LoadCountingSystem reads a counting system document
func LoadCountingSystem(path string) (*count.System, error) {
	src, f, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return parseCounting(src, path, f)
}

func parseCounting(src []byte, name string, f Format) (*count.System, error) {
	var (
		doc *countingDoc
		err error
	)
	switch f {
	case FormatHCL, FormatJSON:
		doc, err = decodeHCLCounting(src, name, f)
	case FormatYAML, FormatTOML:
		doc, err = decodeLayoutCounting(src, name, f)
	default:
		err = parseFailed(name, fmt.Errorf("unsupported format %q", f))
	}
	if err != nil {
		return nil, err
	}
	return doc.build(name)
}

func (d *countingDoc) build(name string) (*count.System, error) {
	if len(d.CardValues) == 0 {
		return nil, invalid(name, "card_values", "card values are required")
	}

	sys := &count.System{
		Name:        d.Name,
		Description: d.Description,
		Weights:     make(map[card.Rank]float64, len(d.CardValues)),
		Properties:  d.Properties,
		Thresholds:  count.DefaultThresholds(),
		Advantages:  d.Advantages,
	}
	if sys.Name == "" {
		sys.Name = defaultSystemName
	}

	for k, v := range d.CardValues {
		r, err := card.Parse(k)
		if err != nil {
			return nil, invalid(name, "card_values."+k, "unknown rank")
		}
		w, err := toFloat(v)
		if err != nil {
			return nil, invalid(name, "card_values."+k, "%v", err)
		}
		sys.Weights[r] = w
	}
	for _, r := range card.Ranks() {
		if _, ok := sys.Weights[r]; !ok {
			return nil, invalid(name, "card_values."+string(r), "missing weight")
		}
	}

	thresholds := []struct {
		key string
		in  any
		out *float64
	}{
		{"increase_bet", d.IncreaseBet, &sys.Thresholds.IncreaseBet},
		{"max_bet", d.MaxBet, &sys.Thresholds.MaxBet},
		{"take_insurance", d.TakeInsurance, &sys.Thresholds.TakeInsurance},
	}
	for _, th := range thresholds {
		if th.in == nil {
			continue
		}
		v, err := toFloat(th.in)
		if err != nil {
			return nil, invalid(name, "betting_thresholds."+th.key, "%v", err)
		}
		*th.out = v
	}

	return sys, nil
}

// toFloat accepts the numeric shapes the document decoders produce. Numeric
// strings are accepted too, since card values are often quoted ("-0.5").
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}
