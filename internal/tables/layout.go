package tables

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// The YAML and TOML documents share one section layout. Both struct tags
// are kept on every field so a document converts between the two formats
// without renaming anything.

type strategyLayout struct {
	Settings    settingsLayout          `yaml:"settings" toml:"settings"`
	ActionCodes map[string]actionLayout `yaml:"action_codes" toml:"action_codes"`
	DealerIndex map[string]int          `yaml:"dealer_card_index" toml:"dealer_card_index"`
	Hard        handsLayout             `yaml:"hard_strategy" toml:"hard_strategy"`
	Soft        handsLayout             `yaml:"soft_strategy" toml:"soft_strategy"`
	Pairs       pairsLayout             `yaml:"pair_strategy" toml:"pair_strategy"`
	Surrender   *handsLayout            `yaml:"surrender_strategy,omitempty" toml:"surrender_strategy,omitempty"`
}

type settingsLayout struct {
	Decks              int    `yaml:"decks" toml:"decks"`
	DealerStandsSoft17 bool   `yaml:"dealer_stands_soft_17" toml:"dealer_stands_soft_17"`
	DoubleAfterSplit   bool   `yaml:"double_after_split" toml:"double_after_split"`
	Surrender          string `yaml:"surrender,omitempty" toml:"surrender,omitempty"`
	Description        string `yaml:"description,omitempty" toml:"description,omitempty"`
}

type actionLayout struct {
	Action      string `yaml:"action" toml:"action"`
	Description string `yaml:"description" toml:"description"`
}

type handsLayout struct {
	Hands map[string]flowRow `yaml:"hands" toml:"hands"`
}

type pairsLayout struct {
	Pairs map[string]flowRow `yaml:"pairs" toml:"pairs"`
}

// flowRow is written as a single line sequence: [H, D, D, ...]
type flowRow []string

func (r flowRow) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range r {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c})
	}
	return node, nil
}

type deviationsLayout struct {
	Deviations deviationTablesLayout `yaml:"deviations" toml:"deviations"`
}

type deviationTablesLayout struct {
	Insurance *insuranceLayout           `yaml:"insurance,omitempty" toml:"insurance,omitempty"`
	Hard      map[string]deviationLayout `yaml:"hard_hands,omitempty" toml:"hard_hands,omitempty"`
	Soft      map[string]deviationLayout `yaml:"soft_hands,omitempty" toml:"soft_hands,omitempty"`
	Pairs     map[string]deviationLayout `yaml:"pairs,omitempty" toml:"pairs,omitempty"`
	Surrender map[string]deviationLayout `yaml:"surrender,omitempty" toml:"surrender,omitempty"`
}

type insuranceLayout struct {
	Threshold any `yaml:"true_count_threshold" toml:"true_count_threshold"`
}

type deviationLayout struct {
	Threshold   any    `yaml:"true_count_threshold" toml:"true_count_threshold"`
	Operator    string `yaml:"comparison_operator,omitempty" toml:"comparison_operator,omitempty"`
	Action      string `yaml:"deviation_action" toml:"deviation_action"`
	Basic       string `yaml:"basic_action,omitempty" toml:"basic_action,omitempty"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

type countingLayout struct {
	System     systemLayout      `yaml:"counting_system" toml:"counting_system"`
	CardValues map[string]any    `yaml:"card_values" toml:"card_values"`
	Properties *propertiesLayout `yaml:"properties,omitempty" toml:"properties,omitempty"`
	Thresholds *thresholdsLayout `yaml:"betting_thresholds,omitempty" toml:"betting_thresholds,omitempty"`
	Advantages []string          `yaml:"advantages,omitempty" toml:"advantages,omitempty"`
}

type systemLayout struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

type propertiesLayout struct {
	Balanced             bool    `yaml:"balanced" toml:"balanced"`
	Level                int     `yaml:"level" toml:"level"`
	InsuranceCorrelation float64 `yaml:"insurance_correlation" toml:"insurance_correlation"`
	BettingCorrelation   float64 `yaml:"betting_correlation" toml:"betting_correlation"`
	PlayingEfficiency    float64 `yaml:"playing_efficiency" toml:"playing_efficiency"`
}

type thresholdsLayout struct {
	IncreaseBet   any `yaml:"increase_bet,omitempty" toml:"increase_bet,omitempty"`
	MaxBet        any `yaml:"max_bet,omitempty" toml:"max_bet,omitempty"`
	TakeInsurance any `yaml:"take_insurance,omitempty" toml:"take_insurance,omitempty"`
}

func decodeLayout(src []byte, name string, f Format, v any) error {
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(src, v)
	case FormatTOML:
		_, err = toml.Decode(string(src), v)
	default:
		err = fmt.Errorf("unsupported format %q", f)
	}
	if err != nil {
		return parseFailed(name, err)
	}
	return nil
}

func decodeLayoutStrategy(src []byte, name string, f Format) (*strategyDoc, error) {
	var raw strategyLayout
	if err := decodeLayout(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := &strategyDoc{
		Settings:    strategy.Settings(raw.Settings),
		ActionCodes: make(map[string]strategy.ActionInfo, len(raw.ActionCodes)),
		DealerIndex: raw.DealerIndex,
		Hard:        rows(raw.Hard.Hands),
		Soft:        rows(raw.Soft.Hands),
		Pairs:       rows(raw.Pairs.Pairs),
	}
	if raw.Surrender != nil {
		doc.Surrender = rows(raw.Surrender.Hands)
	}
	for k, a := range raw.ActionCodes {
		doc.ActionCodes[k] = strategy.ActionInfo(a)
	}
	return doc, nil
}

func rows(in map[string]flowRow) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, r := range in {
		out[k] = r
	}
	return out
}

func decodeLayoutDeviations(src []byte, name string, f Format) (*deviationsDoc, error) {
	var raw deviationsLayout
	if err := decodeLayout(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := newDeviationsDoc()
	if raw.Deviations.Insurance != nil {
		doc.Insurance = raw.Deviations.Insurance.Threshold
	}

	sections := map[string]map[string]deviationLayout{
		"hard_hands": raw.Deviations.Hard,
		"soft_hands": raw.Deviations.Soft,
		"pairs":      raw.Deviations.Pairs,
		"surrender":  raw.Deviations.Surrender,
	}
	for kind, entries := range sections {
		table, _ := doc.table(kind)
		for k, d := range entries {
			table[k] = deviationDoc(d)
		}
	}
	return doc, nil
}

func decodeLayoutCounting(src []byte, name string, f Format) (*countingDoc, error) {
	var raw countingLayout
	if err := decodeLayout(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := &countingDoc{
		Name:        raw.System.Name,
		Description: raw.System.Description,
		CardValues:  raw.CardValues,
		Advantages:  raw.Advantages,
	}
	if raw.Properties != nil {
		doc.Properties = count.Properties(*raw.Properties)
	}
	if raw.Thresholds != nil {
		doc.IncreaseBet = raw.Thresholds.IncreaseBet
		doc.MaxBet = raw.Thresholds.MaxBet
		doc.TakeInsurance = raw.Thresholds.TakeInsurance
	}
	return doc, nil
}

func encodeLayout(w io.Writer, f Format, v any) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.Indent = "\t"
		return enc.Encode(v)
	default:
		return fmt.Errorf("cannot encode %s documents", f)
	}
}

// EncodeStrategy writes t as a YAML or TOML document
func EncodeStrategy(w io.Writer, f Format, t *strategy.Tables) error {
	return encodeLayout(w, f, layoutFromTables(t))
}

// EncodeDeviations writes d as a YAML or TOML document
func EncodeDeviations(w io.Writer, f Format, d *strategy.Deviations) error {
	return encodeLayout(w, f, layoutFromDeviations(d))
}

// EncodeCountingSystem writes s as a YAML or TOML document
func EncodeCountingSystem(w io.Writer, f Format, s *count.System) error {
	return encodeLayout(w, f, layoutFromSystem(s))
}

func layoutFromTables(t *strategy.Tables) strategyLayout {
	out := strategyLayout{
		Settings:    settingsLayout(t.Settings),
		ActionCodes: make(map[string]actionLayout, len(t.ActionCodes)),
		DealerIndex: make(map[string]int, len(t.DealerIndex)),
		Hard:        handsLayout{Hands: totalsLayout(t.Hard)},
		Soft:        handsLayout{Hands: totalsLayout(t.Soft)},
		Pairs:       pairsLayout{Pairs: make(map[string]flowRow, len(t.Pairs))},
	}
	for c, info := range t.ActionCodes {
		out.ActionCodes[string(c)] = actionLayout(info)
	}
	for r, col := range t.DealerIndex {
		out.DealerIndex[string(r)] = col
	}
	for r, row := range t.Pairs {
		out.Pairs.Pairs[strategy.PairLabel(r)] = rowLayout(row)
	}
	if len(t.Surrender) > 0 {
		out.Surrender = &handsLayout{Hands: totalsLayout(t.Surrender)}
	}
	return out
}

func totalsLayout(in map[int]strategy.Row) map[string]flowRow {
	out := make(map[string]flowRow, len(in))
	for total, row := range in {
		out[strconv.Itoa(total)] = rowLayout(row)
	}
	return out
}

func rowLayout(r strategy.Row) flowRow {
	out := make(flowRow, len(r))
	for i, c := range r {
		out[i] = string(c)
	}
	return out
}

func layoutFromDeviations(d *strategy.Deviations) deviationsLayout {
	conv := func(in map[string]strategy.Deviation) map[string]deviationLayout {
		if len(in) == 0 {
			return nil
		}
		out := make(map[string]deviationLayout, len(in))
		for k, dev := range in {
			out[k] = deviationLayout{
				Threshold:   dev.Threshold,
				Operator:    dev.Operator.String(),
				Action:      string(dev.Action),
				Basic:       string(dev.Basic),
				Description: dev.Description,
			}
		}
		return out
	}

	return deviationsLayout{Deviations: deviationTablesLayout{
		Insurance: &insuranceLayout{Threshold: d.InsuranceThreshold},
		Hard:      conv(d.Hard),
		Soft:      conv(d.Soft),
		Pairs:     conv(d.Pairs),
		Surrender: conv(d.Surrender),
	}}
}

func layoutFromSystem(s *count.System) countingLayout {
	values := make(map[string]any, len(s.Weights))
	for _, r := range card.Ranks() {
		if w, ok := s.Weights[r]; ok {
			values[string(r)] = w
		}
	}

	props := propertiesLayout(s.Properties)
	return countingLayout{
		System:     systemLayout{Name: s.Name, Description: s.Description},
		CardValues: values,
		Properties: &props,
		Thresholds: &thresholdsLayout{
			IncreaseBet:   s.Thresholds.IncreaseBet,
			MaxBet:        s.Thresholds.MaxBet,
			TakeInsurance: s.Thresholds.TakeInsurance,
		},
		Advantages: s.Advantages,
	}
}
