package tables

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// hclStrategy is the HCL (and HCL JSON) form of a strategy document
type hclStrategy struct {
	Settings    *hclSettings        `hcl:"settings,block"`
	Codes       []hclCode           `hcl:"code,block"`
	DealerIndex map[string]int      `hcl:"dealer_card_index,optional"`
	Hard        map[string][]string `hcl:"hard,optional"`
	Soft        map[string][]string `hcl:"soft,optional"`
	Pairs       map[string][]string `hcl:"pairs,optional"`
	Surrender   map[string][]string `hcl:"surrender,optional"`
}

type hclSettings struct {
	Decks              int    `hcl:"decks,optional"`
	DealerStandsSoft17 bool   `hcl:"dealer_stands_soft_17,optional"`
	DoubleAfterSplit   bool   `hcl:"double_after_split,optional"`
	Surrender          string `hcl:"surrender,optional"`
	Description        string `hcl:"description,optional"`
}

type hclCode struct {
	Code        string `hcl:"code,label"`
	Action      string `hcl:"action,optional"`
	Description string `hcl:"description,optional"`
}

// hclDeviations is the HCL form of a deviations document
type hclDeviations struct {
	Insurance  *hclInsurance  `hcl:"insurance,block"`
	Deviations []hclDeviation `hcl:"deviation,block"`
}

type hclInsurance struct {
	Threshold float64 `hcl:"true_count_threshold"`
}

type hclDeviation struct {
	Kind        string  `hcl:"kind,label"`
	Key         string  `hcl:"key,label"`
	Threshold   float64 `hcl:"true_count_threshold"`
	Operator    string  `hcl:"comparison_operator,optional"`
	Action      string  `hcl:"deviation_action"`
	Basic       string  `hcl:"basic_action,optional"`
	Description string  `hcl:"description,optional"`
}

// hclCounting is the HCL form of a counting system document
type hclCounting struct {
	System     hclSystem         `hcl:"counting_system,block"`
	CardValues map[string]string `hcl:"card_values,optional"`
	Properties *hclProperties    `hcl:"properties,block"`
	Thresholds *hclThresholds    `hcl:"betting_thresholds,block"`
	Advantages []string          `hcl:"advantages,optional"`
}

type hclSystem struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

type hclProperties struct {
	Balanced             bool    `hcl:"balanced,optional"`
	Level                int     `hcl:"level,optional"`
	InsuranceCorrelation float64 `hcl:"insurance_correlation,optional"`
	BettingCorrelation   float64 `hcl:"betting_correlation,optional"`
	PlayingEfficiency    float64 `hcl:"playing_efficiency,optional"`
}

type hclThresholds struct {
	IncreaseBet   *float64 `hcl:"increase_bet,optional"`
	MaxBet        *float64 `hcl:"max_bet,optional"`
	TakeInsurance *float64 `hcl:"take_insurance,optional"`
}

func decodeHCL(src []byte, name string, f Format, target any) error {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if f == FormatJSON {
		file, diags = parser.ParseJSON(src, name)
	} else {
		file, diags = parser.ParseHCL(src, name)
	}
	if diags.HasErrors() {
		return parseFailed(name, diags)
	}

	diags = gohcl.DecodeBody(file.Body, nil, target)
	if diags.HasErrors() {
		return parseFailed(name, diags)
	}
	return nil
}

func decodeHCLStrategy(src []byte, name string, f Format) (*strategyDoc, error) {
	var raw hclStrategy
	if err := decodeHCL(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := &strategyDoc{
		ActionCodes: make(map[string]strategy.ActionInfo, len(raw.Codes)),
		DealerIndex: raw.DealerIndex,
		Hard:        raw.Hard,
		Soft:        raw.Soft,
		Pairs:       raw.Pairs,
		Surrender:   raw.Surrender,
	}
	if raw.Settings != nil {
		doc.Settings = strategy.Settings(*raw.Settings)
	}
	for _, c := range raw.Codes {
		doc.ActionCodes[c.Code] = strategy.ActionInfo{Action: c.Action, Description: c.Description}
	}
	return doc, nil
}

func decodeHCLDeviations(src []byte, name string, f Format) (*deviationsDoc, error) {
	var raw hclDeviations
	if err := decodeHCL(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := newDeviationsDoc()
	if raw.Insurance != nil {
		doc.Insurance = raw.Insurance.Threshold
	}
	for _, d := range raw.Deviations {
		table, ok := doc.table(d.Kind)
		if !ok {
			return nil, invalid(name, "deviation."+d.Kind, "unknown deviation kind, expected hard, soft, pair or surrender")
		}
		table[d.Key] = deviationDoc{
			Threshold:   d.Threshold,
			Operator:    d.Operator,
			Action:      d.Action,
			Basic:       d.Basic,
			Description: d.Description,
		}
	}
	return doc, nil
}

func decodeHCLCounting(src []byte, name string, f Format) (*countingDoc, error) {
	var raw hclCounting
	if err := decodeHCL(src, name, f, &raw); err != nil {
		return nil, err
	}

	doc := &countingDoc{
		Name:        raw.System.Name,
		Description: raw.System.Description,
		CardValues:  make(map[string]any, len(raw.CardValues)),
		Advantages:  raw.Advantages,
	}
	for k, v := range raw.CardValues {
		doc.CardValues[k] = v
	}
	if raw.Properties != nil {
		doc.Properties = count.Properties(*raw.Properties)
	}
	if raw.Thresholds != nil {
		doc.IncreaseBet = floatOrNil(raw.Thresholds.IncreaseBet)
		doc.MaxBet = floatOrNil(raw.Thresholds.MaxBet)
		doc.TakeInsurance = floatOrNil(raw.Thresholds.TakeInsurance)
	}
	return doc, nil
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
