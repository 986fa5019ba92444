package tables

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultStrategy(t *testing.T) {
	tables, err := DefaultStrategy()
	require.NoError(t, err)

	assert.Equal(t, 8, tables.Settings.Decks)
	assert.True(t, tables.Settings.DealerStandsSoft17)
	assert.Equal(t, strategy.CodeHit, tables.Hard[16][8])
	assert.Equal(t, strategy.CodeDoubleOrStand, tables.Soft[18][1])
	assert.Equal(t, strategy.CodeSplit, tables.Pairs[card.Eight][9])
	assert.Equal(t, strategy.CodeSplit, tables.Surrender[16][9])
	assert.Equal(t, strategy.CodeNoSplit, tables.Surrender[16][6])
	assert.Equal(t, "Hit", tables.ActionCodes[strategy.CodeHit].Action)
	assert.Equal(t, strategy.DefaultDealerIndex(), tables.DealerIndex)
}

func TestDefaultDeviations(t *testing.T) {
	d, err := DefaultDeviations()
	require.NoError(t, err)

	assert.Equal(t, 29, d.Len())
	assert.Equal(t, 3.0, d.InsuranceThreshold)
	assert.Equal(t, strategy.OpAtLeast, d.Hard["16-10"].Operator)
	assert.Equal(t, strategy.OpUnspecified, d.Hard["11-A"].Operator)
	assert.Equal(t, strategy.CodeSplit, d.Pairs["10,10-5"].Action)
	assert.Equal(t, -1.0, d.Surrender["16-9"].Threshold)
}

func TestDefaultCountingSystem(t *testing.T) {
	sys, err := DefaultCountingSystem()
	require.NoError(t, err)

	want := count.WongHalves()
	assert.Equal(t, want.Name, sys.Name)
	assert.Equal(t, want.Weights, sys.Weights)
	assert.Equal(t, want.Properties, sys.Properties)
	assert.Equal(t, count.DefaultThresholds(), sys.Thresholds)
	assert.True(t, sys.Balanced())
	assert.Len(t, sys.Advantages, 3)
}

func TestDefaultsBuildEngine(t *testing.T) {
	b, err := LoadBundle(context.Background(), Paths{})
	require.NoError(t, err)

	e, err := strategy.New(b.Strategy, b.Deviations)
	require.NoError(t, err)

	tc := 0.5
	d := e.Decide(card.MustParseList("10,3,3"), card.King, &tc)
	assert.Equal(t, strategy.Stand, d.Action)
	assert.True(t, d.Deviation)

	d = e.Decide(card.MustParseList("10,6"), card.Ace, nil)
	assert.Equal(t, strategy.Surrender, d.Action)
}

func TestWriteDefaultsRoundTrip(t *testing.T) {
	want, err := LoadBundle(context.Background(), Paths{})
	require.NoError(t, err)

	for _, f := range []Format{FormatHCL, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			dir := t.TempDir()
			paths, err := WriteDefaults(dir, f)
			require.NoError(t, err)
			require.Len(t, paths, 3)

			got, err := LoadBundle(context.Background(), Paths{
				Strategy:   filepath.Join(dir, "strategy"+f.Ext()),
				Deviations: filepath.Join(dir, "deviations"+f.Ext()),
				Counting:   filepath.Join(dir, "counting"+f.Ext()),
			})
			require.NoError(t, err)

			assert.Equal(t, want.Strategy, got.Strategy)
			assert.Equal(t, want.Deviations, got.Deviations)
			assert.Equal(t, want.Counting, got.Counting)
		})
	}
}

func TestWriteDefaultsRejectsJSON(t *testing.T) {
	_, err := WriteDefaults(t.TempDir(), FormatJSON)
	assert.Error(t, err)
}

func TestLoadNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.hcl")

	_, err := LoadStrategy(missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = LoadCountingSystem(missing)
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := LoadDeviations(missing)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, strategy.DefaultInsuranceThreshold, d.InsuranceThreshold)
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken hcl", "strategy.hcl", "hard = {\n"},
		{"broken json", "strategy.json", `{"hard": `},
		{"broken yaml", "strategy.yaml", "settings: [\n"},
		{"broken toml", "strategy.toml", "[settings\n"},
		{"unknown extension", "strategy.txt", "anything"},
		{"wrong hcl type", "strategy.hcl", "settings {\n  decks = \"many\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStrategy(writeDoc(t, tt.file, tt.content))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLoadStrategyValidation(t *testing.T) {
	tables, err := DefaultStrategy()
	require.NoError(t, err)
	delete(tables.Hard, 12)

	var buf bytes.Buffer
	require.NoError(t, EncodeStrategy(&buf, FormatYAML, tables))
	path := writeDoc(t, "strategy.yaml", buf.String())

	_, err = LoadStrategy(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, strategy.ErrIncomplete)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, path, verr.Document)
	assert.Equal(t, "hard.12", verr.Key)
}

func TestLoadStrategyBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"non numeric total", "hard_strategy:\n  hands:\n    twelve: [H, H, S, S, S, H, H, H, H, H]\n", "hard.twelve"},
		{"short row", "soft_strategy:\n  hands:\n    \"13\": [H, H]\n", "soft.13"},
		{"bad pair label", "pair_strategy:\n  pairs:\n    \"8,9\": [Y, Y, Y, Y, Y, Y, Y, Y, Y, Y]\n", "pairs.8,9"},
		{"unknown dealer rank", "dealer_card_index:\n  Z: 3\n", "dealer_card_index.Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStrategy(writeDoc(t, "strategy.yaml", tt.content))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.key, verr.Key)
		})
	}
}

func TestLoadDeviationsYAML(t *testing.T) {
	path := writeDoc(t, "deviations.yml", `
deviations:
  insurance:
    true_count_threshold: 2.5
  hard_hands:
    "16-K":
      true_count_threshold: 0
      comparison_operator: ">="
      deviation_action: S
      basic_action: H
    "13-2":
      true_count_threshold: "-1"
      deviation_action: H
      basic_action: S
  pairs:
    "J,J-5":
      true_count_threshold: 5
      deviation_action: Y
      basic_action: N
`)

	d, err := LoadDeviations(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, d.InsuranceThreshold)
	require.Contains(t, d.Hard, "16-10")
	require.Contains(t, d.Hard, "13-2")
	require.Contains(t, d.Pairs, "10,10-5")
	assert.Equal(t, -1.0, d.Hard["13-2"].Threshold)
	assert.Equal(t, strategy.OpUnspecified, d.Hard["13-2"].Operator)
}

func TestLoadDeviationsJSON(t *testing.T) {
	path := writeDoc(t, "deviations.json", `{
  "insurance": {"true_count_threshold": 4},
  "deviation": {
    "hard": {
      "16-10": {"true_count_threshold": 0, "deviation_action": "S", "basic_action": "H"}
    },
    "surrender": {
      "15-A": {"true_count_threshold": 1, "comparison_operator": ">=", "deviation_action": "R"}
    }
  }
}`)

	d, err := LoadDeviations(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, d.InsuranceThreshold)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, strategy.CodeSurrender, d.Surrender["15-A"].Action)
}

func TestLoadDeviationsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		key     string
		reason  string
	}{
		{
			"missing threshold", "deviations.yaml",
			"deviations:\n  hard_hands:\n    \"16-10\":\n      deviation_action: S\n",
			"hard_hands.16-10", "true_count_threshold",
		},
		{
			"unknown operator", "deviations.yaml",
			"deviations:\n  hard_hands:\n    \"16-10\":\n      true_count_threshold: 0\n      comparison_operator: \">\"\n      deviation_action: S\n",
			"hard_hands.16-10", "",
		},
		{
			"unknown action", "deviations.toml",
			"[deviations.soft_hands.\"19-4\"]\ntrue_count_threshold = 3\ndeviation_action = \"X\"\n",
			"soft_hands.19-4", "deviation_action",
		},
		{
			"malformed key", "deviations.yaml",
			"deviations:\n  surrender:\n    \"16\":\n      true_count_threshold: 1\n      deviation_action: R\n",
			"surrender.16", "",
		},
		{
			"unknown kind", "deviations.hcl",
			"deviation \"split\" \"8,8-10\" {\n  true_count_threshold = 0\n  deviation_action = \"Y\"\n}\n",
			"deviation.split", "unknown deviation kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDeviations(writeDoc(t, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.key, verr.Key)
			assert.Contains(t, verr.Reason, tt.reason)
		})
	}
}

func TestLoadCountingSystemTOML(t *testing.T) {
	path := writeDoc(t, "hilo.toml", `
[counting_system]
name = "Hi-Lo"

[card_values]
"2" = "1"
"3" = "1"
"4" = 1
"5" = 1
"6" = 1
"7" = 0
"8" = 0
"9" = 0
"10" = -1
J = -1
Q = -1
K = -1
A = "-1"

[betting_thresholds]
max_bet = 5
`)

	sys, err := LoadCountingSystem(path)
	require.NoError(t, err)

	assert.Equal(t, "Hi-Lo", sys.Name)
	assert.Equal(t, 1.0, sys.Weights[card.Two])
	assert.Equal(t, -1.0, sys.Weights[card.Ace])
	assert.True(t, sys.Balanced())
	assert.Equal(t, count.Thresholds{IncreaseBet: 2, MaxBet: 5, TakeInsurance: 3}, sys.Thresholds)
}

func TestLoadCountingSystemInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"no card values", "counting_system:\n  name: Empty\n", "card_values"},
		{"missing rank", "card_values: {\"2\": 1, \"3\": 1, \"4\": 1, \"5\": 1, \"6\": 1, \"7\": 0, \"8\": 0, \"9\": 0, \"10\": -1, J: -1, Q: -1, K: -1}\n", "card_values.A"},
		{"unknown rank", "card_values:\n  \"1\": 1\n", "card_values.1"},
		{"not a number", "card_values:\n  \"2\": lots\n", "card_values.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCountingSystem(writeDoc(t, "counting.yaml", tt.content))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.key, verr.Key)
		})
	}
}

func TestLoadCountingSystemDefaultName(t *testing.T) {
	sys, err := LoadCountingSystem(writeDoc(t, "counting.yaml", `
card_values: {"2": 0.5, "3": 1, "4": 1, "5": 1.5, "6": 1, "7": 0.5, "8": 0, "9": -0.5, "10": -1, J: -1, Q: -1, K: -1, A: -1}
`))
	require.NoError(t, err)
	assert.Equal(t, "Wong Halves", sys.Name)
	assert.Equal(t, count.DefaultThresholds(), sys.Thresholds)
}

func TestLoadBundleFirstError(t *testing.T) {
	_, err := LoadBundle(context.Background(), Paths{
		Strategy: filepath.Join(t.TempDir(), "missing.hcl"),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadBundle(ctx, Paths{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormats(t *testing.T) {
	for in, want := range map[string]Format{"hcl": FormatHCL, ".json": FormatJSON, "yml": FormatYAML, "YAML": FormatYAML, "toml": FormatTOML} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}

	_, err := ParseFormat("ini")
	assert.Error(t, err)

	f, err := FormatOf("/etc/advisor/strategy.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatOf("strategy")
	assert.Error(t, err)
}
