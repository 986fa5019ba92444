// Package config loads the advisor's HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/game"
	"github.com/lox/blackjack-advisor/internal/tables"
)

// DefaultFile is the configuration file looked up in the working directory
const DefaultFile = "advisor.hcl"

// Config is the complete advisor configuration
type Config struct {
	Shoe   ShoeSettings
	Rules  RuleSettings
	Tables TableSettings
	UI     UISettings
}

// ShoeSettings describes the shoe being counted
type ShoeSettings struct {
	Decks int
}

// RuleSettings are the table rules that change advice
type RuleSettings struct {
	Surrender     bool
	ResplitAces   bool
	MaxHands      int
	UseDeviations bool
}

// TableSettings point at external documents. Empty paths use the built-in tables.
type TableSettings struct {
	Strategy   string
	Deviations string
	Counting   string
}

// UISettings contains output and logging settings
type UISettings struct {
	LogLevel string
	LogFile  string
	Color    bool
}

// file mirrors Config with optional blocks and pointer fields, so values left
// out of the file can be told apart from explicit zeros
type file struct {
	Shoe *struct {
		Decks *int `hcl:"decks,optional"`
	} `hcl:"shoe,block"`
	Rules *struct {
		Surrender     *bool `hcl:"surrender,optional"`
		ResplitAces   *bool `hcl:"resplit_aces,optional"`
		MaxHands      *int  `hcl:"max_hands,optional"`
		UseDeviations *bool `hcl:"use_deviations,optional"`
	} `hcl:"rules,block"`
	Tables *struct {
		Strategy   string `hcl:"strategy,optional"`
		Deviations string `hcl:"deviations,optional"`
		Counting   string `hcl:"counting,optional"`
	} `hcl:"tables,block"`
	UI *struct {
		LogLevel string `hcl:"log_level,optional"`
		LogFile  string `hcl:"log_file,optional"`
		Color    *bool  `hcl:"color,optional"`
	} `hcl:"ui,block"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Shoe: ShoeSettings{
			Decks: count.DefaultDecks,
		},
		Rules: RuleSettings{
			Surrender:     true,
			ResplitAces:   false,
			MaxHands:      game.DefaultMaxHands,
			UseDeviations: true,
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "advisor.log",
			Color:    true,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file keep their default values.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()

	if s := raw.Shoe; s != nil {
		setIfPresent(&config.Shoe.Decks, s.Decks)
	}
	if r := raw.Rules; r != nil {
		setIfPresent(&config.Rules.Surrender, r.Surrender)
		setIfPresent(&config.Rules.ResplitAces, r.ResplitAces)
		setIfPresent(&config.Rules.MaxHands, r.MaxHands)
		setIfPresent(&config.Rules.UseDeviations, r.UseDeviations)
	}
	if t := raw.Tables; t != nil {
		config.Tables = TableSettings{Strategy: t.Strategy, Deviations: t.Deviations, Counting: t.Counting}
	}
	if u := raw.UI; u != nil {
		if u.LogLevel != "" {
			config.UI.LogLevel = u.LogLevel
		}
		if u.LogFile != "" {
			config.UI.LogFile = u.LogFile
		}
		setIfPresent(&config.UI.Color, u.Color)
	}

	return config, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Shoe.Decks <= 0 {
		return fmt.Errorf("shoe decks must be positive")
	}

	if c.Rules.MaxHands < 1 {
		return fmt.Errorf("max hands must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// TablePaths returns the document paths for tables.LoadBundle
func (c *Config) TablePaths() tables.Paths {
	return tables.Paths{
		Strategy:   c.Tables.Strategy,
		Deviations: c.Tables.Deviations,
		Counting:   c.Tables.Counting,
	}
}

// GameRules returns the hand-splitting rules for the game state
func (c *Config) GameRules() game.Rules {
	return game.Rules{MaxHands: c.Rules.MaxHands, ResplitAces: c.Rules.ResplitAces}
}
