package tables

import (
	"embed"
	"fmt"

	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

//go:embed defaults/*.hcl
var defaults embed.FS

const (
	strategyFile   = "strategy.hcl"
	deviationsFile = "deviations.hcl"
	countingFile   = "counting.hcl"
)

func defaultSource(name string) []byte {
	src, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		panic(fmt.Sprintf("tables: embedded %s missing: %v", name, err))
	}
	return src
}

// DefaultStrategy returns the built-in 8 deck, S17, DAS, late surrender chart
func DefaultStrategy() (*strategy.Tables, error) {
	return parseStrategy(defaultSource(strategyFile), "defaults/"+strategyFile, FormatHCL)
}

// DefaultDeviations returns the built-in Illustrious 18 and Fab 4 indices
func DefaultDeviations() (*strategy.Deviations, error) {
	return parseDeviations(defaultSource(deviationsFile), "defaults/"+deviationsFile, FormatHCL)
}

// DefaultCountingSystem returns the built-in Wong Halves document
func DefaultCountingSystem() (*count.System, error) {
	return parseCounting(defaultSource(countingFile), "defaults/"+countingFile, FormatHCL)
}
