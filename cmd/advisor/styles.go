package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// styles contains styling for command output
type styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Label     lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Hit       lipgloss.Style
	Stand     lipgloss.Style
	Double    lipgloss.Style
	Split     lipgloss.Style
	Surrender lipgloss.Style
	Current   lipgloss.Style
}

func newStyles(color bool) *styles {
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	return &styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1B5E20")).
			Padding(0, 1).
			Bold(true),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Hit:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Stand:     lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Double:    lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
		Split:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A29BFE")).Bold(true),
		Surrender: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Current:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

func (s *styles) action(a strategy.Action) lipgloss.Style {
	switch a {
	case strategy.Hit:
		return s.Hit
	case strategy.Stand:
		return s.Stand
	case strategy.Double:
		return s.Double
	case strategy.Split:
		return s.Split
	case strategy.Surrender:
		return s.Surrender
	default:
		return s.Info
	}
}

func (s *styles) tier(t count.Tier) lipgloss.Style {
	switch t {
	case count.MaxBet:
		return s.Success
	case count.IncreaseBet:
		return s.Stand
	case count.MinBet:
		return s.Error
	default:
		return s.Info
	}
}
