package main

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack-advisor/internal/card"
)

// parseCards accepts ranks split across arguments, commas or both
func parseCards(args []string) ([]card.Rank, error) {
	ranks, err := card.ParseList(strings.Join(args, ","))
	if err != nil {
		return nil, err
	}
	return ranks, nil
}

func parseCard(s string) (card.Rank, error) {
	r, err := card.Parse(s)
	if err != nil {
		return "", fmt.Errorf("bad card: %w", err)
	}
	return r, nil
}
