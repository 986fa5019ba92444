package main

import (
	"context"
	"fmt"

	"github.com/lox/blackjack-advisor/internal/count"
)

type CountCmd struct {
	Cards []string `arg:"" optional:"" help:"Cards seen so far this shoe"`
}

func (cmd *CountCmd) Run(g *Globals) error {
	rt, err := g.setup(context.Background(), "count")
	if err != nil {
		return err
	}
	defer rt.Close()

	c, err := cmd.count(rt)
	if err != nil {
		return err
	}

	rt.styles.printStats(rt.out, statsFromCounter(c))
	rt.styles.printInsurance(rt.out, c.ShouldTakeInsurance())
	return nil
}

func (cmd *CountCmd) count(rt *runtime) (*count.Counter, error) {
	cards, err := parseCards(cmd.Cards)
	if err != nil {
		return nil, err
	}
	c, err := rt.counter()
	if err != nil {
		return nil, err
	}
	for _, r := range cards {
		c.AddCard(r)
	}
	if c.CardsSeen() > c.TotalCards() {
		rt.logger.Warn("More cards than the shoe holds", "seen", c.CardsSeen(), "total", c.TotalCards())
		fmt.Fprintln(rt.out, rt.styles.Warning.Render("More cards entered than the shoe holds"))
	}
	return c, nil
}
