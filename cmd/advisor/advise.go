package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

type AdviseCmd struct {
	Cards     []string `arg:"" help:"Player cards, e.g. 10 6 or A,7"`
	Dealer    string   `short:"d" required:"" help:"Dealer up-card"`
	TrueCount *float64 `short:"t" help:"True count to apply deviations at"`
	Seen      []string `short:"s" help:"Cards already seen this shoe; the true count is derived from them"`
}

func (cmd *AdviseCmd) Run(g *Globals) error {
	rt, err := g.setup(context.Background(), "advise")
	if err != nil {
		return err
	}
	defer rt.Close()

	return cmd.advise(rt)
}

func (cmd *AdviseCmd) advise(rt *runtime) error {
	cards, err := parseCards(cmd.Cards)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return errors.New("no player cards given")
	}
	dealer, err := parseCard(cmd.Dealer)
	if err != nil {
		return err
	}
	if cmd.TrueCount != nil && len(cmd.Seen) > 0 {
		return errors.New("--true-count and --seen are mutually exclusive")
	}

	tc := cmd.TrueCount
	if len(cmd.Seen) > 0 {
		seen, err := parseCards(cmd.Seen)
		if err != nil {
			return err
		}
		counter, err := rt.counter()
		if err != nil {
			return err
		}
		for _, r := range seen {
			counter.AddCard(r)
		}
		v := counter.TrueCount()
		tc = &v
	}
	if !rt.cfg.Rules.UseDeviations {
		tc = nil
	}

	d := rt.engine.Decide(cards, dealer, tc)
	rt.logger.Info("Advice", "cards", card.Join(cards), "dealer", dealer, "action", d.Action, "deviation", d.Deviation)

	printAdvice(rt.out, rt.styles, cards, dealer, tc, d)
	return nil
}

func printAdvice(w io.Writer, s *styles, cards []card.Rank, dealer card.Rank, tc *float64, d strategy.Decision) {
	total, soft := card.HandValue(cards)
	kind := "hard"
	if soft {
		kind = "soft"
	}
	fmt.Fprintf(w, "%s %s (%s %d) vs %s\n", s.Label.Render("Hand"), card.Join(cards), kind, total, dealer)
	if tc != nil {
		fmt.Fprintf(w, "%s %+.2f\n", s.Label.Render("True count"), *tc)
	}
	fmt.Fprintln(w, s.decision(d))
	if d.Deviation {
		fmt.Fprintln(w, s.Warning.Render("Count deviation from basic strategy"))
	}
}
