package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjack-advisor/internal/strategy"
	"github.com/lox/blackjack-advisor/internal/tables"
)

type TablesCmd struct {
	Check TablesCheckCmd `cmd:"" help:"Load and validate the strategy documents"`
	Init  TablesInitCmd  `cmd:"" help:"Write the built-in documents to a directory"`
}

type TablesCheckCmd struct {
	Strategy   string `type:"path" help:"Strategy document, overrides the configuration"`
	Deviations string `type:"path" help:"Deviations document, overrides the configuration"`
	Counting   string `type:"path" help:"Counting system document, overrides the configuration"`
}

func (cmd *TablesCheckCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	paths := cfg.TablePaths()
	if cmd.Strategy != "" {
		paths.Strategy = cmd.Strategy
	}
	if cmd.Deviations != "" {
		paths.Deviations = cmd.Deviations
	}
	if cmd.Counting != "" {
		paths.Counting = cmd.Counting
	}

	return checkTables(context.Background(), os.Stdout, newStyles(cfg.UI.Color), paths)
}

func checkTables(ctx context.Context, w io.Writer, s *styles, paths tables.Paths) error {
	b, err := tables.LoadBundle(ctx, paths)
	if err != nil {
		return err
	}
	if _, err := strategy.New(b.Strategy, b.Deviations); err != nil {
		return err
	}

	st := b.Strategy.Settings
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("Strategy"), orDefault(paths.Strategy))
	fmt.Fprintf(w, "  %d decks, S17 %t, DAS %t, surrender %q\n", st.Decks, st.DealerStandsSoft17, st.DoubleAfterSplit, st.Surrender)
	fmt.Fprintf(w, "  %d hard, %d soft, %d pair, %d surrender rows\n",
		len(b.Strategy.Hard), len(b.Strategy.Soft), len(b.Strategy.Pairs), len(b.Strategy.Surrender))

	d := b.Deviations
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("Deviations"), orDefault(paths.Deviations))
	fmt.Fprintf(w, "  %d entries (%d hard, %d soft, %d pair, %d surrender), insurance at %+.1f\n",
		d.Len(), len(d.Hard), len(d.Soft), len(d.Pairs), len(d.Surrender), d.InsuranceThreshold)

	c := b.Counting
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("Counting"), orDefault(paths.Counting))
	fmt.Fprintf(w, "  %s, balanced %t\n", c.Name, c.Balanced())

	fmt.Fprintln(w, s.Success.Render("OK"))
	return nil
}

type TablesInitCmd struct {
	Dir    string `arg:"" optional:"" default:"." type:"path" help:"Directory to write into"`
	Format string `short:"f" default:"hcl" enum:"hcl,yaml,toml" help:"Document format"`
}

func (cmd *TablesInitCmd) Run(g *Globals) error {
	f, err := tables.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	written, err := tables.WriteDefaults(cmd.Dir, f)
	if err != nil {
		return err
	}

	s := newStyles(!g.NoColor)
	for _, path := range written {
		fmt.Println(s.Success.Render("wrote"), path)
	}
	return nil
}
