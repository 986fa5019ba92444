package tables

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// Paths names the three documents. An empty path selects the embedded default.
type Paths struct {
	Strategy   string
	Deviations string
	Counting   string
}

// Bundle is everything needed to build an engine and a counter
type Bundle struct {
	Strategy   *strategy.Tables
	Deviations *strategy.Deviations
	Counting   *count.System
}

// LoadBundle loads the three documents concurrently and returns the first
// error. Loads that have not started yet are skipped once one fails or ctx
// is done.
func LoadBundle(ctx context.Context, paths Paths) (*Bundle, error) {
	g, gctx := errgroup.WithContext(ctx)
	var b Bundle

	load := func(fn func() error) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn()
		})
	}

	load(func() (err error) {
		if paths.Strategy == "" {
			b.Strategy, err = DefaultStrategy()
		} else {
			b.Strategy, err = LoadStrategy(paths.Strategy)
		}
		return err
	})

	load(func() (err error) {
		if paths.Deviations == "" {
			b.Deviations, err = DefaultDeviations()
		} else {
			b.Deviations, err = LoadDeviations(paths.Deviations)
		}
		return err
	})

	load(func() (err error) {
		if paths.Counting == "" {
			b.Counting, err = DefaultCountingSystem()
		} else {
			b.Counting, err = LoadCountingSystem(paths.Counting)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}
