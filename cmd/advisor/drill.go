package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/randutil"
	"github.com/lox/blackjack-advisor/internal/shoe"
)

type DrillCmd struct {
	Seed   int64 `help:"Shuffle seed, 0 picks one"`
	Cards  int   `default:"6" help:"Cards shown per round"`
	Rounds int   `default:"10" help:"Rounds to play, 0 runs until the shoe is empty"`
}

func (cmd *DrillCmd) Run(g *Globals) error {
	rt, err := g.setup(context.Background(), "drill")
	if err != nil {
		return err
	}
	defer rt.Close()

	counter, err := rt.counter()
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          rt.styles.Prompt.Render("Running count> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	seed := randutil.Seed(cmd.Seed)
	d := &drill{
		shoe:     shoe.New(counter.NumDecks(), randutil.New(seed)),
		counter:  counter,
		styles:   rt.styles,
		out:      rt.out,
		logger:   rt.logger,
		clock:    quartz.NewReal(),
		readLine: rl.Readline,
	}

	fmt.Fprintf(rt.out, "%s %s, %d decks, seed %d\n", rt.styles.Title.Render("Counting drill"), counter.System().Name, counter.NumDecks(), seed)
	res, err := d.run(cmd.Cards, cmd.Rounds)
	if err != nil {
		return err
	}
	d.summary(res)
	return nil
}

// drillResult is the score for one drill
type drillResult struct {
	Rounds  int
	Correct int
	Elapsed time.Duration
}

type drill struct {
	shoe     *shoe.Shoe
	counter  *count.Counter
	styles   *styles
	out      io.Writer
	logger   *log.Logger
	clock    quartz.Clock
	readLine func() (string, error)
}

// run deals perRound cards at a time and asks for the running count after
// each round. It stops after rounds rounds, when the shoe runs out or when
// the player quits.
func (d *drill) run(perRound, rounds int) (drillResult, error) {
	if perRound <= 0 {
		return drillResult{}, errors.New("cards per round must be positive")
	}

	var res drillResult
	start := d.clock.Now()

	for rounds == 0 || res.Rounds < rounds {
		dealt := d.shoe.DrawN(perRound)
		if len(dealt) == 0 {
			break
		}
		for _, r := range dealt {
			d.counter.AddCard(r)
		}
		fmt.Fprintf(d.out, "%s %s\n", d.styles.Label.Render(fmt.Sprintf("Round %d:", res.Rounds+1)), card.Join(dealt))

		answer, quit, err := d.ask()
		if err != nil {
			return res, err
		}
		if quit {
			break
		}

		res.Rounds++
		want := d.counter.RunningCount()
		if math.Abs(answer-want) < 0.01 {
			res.Correct++
			fmt.Fprintln(d.out, d.styles.Success.Render("Correct"))
		} else {
			fmt.Fprintln(d.out, d.styles.Error.Render(fmt.Sprintf("Running count is %+.1f", want)))
		}
		d.logger.Debug("Drill round", "round", res.Rounds, "answer", answer, "running", want)
	}

	res.Elapsed = d.clock.Since(start)
	return res, nil
}

// ask reads a running count, prompting again on bad input
func (d *drill) ask() (float64, bool, error) {
	for {
		line, err := d.readLine()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return 0, true, nil
		} else if err != nil {
			return 0, false, err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return 0, true, nil
		}

		v, err := strconv.ParseFloat(strings.TrimPrefix(line, "+"), 64)
		if err != nil {
			fmt.Fprintln(d.out, d.styles.Error.Render("Enter a number, e.g. -1.5"))
			continue
		}
		return v, false, nil
	}
}

func (d *drill) summary(res drillResult) {
	pct := 0.0
	if res.Rounds > 0 {
		pct = float64(res.Correct) / float64(res.Rounds) * 100
	}
	fmt.Fprintf(d.out, "%s %d/%d correct (%.0f%%) in %s\n",
		d.styles.Title.Render("Score"), res.Correct, res.Rounds, pct, res.Elapsed.Round(time.Second))
	d.styles.printStats(d.out, statsFromCounter(d.counter))
	d.logger.Info("Drill finished", "rounds", res.Rounds, "correct", res.Correct, "elapsed", res.Elapsed)
}
