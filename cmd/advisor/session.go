package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chzyer/readline"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/session"
	"github.com/lox/blackjack-advisor/internal/tui"
)

type SessionCmd struct {
	History string `help:"Readline history file" default:"${history_file}"`
	TUI     bool   `help:"Full screen interface" env:"ADVISOR_TUI"`
}

func (cmd *SessionCmd) Run(g *Globals) error {
	rt, err := g.setup(context.Background(), "session")
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, err := rt.newSession()
	if err != nil {
		return err
	}

	if cmd.TUI {
		return runTUI(sess, rt)
	}

	r := newREPL(sess, rt.styles, rt.out)

	completer := readline.NewPrefixCompleter()
	for _, name := range r.names() {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		HistoryFile:     cmd.History,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rt.out, rt.styles.Title.Render("Blackjack advisor"))
	fmt.Fprintln(rt.out, rt.styles.Info.Render("Enter cards as they are dealt. Type 'help' for commands."))

	for {
		rl.SetPrompt(r.prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(rt.out, rt.styles.Info.Render("Use 'quit' to exit"))
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		more, err := r.exec(line)
		if err != nil {
			fmt.Fprintln(rt.out, rt.styles.Error.Render("Error: "+err.Error()))
			continue
		}
		if !more {
			rt.logger.Info("Session ended", "cards", sess.Counter().CardsSeen(), "running", sess.Counter().RunningCount())
			return nil
		}
	}
}

func runTUI(sess *session.Session, rt *runtime) error {
	var buf bytes.Buffer
	r := newREPL(sess, rt.styles, &buf)
	r.echo = false

	model := tui.New(sess, func(line string) (string, bool, error) {
		buf.Reset()
		more, err := r.exec(line)
		return buf.String(), more, err
	}, rt.logger)
	model.AddLogEntry(rt.styles.Title.Render("Blackjack advisor"))
	model.AddLogEntry(rt.styles.Info.Render("Enter cards as they are dealt. Type 'help' for commands."))

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	rt.logger.Info("Session ended", "cards", sess.Counter().CardsSeen(), "running", sess.Counter().RunningCount())
	return nil
}

func defaultHistoryFile() string {
	return filepath.Join(os.TempDir(), "advisor_history")
}

// command is one REPL command
type command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Handler     func(args []string) (bool, error) // false ends the session
}

// repl dispatches input lines against a session. It holds no terminal
// state so it can be driven directly.
type repl struct {
	sess     *session.Session
	styles   *styles
	out      io.Writer
	commands map[string]*command

	// echo prints the round after every change; the TUI shows it live
	echo bool
}

func newREPL(sess *session.Session, st *styles, out io.Writer) *repl {
	r := &repl{sess: sess, styles: st, out: out, echo: true}
	r.initCommands()
	return r
}

func (r *repl) initCommands() {
	r.commands = map[string]*command{
		"player": {
			Name:        "player",
			Aliases:     []string{"p"},
			Usage:       "player <cards>",
			Description: "Deal cards to the current hand",
			Handler:     r.cards(r.sess.PlayerCard),
		},
		"dealer": {
			Name:        "dealer",
			Aliases:     []string{"d"},
			Usage:       "dealer <cards>",
			Description: "Add dealer cards; the first is the up-card",
			Handler:     r.cards(r.sess.DealerCard),
		},
		"other": {
			Name:        "other",
			Aliases:     []string{"o"},
			Usage:       "other <cards>",
			Description: "Count cards dealt to other players",
			Handler:     r.cards(r.sess.OtherCard),
		},
		"stand": {
			Name:        "stand",
			Aliases:     []string{"s"},
			Description: "Stand on the current hand",
			Handler:     r.action(r.sess.Stand),
		},
		"double": {
			Name:        "double",
			Aliases:     []string{"dd"},
			Description: "Double the current hand; the next player card completes it",
			Handler:     r.action(r.sess.Double),
		},
		"split": {
			Name:        "split",
			Aliases:     []string{"sp"},
			Description: "Split the current pair",
			Handler:     r.action(r.sess.Split),
		},
		"hand": {
			Name:        "hand",
			Aliases:     []string{"h"},
			Usage:       "hand <n>",
			Description: "Switch to hand n",
			Handler:     r.handleHand,
		},
		"undo": {
			Name:        "undo",
			Aliases:     []string{"u"},
			Description: "Take back the last card entered this round",
			Handler:     r.handleUndo,
		},
		"clear": {
			Name:        "clear",
			Aliases:     []string{"c", "next"},
			Description: "Start a new round, keeping the count",
			Handler:     r.handleClear,
		},
		"shoe": {
			Name:        "shoe",
			Aliases:     []string{"shuffle"},
			Description: "Start a new shoe and reset the count",
			Handler:     r.handleShoe,
		},
		"status": {
			Name:        "status",
			Aliases:     []string{"st"},
			Description: "Show the count and the round",
			Handler:     r.handleStatus,
		},
		"advice": {
			Name:        "advice",
			Aliases:     []string{"ad"},
			Description: "Show the play for the current hand",
			Handler:     r.handleAdvice,
		},
		"help": {
			Name:        "help",
			Aliases:     []string{"?"},
			Description: "Show available commands",
			Handler:     r.handleHelp,
		},
		"quit": {
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Description: "End the session",
			Handler:     func([]string) (bool, error) { return false, nil },
		},
	}

	for _, cmd := range r.names() {
		for _, alias := range r.commands[cmd].Aliases {
			r.commands[alias] = r.commands[cmd]
		}
	}
}

// names returns the primary command names, sorted
func (r *repl) names() []string {
	var names []string
	for key, cmd := range r.commands {
		if key == cmd.Name {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// exec runs one input line. A line starting with a card is shorthand for
// "player".
func (r *repl) exec(line string) (bool, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(parts) == 0 {
		return true, nil
	}

	name, args := parts[0], parts[1:]
	cmd, ok := r.commands[name]
	if !ok {
		if _, err := card.Parse(strings.Split(name, ",")[0]); err == nil {
			return r.commands["player"].Handler(parts)
		}
		return true, fmt.Errorf("unknown command: %s. Type 'help' for available commands", name)
	}
	return cmd.Handler(args)
}

func (r *repl) prompt() string {
	c := r.sess.Counter()
	return r.styles.Prompt.Render(fmt.Sprintf("RC %+.1f TC %+.1f> ", c.RunningCount(), c.TrueCount()))
}

func (r *repl) cards(add func(card.Rank)) func([]string) (bool, error) {
	return func(args []string) (bool, error) {
		ranks, err := parseCards(args)
		if err != nil {
			return true, err
		}
		if len(ranks) == 0 {
			return true, errors.New("no cards given")
		}
		for _, rank := range ranks {
			add(rank)
		}
		r.changed()
		return true, nil
	}
}

func (r *repl) action(do func() error) func([]string) (bool, error) {
	return func([]string) (bool, error) {
		if err := do(); err != nil {
			return true, err
		}
		r.changed()
		return true, nil
	}
}

func (r *repl) handleHand(args []string) (bool, error) {
	if len(args) != 1 {
		return true, errors.New("usage: hand <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return true, fmt.Errorf("bad hand number %q", args[0])
	}
	if err := r.sess.SelectHand(n - 1); err != nil {
		return true, err
	}
	r.changed()
	return true, nil
}

func (r *repl) handleUndo([]string) (bool, error) {
	e, err := r.sess.Undo()
	if err != nil {
		return true, err
	}
	fmt.Fprintln(r.out, r.styles.Info.Render(fmt.Sprintf("Removed %s card %s", e.Kind, e.Rank)))
	r.changed()
	return true, nil
}

func (r *repl) handleClear([]string) (bool, error) {
	r.sess.ClearRound()
	fmt.Fprintln(r.out, r.styles.Success.Render("New round"))
	return true, nil
}

func (r *repl) handleShoe([]string) (bool, error) {
	r.sess.NewShoe()
	fmt.Fprintln(r.out, r.styles.Success.Render("New shoe, count reset"))
	return true, nil
}

func (r *repl) handleStatus([]string) (bool, error) {
	r.status()
	return true, nil
}

func (r *repl) handleAdvice([]string) (bool, error) {
	a, err := r.sess.Advice()
	if err != nil {
		return true, err
	}
	fmt.Fprintf(r.out, "%s %s vs %s\n", r.styles.Label.Render(fmt.Sprintf("Hand %d", a.Hand+1)), card.Join(a.Cards), a.Dealer)
	fmt.Fprintln(r.out, r.styles.decision(a.Decision))
	return true, nil
}

func (r *repl) handleHelp([]string) (bool, error) {
	fmt.Fprintln(r.out, r.styles.Title.Render("Commands"))
	for _, name := range r.names() {
		cmd := r.commands[name]
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		fmt.Fprintf(r.out, "  %-16s %-14s %s\n", usage, strings.Join(cmd.Aliases, ","), r.styles.Info.Render(cmd.Description))
	}
	fmt.Fprintln(r.out, r.styles.Info.Render("A line of bare cards, e.g. '10 6', deals them to the current hand. Command names win, so enter a queen as 'p q'."))
	return true, nil
}

func (r *repl) changed() {
	if r.echo {
		r.status()
	}
}

func (r *repl) status() {
	r.styles.printSnapshot(r.out, r.sess.Snapshot())
}
