package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-advisor/internal/config"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/session"
	"github.com/lox/blackjack-advisor/internal/strategy"
	"github.com/lox/blackjack-advisor/internal/tables"
)

// Globals are flags shared by every command
type Globals struct {
	Config      string `short:"c" help:"Configuration file" default:"${config_file}" env:"ADVISOR_CONFIG"`
	Decks       int    `help:"Decks in the shoe, overrides the configuration" env:"ADVISOR_DECKS"`
	NoSurrender bool   `help:"Disable late surrender" env:"ADVISOR_NO_SURRENDER"`
	NoColor     bool   `help:"Disable colored output" env:"ADVISOR_NO_COLOR"`
	LogLevel    string `help:"Log level (debug, info, warn, error), overrides the configuration" env:"ADVISOR_LOG_LEVEL"`
}

// runtime is everything a command needs after configuration is resolved
type runtime struct {
	cfg     *config.Config
	bundle  *tables.Bundle
	engine  *strategy.Engine
	logger  *log.Logger
	styles  *styles
	out     io.Writer
	logFile *os.File
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}

	if g.Decks > 0 {
		cfg.Shoe.Decks = g.Decks
	}
	if g.NoSurrender {
		cfg.Rules.Surrender = false
	}
	if g.NoColor {
		cfg.UI.Color = false
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup resolves configuration, opens the log file and loads the tables
func (g *Globals) setup(ctx context.Context, prefix string) (*runtime, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		styles: newStyles(cfg.UI.Color),
		out:    os.Stdout,
	}

	if err := rt.openLog(prefix); err != nil {
		return nil, err
	}

	rt.bundle, err = tables.LoadBundle(ctx, cfg.TablePaths())
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.engine, err = strategy.New(rt.bundle.Strategy, rt.bundle.Deviations,
		strategy.WithSurrender(cfg.Rules.Surrender))
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("building strategy engine: %w", err)
	}

	rt.logger.Info("Tables loaded",
		"strategy", orDefault(cfg.Tables.Strategy),
		"deviations", rt.bundle.Deviations.Len(),
		"system", rt.bundle.Counting.Name)
	return rt, nil
}

func (rt *runtime) openLog(prefix string) error {
	level, err := log.ParseLevel(rt.cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if rt.cfg.UI.LogFile != "" {
		rt.logFile, err = os.OpenFile(rt.cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = rt.logFile
	}

	rt.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})
	return nil
}

func (rt *runtime) counter() (*count.Counter, error) {
	return count.NewCounter(rt.cfg.Shoe.Decks, rt.bundle.Counting)
}

func (rt *runtime) newSession() (*session.Session, error) {
	counter, err := rt.counter()
	if err != nil {
		return nil, err
	}
	return session.New(rt.engine, counter, rt.cfg.GameRules(),
		session.WithLogger(rt.logger),
		session.WithDeviations(rt.cfg.Rules.UseDeviations)), nil
}

// Close flushes and closes the log file
func (rt *runtime) Close() {
	if rt.logFile == nil {
		return
	}
	if err := rt.logFile.Close(); err != nil {
		log.Error("Failed to close log file", "error", err)
	}
}

func orDefault(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
