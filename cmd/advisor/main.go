package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/blackjack-advisor/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Advise  AdviseCmd        `cmd:"" help:"Recommend a play for one hand"`
	Count   CountCmd         `cmd:"" help:"Show count statistics for the cards seen so far"`
	Session SessionCmd       `cmd:"" help:"Track a shoe interactively"`
	Drill   DrillCmd         `cmd:"" help:"Practice keeping the running count"`
	Tables  TablesCmd        `cmd:"" help:"Check or scaffold strategy documents"`
}

func main() {
	// A missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("advisor"),
		kong.Description("Blackjack basic strategy and card counting advisor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":      version,
			"config_file":  config.DefaultFile,
			"history_file": defaultHistoryFile(),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
