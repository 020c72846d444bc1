package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/lox/loveletterbots/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"loveletter.hcl" env:"LOVELETTER_CONFIG" help:"HCL config file (missing file means defaults)"`
	LogLevel string `env:"LOVELETTER_LOG_LEVEL" help:"Log level override: debug, info, warn, error"`
	NoColor  bool   `env:"LOVELETTER_NO_COLOR" help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run many games and report the heuristic bot's results"`
	Play     PlayCmd          `cmd:"" help:"Play one match and print the log"`
	Watch    WatchCmd         `cmd:"" help:"Step through one match in the terminal"`
}

// load reads the config file and builds a logger from it
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel()
	if g.LogLevel != "" {
		if level, err = log.ParseLevel(g.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return cfg, logger, nil
}

func main() {
	// Environment may come from a local .env file; a missing file is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("loveletter"),
		kong.Description("Heuristic Love Letter bots and a simulator to measure them"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
