package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lox/loveletterbots/internal/report"
	"github.com/lox/loveletterbots/internal/simulator"
)

// SimulateCmd runs a batch of games. Zero-valued flags fall back to the
// config file.
type SimulateCmd struct {
	Games    int           `short:"n" help:"Number of games to simulate"`
	Players  int           `short:"p" help:"Players per game (2-4)"`
	Opponent string        `short:"o" help:"Opponent bot kind: heuristic, random"`
	Seed     int64         `short:"s" help:"RNG seed (0 for random)"`
	Workers  int           `short:"w" help:"Parallel workers (0 = GOMAXPROCS)"`
	Timeout  time.Duration `help:"Per-game timeout"`
	JSON     string        `name:"json" type:"path" help:"Write a JSON report to this file"`
}

func (cmd *SimulateCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	simCfg := simulator.Config{
		Games:    pick(cmd.Games, cfg.Simulation.Games),
		Players:  pick(cmd.Players, cfg.Simulation.Players),
		Opponent: pick(cmd.Opponent, cfg.Simulation.Opponent),
		Seed:     pick(cmd.Seed, cfg.Simulation.Seed),
		Workers:  pick(cmd.Workers, cfg.Simulation.Workers),
		Timeout:  pick(cmd.Timeout, timeout),
		Agent:    cfg.BotConfig(),
		Logger:   logger,
	}
	if simCfg.Seed == 0 {
		simCfg.Seed = time.Now().UnixNano()
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed (seed %d): %w", simCfg.Seed, err)
	}
	logger.Info("Simulation complete", "games", stats.Games, "duration", time.Since(start).Round(time.Millisecond))

	summary := report.Summarize(report.Run{
		Opponent: simCfg.Opponent,
		Players:  simCfg.Players,
		Seed:     simCfg.Seed,
	}, stats)

	if err := report.Render(os.Stdout, summary); err != nil {
		return err
	}
	if cmd.JSON != "" {
		if err := report.WriteJSON(cmd.JSON, summary); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("Wrote report", "path", cmd.JSON)
	}
	return nil
}

// pick returns flag unless it is the zero value
func pick[T comparable](flag, fallback T) T {
	var zero T
	if flag != zero {
		return flag
	}
	return fallback
}
