package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/config"
	"github.com/lox/loveletterbots/internal/history"
	"github.com/lox/loveletterbots/internal/matchid"
	"github.com/lox/loveletterbots/internal/randutil"
	"github.com/lox/loveletterbots/internal/tui"
)

// WatchCmd replays one match in a terminal UI: either a fresh seeded match
// or one loaded from a history file written by play
type WatchCmd struct {
	Players  int    `short:"p" help:"Players in the match (2-4)"`
	Opponent string `short:"o" help:"Opponent bot kind: heuristic, random"`
	Seed     int64  `short:"s" help:"RNG seed (0 for random)"`
	Seat     int    `default:"0" help:"Seat of the heuristic bot being watched"`
	History  string `type:"existingfile" help:"Replay a TOML match history instead of playing a new match"`
}

func (cmd *WatchCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}

	replay, err := cmd.replay(cfg, logger)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(replay, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func (cmd *WatchCmd) replay(cfg *config.Config, logger *log.Logger) (*tui.Replay, error) {
	if cmd.History != "" {
		h, err := history.ReadFile(cmd.History)
		if err != nil {
			return nil, err
		}
		return tui.FromHistory(context.Background(), h, cmd.Seat, cfg.BotConfig(), logger)
	}

	seed := pick(cmd.Seed, cfg.Simulation.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	agents, _, err := seatAgents(pick(cmd.Players, cfg.Simulation.Players), cmd.Seat,
		pick(cmd.Opponent, cfg.Simulation.Opponent), seed, cfg.BotConfig(), logger)
	if err != nil {
		return nil, err
	}

	id, err := matchid.NewFromReader(randutil.NewReader(seed))
	if err != nil {
		return nil, err
	}
	return tui.Record(context.Background(), id, agents, cmd.Seat, randutil.New(seed), logger)
}
