package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/history"
	"github.com/lox/loveletterbots/internal/matchid"
	"github.com/lox/loveletterbots/internal/randutil"
)

// PlayCmd plays a single match and prints every event
type PlayCmd struct {
	Players   int    `short:"p" help:"Players in the match (2-4)"`
	Opponent  string `short:"o" help:"Opponent bot kind: heuristic, random"`
	Seed      int64  `short:"s" help:"RNG seed (0 for random)"`
	Seat      int    `default:"0" help:"Seat of the heuristic bot"`
	ShowHands bool   `help:"Show every hand, not just the heuristic bot's"`
	History   string `type:"path" help:"Write the match history as TOML to this file"`
}

func (cmd *PlayCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}

	players := pick(cmd.Players, cfg.Simulation.Players)
	seed := pick(cmd.Seed, cfg.Simulation.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	agents, kinds, err := seatAgents(players, cmd.Seat, pick(cmd.Opponent, cfg.Simulation.Opponent), seed, cfg.BotConfig(), logger)
	if err != nil {
		return err
	}

	id, err := matchid.NewFromReader(randutil.NewReader(seed))
	if err != nil {
		return err
	}
	match, err := game.NewMatch(id, agents, randutil.New(seed), logger)
	if err != nil {
		return err
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{
		ShowHands:   cmd.ShowHands,
		Names:       seatNames(kinds),
		Perspective: cmd.Seat,
	})
	match.EventBus().Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		fmt.Println(formatter.Format(event))
		if _, ok := event.(game.RoundEndEvent); ok {
			fmt.Println()
		}
	}))

	recorder := history.NewRecorder(id, seed, kinds)
	match.EventBus().Subscribe(recorder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := match.Play(ctx)
	if err != nil {
		return fmt.Errorf("match %s (seed %d): %w", id, seed, err)
	}
	logger.Info("Match complete", "match", id, "seed", seed, "rounds", result.Rounds, "winners", result.Winners)

	if cmd.History != "" {
		if err := history.WriteFile(cmd.History, recorder.History()); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
		logger.Info("Wrote history", "path", cmd.History)
	}
	return nil
}

// seatNames labels seats "p0 (heuristic)" and so on
func seatNames(kinds []string) []string {
	names := make([]string, len(kinds))
	for seat, kind := range kinds {
		names[seat] = fmt.Sprintf("p%d (%s)", seat, kind)
	}
	return names
}
