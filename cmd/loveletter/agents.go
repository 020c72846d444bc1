package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/bot"
	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/randutil"
)

// seatAgents puts the heuristic bot at hero and opponent bots everywhere
// else, each seeded from seed
func seatAgents(players, hero int, opponent string, seed int64, cfg bot.Config, logger *log.Logger) ([]game.Agent, []string, error) {
	if hero < 0 || hero >= players {
		return nil, nil, fmt.Errorf("seat %d out of range for %d players", hero, players)
	}
	agents := make([]game.Agent, players)
	kinds := make([]string, players)
	for seat := range agents {
		kind := opponent
		if seat == hero {
			kind = bot.KindHeuristic
		}
		agent, err := bot.New(kind, randutil.Derive(seed, int64(seat)), cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		agents[seat] = agent
		kinds[seat] = kind
	}
	return agents, kinds, nil
}
