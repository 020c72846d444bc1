package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
	view   game.View
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) NewRound(view game.View) { r.view = view }

func (r *RandBot) See(_ game.Action, view game.View) { r.view = view }

func (r *RandBot) PlayCard(drawn card.Card) (game.Action, error) {
	actions := r.view.LegalActions(drawn)
	if len(actions) == 0 {
		r.logger.Error("No legal actions", "seat", r.view.Seat, "held", r.view.Hand, "drawn", drawn)
		return game.Action{}, ErrNoLegalAction
	}
	return actions[r.rng.IntN(len(actions))], nil
}
