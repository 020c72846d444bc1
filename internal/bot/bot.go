// Package bot contains the Love Letter agents: the heuristic Bot, which keeps
// a belief about every opponent's hand and responds to the most valuable
// one, and RandBot, which plays uniformly random legal actions.
package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
)

// Bot is the heuristic agent. It is not safe for concurrent use; each seat
// gets its own Bot.
type Bot struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	seat    int
	view    game.View
	deck    *DeckTracker
	beliefs []*BeliefModel // indexed by seat, nil for our own
}

// NewBot creates a heuristic bot. rng only drives the random fallback, so a
// fixed seed makes every decision reproducible.
func NewBot(cfg Config, rng *rand.Rand, logger *log.Logger) *Bot {
	return &Bot{
		cfg:    cfg,
		rng:    rng,
		logger: logger.WithPrefix("bot"),
		deck:   NewDeckTracker(),
	}
}

// NewRound forgets everything from the previous round
func (b *Bot) NewRound(view game.View) {
	b.view = view
	b.seat = view.Seat
	b.deck.Reset()
	b.beliefs = make([]*BeliefModel, view.NumPlayers)
	for _, seat := range view.Opponents() {
		b.beliefs[seat] = NewBeliefModel(seat)
	}
	b.syncKnown()
}

// See records an action by any player, ourselves included
func (b *Bot) See(act game.Action, view game.View) {
	b.view = view
	b.deck.Decrement(act.Card())
	for seat, belief := range b.beliefs {
		if belief != nil {
			belief.Observe(act.Card(), act.Player() == seat && act.Targets(b.seat))
		}
	}
	if belief := b.Belief(act.Player()); belief != nil {
		belief.ClearIfPlayed(act.Card())
	}
	b.syncKnown()
}

// syncKnown mirrors the cards the view says we have seen
func (b *Bot) syncKnown() {
	for seat, belief := range b.beliefs {
		if belief == nil {
			continue
		}
		if c := b.view.Card(seat); c.Valid() {
			belief.Reveal(c)
		} else {
			belief.Forget()
		}
	}
}

// PlayCard chooses an action holding the current hand plus drawn
func (b *Bot) PlayCard(drawn card.Card) (game.Action, error) {
	held := b.view.Hand

	if mustPlayCountess(held, drawn) {
		b.logger.Debug("Countess forced", "seat", b.seat, "held", held, "drawn", drawn)
		return game.PlayCountess(b.seat)
	}

	act, err := b.SelectAction(held, drawn)
	if err != nil {
		return act, err
	}
	b.logger.Debug("Playing", "seat", b.seat, "round", b.view.Round, "action", act)
	return act, nil
}

func mustPlayCountess(held, drawn card.Card) bool {
	h := Hand{Held: held, Dealt: drawn}
	return h.Has(card.Countess) && (h.Has(card.King) || h.Has(card.Prince))
}

// Belief returns the model for seat, or nil for our own seat
func (b *Bot) Belief(seat int) *BeliefModel {
	if seat < 0 || seat >= len(b.beliefs) {
		return nil
	}
	return b.beliefs[seat]
}

// Beliefs summarises every opponent in seat order
func (b *Bot) Beliefs() []Belief {
	var out []Belief
	for _, belief := range b.beliefs {
		if belief != nil {
			out = append(out, belief.Snapshot())
		}
	}
	return out
}

// Deck exposes the tracker of unplayed cards
func (b *Bot) Deck() *DeckTracker {
	return b.deck
}

// Seat returns the seat from the current round
func (b *Bot) Seat() int {
	return b.seat
}
