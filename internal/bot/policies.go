package bot

import (
	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
)

// Thresholds are the minimum belief probabilities a policy needs before it
// commits a Guard guess, a Baron comparison or a King swap. Every King, Baron
// and Guard rule is gated, including the Countess King step and the Baron
// steps in later rows. Stealing a believed Princess with the King is not.
type Thresholds struct {
	Guard float64
	Baron float64
	King  float64
}

// Hand is the pair of cards held on our turn
type Hand struct {
	Held  card.Card
	Dealt card.Card
}

// Has reports whether either card is c
func (h Hand) Has(c card.Card) bool {
	return h.Held == c || h.Dealt == c
}

// MaxValue is the value of the better card
func (h Hand) MaxValue() int {
	return card.MaxValue(h.Held, h.Dealt)
}

// situation is everything a policy looks at when deciding how to respond to
// one opponent.
type situation struct {
	self   int
	target int
	hand   Hand
	prob   float64
	deck   *DeckTracker
	min    Thresholds
}

// A policy proposes an action against an opponent believed to hold a
// particular card, or abstains.
type policy func(s situation) (game.Action, bool)

// policies is indexed by card ordinal
var policies = [card.NumTypes]policy{
	respondToGuard,
	respondToPriest,
	respondToBaron,
	respondToHandmaid,
	respondToPrince,
	respondToKing,
	respondToCountess,
	respondToPrincess,
}

// policyFor returns the response to an opponent believed to hold c
func policyFor(c card.Card) policy {
	return policies[c.Ordinal()]
}

func respondToGuard(s situation) (game.Action, bool) {
	return s.baron(card.Guard.Value())
}

func respondToPriest(s situation) (game.Action, bool) {
	return first(s,
		func(s situation) (game.Action, bool) { return s.guess(card.Priest) },
		func(s situation) (game.Action, bool) { return s.baron(card.Priest.Value()) },
		func(s situation) (game.Action, bool) { return s.prince(card.Priest.Value()) },
	)
}

func respondToBaron(s situation) (game.Action, bool) {
	return first(s,
		func(s situation) (game.Action, bool) { return s.guess(card.Baron) },
		func(s situation) (game.Action, bool) { return s.prince(card.Baron.Value()) },
	)
}

func respondToHandmaid(s situation) (game.Action, bool) {
	return first(s,
		situation.king,
		func(s situation) (game.Action, bool) { return s.guess(card.Handmaid) },
		func(s situation) (game.Action, bool) { return s.baron(card.Handmaid.Value()) },
		func(s situation) (game.Action, bool) { return s.prince(card.King.Value()) },
	)
}

func respondToPrince(s situation) (game.Action, bool) {
	return first(s,
		func(s situation) (game.Action, bool) { return s.guess(card.Prince) },
		func(s situation) (game.Action, bool) { return s.baron(card.Prince.Value()) },
		func(s situation) (game.Action, bool) { return s.prince(card.King.Value()) },
	)
}

func respondToKing(s situation) (game.Action, bool) {
	return first(s,
		func(s situation) (game.Action, bool) { return s.guess(card.King) },
		func(s situation) (game.Action, bool) { return s.baron(card.King.Value()) },
		func(s situation) (game.Action, bool) { return s.prince(card.King.Value()) },
	)
}

// A Countess holder who is likely to be forced into playing it soon is left
// alone.
func respondToCountess(s situation) (game.Action, bool) {
	if s.deck.ForcedHighChance() > 0.5 {
		return game.Action{}, false
	}
	return first(s,
		func(s situation) (game.Action, bool) {
			if s.hand.MaxValue() >= card.Countess.Value() {
				return game.Action{}, false
			}
			return s.king()
		},
		func(s situation) (game.Action, bool) { return s.guess(card.Countess) },
		func(s situation) (game.Action, bool) { return s.baron(card.Countess.Value()) },
		func(s situation) (game.Action, bool) { return s.prince(card.Countess.Value()) },
	)
}

// The Princess is always worth stealing. Baron can never beat it.
func respondToPrincess(s situation) (game.Action, bool) {
	return first(s,
		func(s situation) (game.Action, bool) {
			if !s.hand.Has(card.King) {
				return game.Action{}, false
			}
			return valid(game.PlayKing(s.self, s.target))
		},
		func(s situation) (game.Action, bool) { return s.guess(card.Princess) },
		func(s situation) (game.Action, bool) {
			if !s.hand.Has(card.Prince) {
				return game.Action{}, false
			}
			return valid(game.PlayPrince(s.self, s.target))
		},
	)
}

func first(s situation, rules ...policy) (game.Action, bool) {
	for _, rule := range rules {
		if act, ok := rule(s); ok {
			return act, true
		}
	}
	return game.Action{}, false
}

func valid(act game.Action, err error) (game.Action, bool) {
	return act, err == nil
}

// guess names c with a Guard
func (s situation) guess(c card.Card) (game.Action, bool) {
	if !s.hand.Has(card.Guard) || s.prob <= s.min.Guard {
		return game.Action{}, false
	}
	return valid(game.PlayGuard(s.self, s.target, c))
}

// baron compares hands when our best card is worth at least minValue
func (s situation) baron(minValue int) (game.Action, bool) {
	if !s.hand.Has(card.Baron) || s.hand.MaxValue() < minValue || s.prob <= s.min.Baron {
		return game.Action{}, false
	}
	return valid(game.PlayBaron(s.self, s.target))
}

// prince forces a discard while the cards left to draw average at most limit
func (s situation) prince(limit int) (game.Action, bool) {
	if !s.hand.Has(card.Prince) || s.deck.AverageRemainingValue() > float64(limit) {
		return game.Action{}, false
	}
	return valid(game.PlayPrince(s.self, s.target))
}

func (s situation) king() (game.Action, bool) {
	if !s.hand.Has(card.King) || s.prob <= s.min.King {
		return game.Action{}, false
	}
	return valid(game.PlayKing(s.self, s.target))
}
