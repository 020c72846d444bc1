package bot

import (
	"fmt"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
)

// ErrNoLegalAction is returned when even the exhaustive fallback finds
// nothing the rules allow.
var ErrNoLegalAction = game.ErrNoLegalAction

// SelectAction picks the best response across all opponents and falls back
// to SelectSelfAction when every policy abstains. Responses are not checked
// against the rules; the match driver does that.
func (b *Bot) SelectAction(held, dealt card.Card) (game.Action, error) {
	if act, ok := b.bestResponse(Hand{Held: held, Dealt: dealt}); ok {
		return act, nil
	}
	b.logger.Debug("No response fits, falling back", "seat", b.seat, "held", held, "dealt", dealt)
	return b.SelectSelfAction(held, dealt)
}

// bestResponse weighs each opponent by the value of the card we believe they
// hold. Ties go to the opponent who has targeted us strictly more often,
// then to the lower seat.
func (b *Bot) bestResponse(h Hand) (game.Action, bool) {
	var (
		best       game.Action
		found      bool
		bestWeight int
		bestThreat int
	)

	for seat, belief := range b.beliefs {
		if belief == nil || b.view.IsEliminated(seat) || b.view.IsProtected(seat) {
			continue
		}

		believed := belief.MostLikely()
		act, ok := policyFor(believed)(situation{
			self:   b.seat,
			target: seat,
			hand:   h,
			prob:   belief.MostLikelyChance(),
			deck:   b.deck,
			min:    b.cfg.MinConfidence,
		})
		if !ok {
			continue
		}

		weight, threat := believed.Value(), belief.Threat()
		if found && (weight < bestWeight || (weight == bestWeight && threat <= bestThreat)) {
			continue
		}
		best, bestWeight, bestThreat, found = act, weight, threat, true
	}

	if found {
		b.logger.Debug("Selected response", "seat", b.seat, "action", best, "weight", bestWeight, "threat", bestThreat)
	}
	return best, found
}

// SelectSelfAction is used when no opponent warrants a response: protect
// ourselves, otherwise look at someone with a Priest, otherwise play a random
// legal card. The Princess is never chosen.
func (b *Bot) SelectSelfAction(held, dealt card.Card) (game.Action, error) {
	h := Hand{Held: held, Dealt: dealt}

	if h.Has(card.Handmaid) {
		return game.PlayHandmaid(b.seat)
	}

	if h.Has(card.Priest) {
		if target, ok := b.priestTarget(); ok {
			act, err := game.PlayPriest(b.seat, target)
			if err == nil && b.view.Legal(act, dealt) == nil {
				return act, nil
			}
		}
	}

	return b.sampleAction(h, dealt)
}

// priestTarget picks a live, unprotected opponent by certainty of belief.
// Ties go to the lower seat.
func (b *Bot) priestTarget() (int, bool) {
	target, found := -1, false
	var bestChance float64

	for _, mostCertain := range []bool{b.cfg.PriestTargeting == PriestMostCertain, true} {
		for seat, belief := range b.beliefs {
			if belief == nil || b.view.IsEliminated(seat) || b.view.IsProtected(seat) {
				continue
			}
			// there is nothing left to learn about a known hand
			if !mostCertain && belief.Known() != card.Unknown {
				continue
			}
			chance := belief.MostLikelyChance()
			if !found || (mostCertain && chance > bestChance) || (!mostCertain && chance < bestChance) {
				target, bestChance, found = seat, chance, true
			}
		}
		if found {
			break
		}
	}
	return target, found
}

// sampleAction draws random card and opponent pairs until one is legal. If
// the sample budget runs out it sweeps every legal action, self targets
// included, and takes the first one that is not the Princess.
func (b *Bot) sampleAction(h Hand, dealt card.Card) (game.Action, error) {
	var cards []card.Card
	for _, c := range []card.Card{h.Held, h.Dealt} {
		if c.Valid() && c != card.Princess {
			cards = append(cards, c)
		}
	}
	opponents := b.view.Opponents()

	if len(cards) > 0 && len(opponents) > 0 {
		for range b.cfg.MaxFallbackSamples {
			c := cards[b.rng.IntN(len(cards))]
			target := opponents[b.rng.IntN(len(opponents))]

			guess := card.Unknown
			if c == card.Guard {
				guess = b.guardGuess(target)
			}
			act, err := game.NewAction(c, b.seat, target, guess)
			if err != nil {
				continue
			}
			if b.view.Legal(act, dealt) == nil {
				return act, nil
			}
		}
		b.logger.Warn("Fallback sampling exhausted", "seat", b.seat, "samples", b.cfg.MaxFallbackSamples, "held", h.Held, "dealt", dealt)
	}

	for _, act := range b.view.LegalActions(dealt) {
		if act.Card() != card.Princess {
			return act, nil
		}
	}

	b.logger.Error("No legal action found", "seat", b.seat, "held", h.Held, "dealt", dealt)
	return game.Action{}, fmt.Errorf("seat %d holding %v and %v: %w", b.seat, h.Held, dealt, ErrNoLegalAction)
}

// guardGuess names the target's most likely card. A Guard cannot be named,
// so that belief is replaced by a random type that is still unplayed.
func (b *Bot) guardGuess(target int) card.Card {
	if belief := b.Belief(target); belief != nil {
		if c := belief.MostLikely(); c != card.Guard {
			return c
		}
	}

	var options []card.Card
	for _, c := range card.All[1:] {
		if b.deck.Remaining(c) > 0 {
			options = append(options, c)
		}
	}
	if len(options) == 0 {
		options = card.All[1:]
	}
	return options[b.rng.IntN(len(options))]
}
