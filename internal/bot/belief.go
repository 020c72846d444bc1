package bot

import (
	"github.com/lox/loveletterbots/internal/card"
)

// BeliefModel is what the bot believes about one opponent's hand during a
// round: how many copies of each card type the opponent could still hold, an
// exact card when we have seen it, and how often they have targeted us.
type BeliefModel struct {
	seat      int
	potential card.Counts
	known     card.Card
	threat    int
}

// NewBeliefModel returns an uninformed belief about seat
func NewBeliefModel(seat int) *BeliefModel {
	return &BeliefModel{seat: seat, potential: card.FullDeck()}
}

// Seat returns the opponent this model describes
func (b *BeliefModel) Seat() int { return b.seat }

// Observe removes one copy of c from the opponent's potential hands. When
// targetsMe is set the action was this opponent's and aimed at us.
func (b *BeliefModel) Observe(c card.Card, targetsMe bool) {
	b.potential.Dec(c)
	if targetsMe {
		b.threat++
	}
}

// Reveal records that the opponent is known to hold c
func (b *BeliefModel) Reveal(c card.Card) {
	b.known = c
}

// ClearIfPlayed forgets the known card once the opponent plays that type
func (b *BeliefModel) ClearIfPlayed(c card.Card) {
	if b.known == c {
		b.known = card.Unknown
	}
}

// Forget drops the known card, e.g. after the opponent was forced to redraw
func (b *BeliefModel) Forget() {
	b.known = card.Unknown
}

// Known returns the revealed card or card.Unknown
func (b *BeliefModel) Known() card.Card { return b.known }

// Threat counts actions by this opponent that targeted us
func (b *BeliefModel) Threat() int { return b.threat }

// PotentialCount returns how many copies of c the opponent could hold
func (b *BeliefModel) PotentialCount(c card.Card) int {
	return b.potential.Get(c)
}

// Probability is the chance the opponent holds c, treating their hand as a
// uniform draw from the copies they could still hold.
func (b *BeliefModel) Probability(c card.Card) float64 {
	if b.known != card.Unknown {
		if c == b.known {
			return 1
		}
		return 0
	}
	total := b.potential.Total()
	if total == 0 {
		return 0
	}
	return float64(b.potential.Get(c)) / float64(total)
}

// MostLikely returns the known card, otherwise the type with the highest
// probability. Ties go to the higher value type.
func (b *BeliefModel) MostLikely() card.Card {
	c, _ := b.mostLikely()
	return c
}

// MostLikelyChance returns the probability of MostLikely, 1 when known
func (b *BeliefModel) MostLikelyChance() float64 {
	_, p := b.mostLikely()
	return p
}

func (b *BeliefModel) mostLikely() (card.Card, float64) {
	if b.known != card.Unknown {
		return b.known, 1
	}
	best, bestP := card.All[0], -1.0
	for _, c := range card.All {
		if p := b.Probability(c); p >= bestP {
			best, bestP = c, p
		}
	}
	return best, bestP
}

// Belief is a point-in-time summary of a BeliefModel
type Belief struct {
	Seat       int
	MostLikely card.Card
	Chance     float64
	Known      card.Card
	Threat     int
	Potential  card.Counts
}

// Snapshot summarises the model
func (b *BeliefModel) Snapshot() Belief {
	c, p := b.mostLikely()
	return Belief{
		Seat:       b.seat,
		MostLikely: c,
		Chance:     p,
		Known:      b.known,
		Threat:     b.threat,
		Potential:  b.potential,
	}
}
