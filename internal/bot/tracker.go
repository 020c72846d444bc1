package bot

import (
	"github.com/lox/loveletterbots/internal/card"
)

// DeckTracker counts the copies of each card type not yet seen played this
// round. Every observed action removes one copy of the card it used.
type DeckTracker struct {
	remaining card.Counts
}

// NewDeckTracker returns a tracker holding a full deck
func NewDeckTracker() *DeckTracker {
	return &DeckTracker{remaining: card.FullDeck()}
}

// Reset restores the full deck for a new round
func (d *DeckTracker) Reset() {
	d.remaining = card.FullDeck()
}

// Decrement records one played copy of c. Counts never drop below zero.
func (d *DeckTracker) Decrement(c card.Card) {
	d.remaining.Dec(c)
}

// Remaining returns the unplayed copies of c
func (d *DeckTracker) Remaining(c card.Card) int {
	return d.remaining.Get(c)
}

// Counts returns a copy of the remaining counts
func (d *DeckTracker) Counts() card.Counts {
	return d.remaining
}

// AverageRemainingValue is the mean value of the unplayed cards, or 0 when
// every card has been played.
func (d *DeckTracker) AverageRemainingValue() float64 {
	sum, n := 0, 0
	for _, c := range card.All {
		r := d.remaining.Get(c)
		sum += c.Value() * r
		n += r
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// ForcedHighChance is the share of unplayed cards valued Prince or above,
// i.e. the chance that a player forced to redraw picks up a high card.
func (d *DeckTracker) ForcedHighChance() float64 {
	low, high := 0, 0
	for _, c := range card.All {
		if c.Ordinal() < card.Prince.Ordinal() {
			low += d.remaining.Get(c)
		} else {
			high += d.remaining.Get(c)
		}
	}
	if low+high == 0 {
		return 0
	}
	return float64(high) / float64(low+high)
}
