package card

import (
	rand "math/rand/v2"
	"slices"
)

// Deck is a shuffled Love Letter deck
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for _, c := range All {
		for range c.Count() {
			d.cards[i] = c
			i++
		}
	}

	d.Shuffle()
	return d
}

// NewDeckFromCards creates an unshuffled deck that deals cards in the given
// order. It is used to replay or script rounds.
func NewDeckFromCards(cards []Card) *Deck {
	d := &Deck{next: DeckSize - len(cards)}
	copy(d.cards[d.next:], cards)
	return d
}

// Shuffle shuffles the whole deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw deals the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (c Card, ok bool) {
	if d.next >= len(d.cards) {
		return Unknown, false
	}
	c = d.cards[d.next]
	d.next++
	return c, true
}

// Remaining returns the undrawn cards in deal order
func (d *Deck) Remaining() []Card {
	return slices.Clone(d.cards[d.next:])
}

// Len returns the number of cards left to draw
func (d *Deck) Len() int {
	return len(d.cards) - d.next
}
