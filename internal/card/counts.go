package card

import (
	"fmt"
	"strings"
)

// Counts holds a number of cards per type, indexed by ordinal.
type Counts [NumTypes]int

// FullDeck returns the per-type counts of a complete deck.
func FullDeck() Counts {
	return Counts(cardCount)
}

// Get returns the count for c.
func (c *Counts) Get(card Card) int {
	return c[card.Ordinal()]
}

// Set overwrites the count for card.
func (c *Counts) Set(card Card, n int) {
	c[card.Ordinal()] = n
}

// Dec removes one copy of card. It reports false, leaving the count
// untouched, when there is nothing left to remove.
func (c *Counts) Dec(card Card) bool {
	i := card.Ordinal()
	if c[i] <= 0 {
		return false
	}
	c[i]--
	return true
}

// Total returns the sum of all counts.
func (c *Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// String implements Stringer.
func (c Counts) String() string {
	parts := make([]string, 0, NumTypes)
	for i, n := range c {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %v", n, All[i]))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
