// Package card defines the eight Love Letter card types and their deck
// composition.
package card

import (
	"fmt"
	"strings"
)

// Card is a Love Letter card type. The numeric value of a Card equals its
// intrinsic value, so Guard is 1 and Princess is 8.
type Card uint8

const (
	Unknown Card = iota
	Guard
	Priest
	Baron
	Handmaid
	Prince
	King
	Countess
	Princess
)

// NumTypes is the number of distinct card types in the deck.
const NumTypes = 8

// DeckSize is the total number of cards in a full deck.
const DeckSize = 16

// All lists every card type in ascending value order.
var All = [NumTypes]Card{Guard, Priest, Baron, Handmaid, Prince, King, Countess, Princess}

var cardStr = [...]string{
	"Unknown",
	"Guard",
	"Priest",
	"Baron",
	"Handmaid",
	"Prince",
	"King",
	"Countess",
	"Princess",
}

// copies in the deck, indexed by ordinal
var cardCount = [NumTypes]int{5, 2, 2, 2, 2, 1, 1, 1}

// String returns the card name
func (c Card) String() string {
	if int(c) >= len(cardStr) {
		return fmt.Sprintf("Card(%d)", uint8(c))
	}
	return cardStr[c]
}

// Valid reports whether c is one of the eight playable card types
func (c Card) Valid() bool {
	return c >= Guard && c <= Princess
}

// Value returns the intrinsic value (1..8), or 0 for Unknown.
func (c Card) Value() int {
	if !c.Valid() {
		return 0
	}
	return int(c)
}

// Ordinal returns the zero-based position of c in ascending value order.
// It panics for Unknown.
func (c Card) Ordinal() int {
	if !c.Valid() {
		panic(fmt.Errorf("card %v has no ordinal", c))
	}
	return int(c) - 1
}

// Count returns the number of copies of c in a full deck.
func (c Card) Count() int {
	if !c.Valid() {
		return 0
	}
	return cardCount[c.Ordinal()]
}

// FromOrdinal returns the card at position i in ascending value order.
func FromOrdinal(i int) Card {
	if i < 0 || i >= NumTypes {
		return Unknown
	}
	return All[i]
}

// Parse converts a card name or value ("baron", "Baron", "3") to a Card.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
		return Card(s[0] - '0'), nil
	}
	for _, c := range All {
		if strings.EqualFold(s, cardStr[c]) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("unknown card %q", s)
}

// MaxValue returns the higher value of the two cards.
func MaxValue(a, b Card) int {
	return max(a.Value(), b.Value())
}
