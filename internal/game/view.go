package game

import (
	"github.com/lox/loveletterbots/internal/card"
)

// View is the part of the game state one seat is allowed to see. Views are
// snapshots: later changes to the game do not alter a View already handed to
// an agent.
type View struct {
	NumPlayers int
	Seat       int // the seat this view belongs to
	Turn       int // seat to act next
	Round      int
	DeckSize   int

	Hand       card.Card   // our own card, excluding any card drawn this turn
	Known      []card.Card // cards we have legitimately seen, card.Unknown otherwise
	Eliminated []bool
	Protected  []bool
	Discards   [][]card.Card
	Tokens     []int
}

// Card returns the card seat is known to hold, or card.Unknown.
func (v View) Card(seat int) card.Card {
	if seat == v.Seat {
		return v.Hand
	}
	if seat < 0 || seat >= len(v.Known) {
		return card.Unknown
	}
	return v.Known[seat]
}

// IsEliminated reports whether seat is out of the current round.
func (v View) IsEliminated(seat int) bool {
	return seat >= 0 && seat < len(v.Eliminated) && v.Eliminated[seat]
}

// IsProtected reports whether seat played a Handmaid since their last turn.
func (v View) IsProtected(seat int) bool {
	return seat >= 0 && seat < len(v.Protected) && v.Protected[seat]
}

// Opponents returns the seats other than ours, in seat order.
func (v View) Opponents() []int {
	seats := make([]int, 0, v.NumPlayers-1)
	for s := range v.NumPlayers {
		if s != v.Seat {
			seats = append(seats, s)
		}
	}
	return seats
}

// hasOpenTarget reports whether some other live seat is unprotected.
func (v View) hasOpenTarget(player int) bool {
	for s := range v.NumPlayers {
		if s != player && !v.IsEliminated(s) && !v.IsProtected(s) {
			return true
		}
	}
	return false
}

// Legal checks act against the rules, given the card drawn this turn. It
// returns nil or an *IllegalActionError.
func (v View) Legal(act Action, drawn card.Card) error {
	p := act.Player()
	if p != v.Seat {
		return illegal(act, "player %d cannot act for seat %d", p, v.Seat)
	}
	if v.Turn != p {
		return illegal(act, "not player %d's turn", p)
	}
	if v.IsEliminated(p) {
		return illegal(act, "player %d is eliminated", p)
	}

	c := act.Card()
	if c != drawn && c != v.Hand {
		return illegal(act, "player %d does not hold %v", p, c)
	}
	if (c == card.King || c == card.Prince) && (drawn == card.Countess || v.Hand == card.Countess) {
		return illegal(act, "countess must be played alongside %v", c)
	}
	if c == card.Guard && (!act.Guess().Valid() || act.Guess() == card.Guard) {
		return illegal(act, "guard cannot guess %v", act.Guess())
	}
	if !act.HasTarget() {
		return nil
	}

	t := act.Target()
	if t < 0 || t >= v.NumPlayers {
		return illegal(act, "target %d out of range", t)
	}
	if v.IsEliminated(t) {
		return illegal(act, "target %d is eliminated", t)
	}

	open := v.hasOpenTarget(p)
	if t == p && c != card.Prince && open {
		return illegal(act, "%v cannot target self while another player is open", c)
	}
	if t != p && v.IsProtected(t) && open {
		return illegal(act, "target %d is protected", t)
	}
	return nil
}

// LegalActions enumerates every legal action available with the given drawn
// card, in card, target, guess order.
func (v View) LegalActions(drawn card.Card) []Action {
	var actions []Action
	held := []card.Card{v.Hand, drawn}
	if v.Hand == drawn {
		held = held[:1]
	}

	for _, c := range held {
		if !c.Valid() {
			continue
		}
		for _, act := range candidates(c, v.Seat, v.NumPlayers) {
			if v.Legal(act, drawn) == nil {
				actions = append(actions, act)
			}
		}
	}
	return actions
}

// candidates lists every well formed action for card c, legal or not.
func candidates(c card.Card, player, numPlayers int) []Action {
	var out []Action
	switch c {
	case card.Guard:
		for t := range numPlayers {
			for _, g := range card.All[1:] {
				if a, err := PlayGuard(player, t, g); err == nil {
					out = append(out, a)
				}
			}
		}
	case card.Priest, card.Baron, card.Prince, card.King:
		for t := range numPlayers {
			if a, err := targeted(c, player, t); err == nil {
				out = append(out, a)
			}
		}
	default:
		if a, err := untargeted(c, player); err == nil {
			out = append(out, a)
		}
	}
	return out
}
