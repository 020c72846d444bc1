package game

import (
	"fmt"

	"github.com/lox/loveletterbots/internal/card"
)

// NoTarget is the target seat of actions that do not name another player.
const NoTarget = -1

// Action is a single card play. The zero value is not a valid Action; use one
// of the Play constructors.
type Action struct {
	card   card.Card
	player int
	target int
	guess  card.Card
}

// IllegalActionError reports an action that is malformed or not allowed in
// the current state.
type IllegalActionError struct {
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %v: %s", e.Action, e.Reason)
}

func illegal(a Action, format string, args ...any) *IllegalActionError {
	return &IllegalActionError{Action: a, Reason: fmt.Sprintf(format, args...)}
}

// PlayGuard names guess against target. Guards cannot guess Guard.
func PlayGuard(player, target int, guess card.Card) (Action, error) {
	a := Action{card: card.Guard, player: player, target: target, guess: guess}
	if !guess.Valid() || guess == card.Guard {
		return a, illegal(a, "guard cannot guess %v", guess)
	}
	return a, a.checkSeats()
}

// PlayPriest looks at target's hand.
func PlayPriest(player, target int) (Action, error) {
	return targeted(card.Priest, player, target)
}

// PlayBaron compares hands with target.
func PlayBaron(player, target int) (Action, error) {
	return targeted(card.Baron, player, target)
}

// PlayHandmaid protects the player until their next turn.
func PlayHandmaid(player int) (Action, error) {
	return untargeted(card.Handmaid, player)
}

// PlayPrince makes target (possibly the player) discard and redraw.
func PlayPrince(player, target int) (Action, error) {
	return targeted(card.Prince, player, target)
}

// PlayKing swaps hands with target.
func PlayKing(player, target int) (Action, error) {
	return targeted(card.King, player, target)
}

// PlayCountess discards the Countess.
func PlayCountess(player int) (Action, error) {
	return untargeted(card.Countess, player)
}

// PlayPrincess discards the Princess, eliminating the player.
func PlayPrincess(player int) (Action, error) {
	return untargeted(card.Princess, player)
}

// NewAction builds an action for any card type. target is ignored for cards
// without a target and guess is only used by the Guard.
func NewAction(c card.Card, player, target int, guess card.Card) (Action, error) {
	switch c {
	case card.Guard:
		return PlayGuard(player, target, guess)
	case card.Priest, card.Baron, card.Prince, card.King:
		return targeted(c, player, target)
	case card.Handmaid, card.Countess, card.Princess:
		return untargeted(c, player)
	default:
		a := Action{card: c, player: player, target: target}
		return a, illegal(a, "no such card %v", c)
	}
}

func targeted(c card.Card, player, target int) (Action, error) {
	a := Action{card: c, player: player, target: target}
	return a, a.checkSeats()
}

func untargeted(c card.Card, player int) (Action, error) {
	a := Action{card: c, player: player, target: NoTarget}
	return a, a.checkSeats()
}

func (a Action) checkSeats() error {
	if a.player < 0 {
		return illegal(a, "invalid player seat %d", a.player)
	}
	if a.HasTarget() && a.target < 0 {
		return illegal(a, "%v requires a target", a.card)
	}
	return nil
}

// Card returns the card played
func (a Action) Card() card.Card { return a.card }

// Player returns the acting seat
func (a Action) Player() int { return a.player }

// Target returns the target seat, or NoTarget
func (a Action) Target() int { return a.target }

// Guess returns the guessed card of a Guard play, or card.Unknown.
func (a Action) Guess() card.Card { return a.guess }

// HasTarget reports whether the played card names a target.
func (a Action) HasTarget() bool {
	switch a.card {
	case card.Guard, card.Priest, card.Baron, card.Prince, card.King:
		return true
	}
	return false
}

// Targets reports whether the action names seat as its target.
func (a Action) Targets(seat int) bool {
	return a.HasTarget() && a.target == seat
}

func (a Action) String() string {
	s := fmt.Sprintf("p%d:%v", a.player, a.card)
	if a.HasTarget() {
		s += fmt.Sprintf("->p%d", a.target)
	}
	if a.card == card.Guard {
		s += fmt.Sprintf("(%v)", a.guess)
	}
	return s
}
