package game

import "github.com/lox/loveletterbots/internal/card"

// Agent is anything that can take a seat in a game. The match driver calls
// NewRound once per round, See after every action by any player (including
// the agent's own), and PlayCard when it is the agent's turn. Views are
// snapshots taken after the event they describe.
type Agent interface {
	NewRound(view View)
	See(act Action, view View)
	PlayCard(drawn card.Card) (Action, error)
}
