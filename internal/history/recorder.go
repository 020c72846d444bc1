package history

import (
	"time"

	"github.com/lox/loveletterbots/internal/game"
)

// Recorder builds a MatchHistory by subscribing to a match's event bus.
type Recorder struct {
	h *MatchHistory
}

// NewRecorder starts an empty history for the given match
func NewRecorder(matchID string, seed int64, players []string) *Recorder {
	return &Recorder{h: &MatchHistory{
		Match:       matchID,
		Seed:        seed,
		Players:     players,
		TokensToWin: game.TokensToWin(len(players)),
	}}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		if r.h.Timestamp.IsZero() {
			r.h.Timestamp = e.Timestamp()
			r.h.Time = e.Timestamp().UTC().Format(time.RFC3339)
		}
		r.h.Rounds = append(r.h.Rounds, Round{
			Number:  e.Round,
			Starter: e.Starter,
			Burnt:   e.Burnt.String(),
			Hands:   cardNames(e.Hands),
			Deck:    cardNames(e.Deck),
		})
	case game.PlayerActionEvent:
		if round := r.current(); round != nil {
			line := FormatAction(e.Action)
			if e.Substituted {
				line += " # substituted"
			}
			round.Actions = append(round.Actions, line)
		}
	case game.RoundEndEvent:
		if round := r.current(); round != nil {
			round.Winners = e.Winners
			round.FinalHands = cardNames(e.Hands)
			round.Tokens = e.Tokens
		}
	case game.MatchEndEvent:
		r.h.Tokens = e.Tokens
		r.h.Winners = e.Winners
	}
}

func (r *Recorder) current() *Round {
	if len(r.h.Rounds) == 0 {
		return nil
	}
	return &r.h.Rounds[len(r.h.Rounds)-1]
}

// History returns the record built so far
func (r *Recorder) History() *MatchHistory {
	return r.h
}
