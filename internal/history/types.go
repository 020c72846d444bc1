package history

import (
	"fmt"
	"time"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/matchid"
)

// MatchHistory is a complete record of one match, written as TOML.
type MatchHistory struct {
	Match       string         `toml:"match"`
	Seed        int64          `toml:"seed"`
	Players     []string       `toml:"players"`
	TokensToWin int            `toml:"tokens_to_win"`
	Tokens      []int          `toml:"tokens"`
	Winners     []int          `toml:"winners"`
	Time        string         `toml:"time,omitempty"`
	Metadata    map[string]any `toml:"metadata,omitempty"`
	Rounds      []Round        `toml:"rounds"`

	Timestamp time.Time `toml:"-"`
}

// Round records the deal, every action and the outcome of one round.
type Round struct {
	Number     int      `toml:"number"`
	Starter    int      `toml:"starter"`
	Burnt      string   `toml:"burnt"`
	Hands      []string `toml:"hands"`
	Deck       []string `toml:"deck"` // deal order, burnt card first
	Actions    []string `toml:"actions"`
	Winners    []int    `toml:"winners,omitempty"`
	FinalHands []string `toml:"final_hands,omitempty"`
	Tokens     []int    `toml:"tokens,omitempty"`
}

// Validate checks the parts of a history needed to replay it
func (h *MatchHistory) Validate() error {
	if err := matchid.Validate(h.Match); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if n := len(h.Players); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("history: %d players", n)
	}
	if len(h.Rounds) == 0 {
		return fmt.Errorf("history: no rounds")
	}
	for i, r := range h.Rounds {
		if len(r.Deck) == 0 {
			return fmt.Errorf("history: round %d has no deck", i+1)
		}
	}
	return nil
}

// DeckCards parses the round's deal order
func (r Round) DeckCards() ([]card.Card, error) {
	cards := make([]card.Card, len(r.Deck))
	for i, name := range r.Deck {
		c, err := card.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("history: round %d deck: %w", r.Number, err)
		}
		cards[i] = c
	}
	return cards, nil
}

// ParsedActions parses the round's action lines in order
func (r Round) ParsedActions() ([]game.Action, error) {
	acts := make([]game.Action, len(r.Actions))
	for i, line := range r.Actions {
		act, err := ParseAction(line)
		if err != nil {
			return nil, fmt.Errorf("round %d action %d: %w", r.Number, i+1, err)
		}
		acts[i] = act
	}
	return acts, nil
}
