package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/loveletterbots/internal/card"
)

// MatchResult contains the results of a completed match
type MatchResult struct {
	ID            string
	Rounds        int
	Tokens        []int
	Winners       []int
	Substitutions []int // per seat, actions replaced after rejection
}

// Match drives a game between agents: it deals rounds, asks agents for
// actions, re-validates them and notifies every agent of the outcome.
type Match struct {
	id       string
	agents   []Agent
	state    *State
	rng      *rand.Rand
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	subs     []int
}

// NewMatch seats agents in order. rng drives shuffling and the random
// substitute used when an agent returns an illegal action.
func NewMatch(id string, agents []Agent, rng *rand.Rand, logger *log.Logger) (*Match, error) {
	state, err := NewState(len(agents), rng)
	if err != nil {
		return nil, err
	}
	return &Match{
		id:       id,
		agents:   agents,
		state:    state,
		rng:      rng,
		logger:   logger.WithPrefix("match").With("match", id),
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
		subs:     make([]int, len(agents)),
	}, nil
}

// SetClock replaces the clock used to timestamp events
func (m *Match) SetClock(clock quartz.Clock) {
	m.clock = clock
}

// EventBus returns the event bus for subscribing to match events
func (m *Match) EventBus() EventBus {
	return m.eventBus
}

// State exposes the underlying game state, mainly for tests and replays
func (m *Match) State() *State {
	return m.state
}

// ID returns the match identifier
func (m *Match) ID() string {
	return m.id
}

// Play runs rounds until a seat reaches the token target or ctx is done.
func (m *Match) Play(ctx context.Context) (*MatchResult, error) {
	m.logger.Debug("Starting match", "players", len(m.agents))

	for !m.state.GameOver() {
		if err := m.PlayRound(ctx, nil); err != nil {
			return nil, err
		}
	}
	return m.finish(), nil
}

// Replay plays one round per deck, in order, instead of shuffling. The match
// must be over once the decks run out.
func (m *Match) Replay(ctx context.Context, decks []*card.Deck) (*MatchResult, error) {
	m.logger.Debug("Replaying match", "players", len(m.agents), "rounds", len(decks))

	for i, deck := range decks {
		if err := m.PlayRound(ctx, deck); err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
	}
	if !m.state.GameOver() {
		return nil, fmt.Errorf("replay ended after %d rounds with no winner (tokens %v)", len(decks), m.state.Tokens())
	}
	return m.finish(), nil
}

func (m *Match) finish() *MatchResult {
	m.eventBus.Publish(NewMatchEndEvent(m.id, m.state, m.clock.Now()))
	result := &MatchResult{
		ID:            m.id,
		Rounds:        m.state.Round(),
		Tokens:        m.state.Tokens(),
		Winners:       m.state.Winners(),
		Substitutions: slices.Clone(m.subs),
	}
	m.logger.Debug("Match complete", "rounds", result.Rounds, "winners", result.Winners, "tokens", result.Tokens)
	return result
}

// PlayRound deals and plays a single round. A nil deck means a fresh
// shuffled one.
func (m *Match) PlayRound(ctx context.Context, deck *card.Deck) error {
	var err error
	if deck == nil {
		err = m.state.StartRound()
	} else {
		err = m.state.StartRoundWithDeck(deck)
	}
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	m.eventBus.Publish(NewRoundStartEvent(m.id, m.state, m.clock.Now()))
	for seat, agent := range m.agents {
		agent.NewRound(m.state.View(seat))
	}

	for !m.state.RoundOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.playTurn(); err != nil {
			return err
		}
	}

	winners := m.state.RoundWinners()
	m.logger.Debug("Round complete", "round", m.state.Round(), "winners", winners)
	m.eventBus.Publish(NewRoundEndEvent(m.id, m.state, m.clock.Now()))
	return nil
}

func (m *Match) playTurn() error {
	seat := m.state.Turn()
	drawn, err := m.state.Draw()
	if err != nil {
		return fmt.Errorf("draw for seat %d: %w", seat, err)
	}

	before := slices.Clone(m.state.eliminated)
	act, err := m.agents[seat].PlayCard(drawn)
	if err == nil {
		err = m.state.Apply(act)
	}

	event := PlayerActionEvent{MatchID: m.id, Round: m.state.Round(), Drawn: drawn}
	if err != nil {
		m.logger.Warn("Rejected agent action, substituting random action", "seat", seat, "action", act, "error", err)
		event.Substituted = true
		event.Reason = err.Error()
		m.subs[seat]++

		if act, err = m.substitute(seat, drawn); err != nil {
			return err
		}
	}

	event.Action = act
	event.Hands = m.state.Hands()
	for s, out := range m.state.eliminated {
		if out && !before[s] {
			event.Eliminated = append(event.Eliminated, s)
		}
	}
	event.timestamp = m.clock.Now()
	m.eventBus.Publish(event)

	for s, agent := range m.agents {
		agent.See(act, m.state.View(s))
	}
	return nil
}

// substitute applies a uniformly random legal action for seat.
func (m *Match) substitute(seat int, drawn card.Card) (Action, error) {
	legal := m.state.View(seat).LegalActions(drawn)
	if len(legal) == 0 {
		return Action{}, fmt.Errorf("seat %d holding %v and %v: %w", seat, m.state.Hand(seat), drawn, ErrNoLegalAction)
	}
	act := legal[m.rng.IntN(len(legal))]
	if err := m.state.Apply(act); err != nil {
		return act, fmt.Errorf("apply substitute %v: %w", act, err)
	}
	return act, nil
}
