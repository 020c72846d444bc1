package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// firstLegalAgent always plays the first legal action
type firstLegalAgent struct {
	view  View
	seen  int
	round int
}

func (a *firstLegalAgent) NewRound(v View) {
	a.view = v
	a.round++
}

func (a *firstLegalAgent) See(_ Action, v View) {
	a.view = v
	a.seen++
}

func (a *firstLegalAgent) PlayCard(drawn card.Card) (Action, error) {
	actions := a.view.LegalActions(drawn)
	if len(actions) == 0 {
		return Action{}, ErrNoLegalAction
	}
	return actions[0], nil
}

// brokenAgent never returns a usable action
type brokenAgent struct {
	firstLegalAgent
	fail bool
}

func (a *brokenAgent) PlayCard(drawn card.Card) (Action, error) {
	a.fail = !a.fail
	if a.fail {
		return Action{}, errors.New("thinking too hard")
	}
	// an action for somebody else's seat
	return PlayHandmaid(a.view.Seat + 1)
}

type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) {
	r.events = append(r.events, e)
}

func TestMatchPlaysToTokenTarget(t *testing.T) {
	agents := []Agent{&firstLegalAgent{}, &firstLegalAgent{}, &firstLegalAgent{}}
	m, err := NewMatch("test", agents, randutil.New(42), testLogger())
	require.NoError(t, err)

	rec := &eventRecorder{}
	m.EventBus().Subscribe(rec)

	result, err := m.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test", result.ID)
	require.NotEmpty(t, result.Winners)
	for _, w := range result.Winners {
		assert.GreaterOrEqual(t, result.Tokens[w], TokensToWin(3))
	}
	assert.Equal(t, []int{0, 0, 0}, result.Substitutions)

	require.NotEmpty(t, rec.events)
	assert.Equal(t, EventTypeRoundStart, rec.events[0].EventType())
	assert.Equal(t, EventTypeMatchEnd, rec.events[len(rec.events)-1].EventType())

	rounds := 0
	for _, e := range rec.events {
		if e.EventType() == EventTypeRoundEnd {
			rounds++
		}
	}
	assert.Equal(t, result.Rounds, rounds)
	assert.Equal(t, result.Rounds, agents[0].(*firstLegalAgent).round)
}

func TestMatchSubstitutesRejectedActions(t *testing.T) {
	broken := &brokenAgent{}
	agents := []Agent{broken, &firstLegalAgent{}}
	m, err := NewMatch("subs", agents, randutil.New(3), testLogger())
	require.NoError(t, err)

	var substituted []PlayerActionEvent
	m.EventBus().Subscribe(EventSubscriberFunc(func(e GameEvent) {
		if pa, ok := e.(PlayerActionEvent); ok && pa.Substituted {
			substituted = append(substituted, pa)
		}
	}))

	result, err := m.Play(context.Background())
	require.NoError(t, err)

	assert.Positive(t, result.Substitutions[0])
	assert.Zero(t, result.Substitutions[1])
	assert.Len(t, substituted, result.Substitutions[0])
	for _, pa := range substituted {
		assert.Equal(t, 0, pa.Action.Player())
		assert.NotEmpty(t, pa.Reason)
	}
}

func TestMatchDeterministicWithSeed(t *testing.T) {
	play := func() *MatchResult {
		agents := []Agent{&firstLegalAgent{}, &firstLegalAgent{}, &firstLegalAgent{}, &firstLegalAgent{}}
		m, err := NewMatch("det", agents, randutil.New(99), testLogger())
		require.NoError(t, err)
		result, err := m.Play(context.Background())
		require.NoError(t, err)
		return result
	}
	assert.Equal(t, play(), play())
}

func TestMatchHonoursContext(t *testing.T) {
	agents := []Agent{&firstLegalAgent{}, &firstLegalAgent{}}
	m, err := NewMatch("ctx", agents, randutil.New(1), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchEventsUseClock(t *testing.T) {
	clock := quartz.NewMock(t)
	agents := []Agent{&firstLegalAgent{}, &firstLegalAgent{}}
	m, err := NewMatch("clock", agents, randutil.New(5), testLogger())
	require.NoError(t, err)
	m.SetClock(clock)

	rec := &eventRecorder{}
	m.EventBus().Subscribe(rec)
	require.NoError(t, m.PlayRound(context.Background(), nil))

	for _, e := range rec.events {
		assert.Equal(t, clock.Now(), e.Timestamp())
	}
}

func TestNewMatchRejectsBadTableSize(t *testing.T) {
	_, err := NewMatch("solo", []Agent{&firstLegalAgent{}}, randutil.New(1), testLogger())
	assert.Error(t, err)
}

func TestAgentsSeeEveryAction(t *testing.T) {
	a, b := &firstLegalAgent{}, &firstLegalAgent{}
	m, err := NewMatch("see", []Agent{a, b}, randutil.New(8), testLogger())
	require.NoError(t, err)

	rec := &eventRecorder{}
	m.EventBus().Subscribe(rec)
	require.NoError(t, m.PlayRound(context.Background(), nil))

	actions := 0
	for _, e := range rec.events {
		if e.EventType() == EventTypePlayerAction {
			actions++
		}
	}
	assert.Equal(t, actions, a.seen)
	assert.Equal(t, actions, b.seen)
}

func TestMatchReplayDealtDecks(t *testing.T) {
	newAgents := func() []Agent {
		return []Agent{&firstLegalAgent{}, &firstLegalAgent{}, &firstLegalAgent{}}
	}

	m, err := NewMatch("orig", newAgents(), randutil.New(5), testLogger())
	require.NoError(t, err)
	rec := &eventRecorder{}
	m.EventBus().Subscribe(rec)
	want, err := m.Play(context.Background())
	require.NoError(t, err)

	var decks []*card.Deck
	for _, e := range rec.events {
		if start, ok := e.(RoundStartEvent); ok {
			require.Len(t, start.Deck, card.DeckSize)
			assert.Equal(t, start.Burnt, start.Deck[0])
			decks = append(decks, card.NewDeckFromCards(start.Deck))
		}
	}
	require.Len(t, decks, want.Rounds)

	// a different rng must not matter when every deck is supplied
	replay, err := NewMatch("orig", newAgents(), randutil.New(6), testLogger())
	require.NoError(t, err)
	got, err := replay.Replay(context.Background(), decks)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMatchReplayNeedsEnoughRounds(t *testing.T) {
	m, err := NewMatch("short", []Agent{&firstLegalAgent{}, &firstLegalAgent{}}, randutil.New(5), testLogger())
	require.NoError(t, err)

	_, err = m.Replay(context.Background(), []*card.Deck{card.NewDeck(randutil.New(1))})
	assert.ErrorContains(t, err, "no winner")
}
