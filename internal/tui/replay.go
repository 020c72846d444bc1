package tui

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/bot"
	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/history"
	"github.com/lox/loveletterbots/internal/randutil"
)

// Frame is one step of a replay: the formatted event plus what the watched
// bot believed once it had seen it
type Frame struct {
	Round   int
	Text    string
	Tokens  []int
	Beliefs []bot.Belief
	Unseen  card.Counts
}

// Replay is a fully played match ready to be stepped through
type Replay struct {
	MatchID string
	Hero    int
	Players int
	Frames  []Frame
	Result  *game.MatchResult
}

// heroAgent forwards to the watched bot and snapshots its beliefs into the
// latest frame after every notification. With a script it replays recorded
// actions instead of choosing its own.
type heroAgent struct {
	*bot.Bot
	replay *Replay
	script *script
}

func (h heroAgent) NewRound(view game.View) {
	h.Bot.NewRound(view)
	h.snapshot()
}

func (h heroAgent) See(act game.Action, view game.View) {
	h.Bot.See(act, view)
	h.snapshot()
}

func (h heroAgent) PlayCard(drawn card.Card) (game.Action, error) {
	if h.script != nil {
		return h.script.take(h.Seat())
	}
	return h.Bot.PlayCard(drawn)
}

func (h heroAgent) snapshot() {
	if len(h.replay.Frames) == 0 {
		return
	}
	frame := &h.replay.Frames[len(h.replay.Frames)-1]
	frame.Beliefs = h.Beliefs()
	frame.Unseen = h.Deck().Counts()
}

// script hands out recorded actions in order, shared by every seat
type script struct {
	actions []game.Action
	next    int
	err     error
}

func (s *script) take(seat int) (game.Action, error) {
	if s.err != nil {
		return game.Action{}, s.err
	}
	if s.next >= len(s.actions) {
		s.err = fmt.Errorf("history ran out of actions at seat %d", seat)
		return game.Action{}, s.err
	}
	act := s.actions[s.next]
	s.next++
	if act.Player() != seat {
		s.err = fmt.Errorf("history action %d is %v, but it is seat %d's turn", s.next, act, seat)
		return game.Action{}, s.err
	}
	return act, nil
}

// scriptedAgent plays a seat's recorded actions
type scriptedAgent struct {
	seat   int
	script *script
}

func (a *scriptedAgent) NewRound(view game.View)                 { a.seat = view.Seat }
func (a *scriptedAgent) See(game.Action, game.View)              {}
func (a *scriptedAgent) PlayCard(card.Card) (game.Action, error) { return a.script.take(a.seat) }

// Record plays a match between agents and captures every event. The agent
// at seat hero must be a heuristic *bot.Bot.
func Record(ctx context.Context, id string, agents []game.Agent, hero int, rng *rand.Rand, logger *log.Logger) (*Replay, error) {
	if hero < 0 || hero >= len(agents) {
		return nil, fmt.Errorf("hero seat %d out of range", hero)
	}
	heroBot, ok := agents[hero].(*bot.Bot)
	if !ok {
		return nil, fmt.Errorf("seat %d is %T, not a heuristic bot", hero, agents[hero])
	}

	return record(id, agents, hero, heroBot, nil, rng, logger, func(m *game.Match) (*game.MatchResult, error) {
		return m.Play(ctx)
	})
}

// FromHistory rebuilds a recorded match: every seat repeats its recorded
// actions on the recorded decks while a heuristic bot with cfg watches from
// seat hero, so the sidebar shows what it would have believed.
func FromHistory(ctx context.Context, h *history.MatchHistory, hero int, cfg bot.Config, logger *log.Logger) (*Replay, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if hero < 0 || hero >= len(h.Players) {
		return nil, fmt.Errorf("hero seat %d out of range", hero)
	}

	sc := &script{}
	decks := make([]*card.Deck, len(h.Rounds))
	for i, round := range h.Rounds {
		cards, err := round.DeckCards()
		if err != nil {
			return nil, err
		}
		decks[i] = card.NewDeckFromCards(cards)

		acts, err := round.ParsedActions()
		if err != nil {
			return nil, err
		}
		sc.actions = append(sc.actions, acts...)
	}

	agents := make([]game.Agent, len(h.Players))
	for seat := range agents {
		agents[seat] = &scriptedAgent{seat: seat, script: sc}
	}
	heroBot := bot.NewBot(cfg, randutil.New(h.Seed), logger)

	replay, err := record(h.Match, agents, hero, heroBot, sc, randutil.New(h.Seed), logger, func(m *game.Match) (*game.MatchResult, error) {
		return m.Replay(ctx, decks)
	})
	if sc.err != nil {
		return nil, fmt.Errorf("replay %s: %w", h.Match, sc.err)
	}
	if err != nil {
		return nil, err
	}
	if sc.next != len(sc.actions) {
		return nil, fmt.Errorf("replay %s: %d recorded actions left over", h.Match, len(sc.actions)-sc.next)
	}
	if !slices.Equal(replay.Result.Tokens, h.Tokens) {
		return nil, fmt.Errorf("replay %s: tokens %v, history says %v", h.Match, replay.Result.Tokens, h.Tokens)
	}
	return replay, nil
}

func record(id string, agents []game.Agent, hero int, heroBot *bot.Bot, sc *script, rng *rand.Rand, logger *log.Logger, play func(*game.Match) (*game.MatchResult, error)) (*Replay, error) {
	replay := &Replay{MatchID: id, Hero: hero, Players: len(agents)}

	seated := slices.Clone(agents)
	seated[hero] = heroAgent{Bot: heroBot, replay: replay, script: sc}

	match, err := game.NewMatch(id, seated, rng, logger)
	if err != nil {
		return nil, err
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{ShowHands: true, Perspective: hero})
	state := match.State()
	match.EventBus().Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		frame := Frame{
			Round:  state.Round(),
			Text:   formatter.Format(event),
			Tokens: state.Tokens(),
		}
		if n := len(replay.Frames); n > 0 {
			frame.Beliefs = replay.Frames[n-1].Beliefs
			frame.Unseen = replay.Frames[n-1].Unseen
		}
		replay.Frames = append(replay.Frames, frame)
	}))

	result, err := play(match)
	if err != nil {
		return nil, fmt.Errorf("play match %s: %w", id, err)
	}
	replay.Result = result
	return replay, nil
}
