package game

import (
	"time"

	"github.com/lox/loveletterbots/internal/card"
)

// GameEvent represents any event that occurs during a match
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once a round has been dealt. Hands holds every
// seat's opening card and is meant for recorders, not agents.
type RoundStartEvent struct {
	MatchID   string
	Round     int
	Starter   int
	Hands     []card.Card
	Burnt     card.Card
	Deck      []card.Card // full deal order, see State.Dealt
	Tokens    []int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(matchID string, s *State, at time.Time) RoundStartEvent {
	return RoundStartEvent{
		MatchID:   matchID,
		Round:     s.Round(),
		Starter:   s.Turn(),
		Hands:     s.Hands(),
		Burnt:     s.Burnt(),
		Deck:      s.Dealt(),
		Tokens:    s.Tokens(),
		timestamp: at,
	}
}

// PlayerActionEvent is published after an action has been resolved
type PlayerActionEvent struct {
	MatchID     string
	Round       int
	Action      Action
	Drawn       card.Card
	Substituted bool   // the agent's own action was rejected and replaced
	Reason      string // why the agent's action was rejected
	Eliminated  []int  // seats knocked out by this action
	Hands       []card.Card
	timestamp   time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when a round finishes
type RoundEndEvent struct {
	MatchID   string
	Round     int
	Winners   []int
	Hands     []card.Card
	Tokens    []int
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(matchID string, s *State, at time.Time) RoundEndEvent {
	return RoundEndEvent{
		MatchID:   matchID,
		Round:     s.Round(),
		Winners:   s.RoundWinners(),
		Hands:     s.Hands(),
		Tokens:    s.Tokens(),
		timestamp: at,
	}
}

// MatchEndEvent is published once a seat reaches the token target
type MatchEndEvent struct {
	MatchID   string
	Rounds    int
	Winners   []int
	Tokens    []int
	timestamp time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchEndEvent creates a new match end event
func NewMatchEndEvent(matchID string, s *State, at time.Time) MatchEndEvent {
	return MatchEndEvent{
		MatchID:   matchID,
		Rounds:    s.Round(),
		Winners:   s.Winners(),
		Tokens:    s.Tokens(),
		timestamp: at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory, synchronous event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
