package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypePlayerAction EventType = "player_action"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeMatchEnd     EventType = "match_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
