package game

import (
	"fmt"
	"strings"

	"github.com/lox/loveletterbots/internal/card"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowHands   bool     // Include every seat's hand (omniscient replays)
	Names       []string // Seat names, defaults to "p0", "p1", ...
	Perspective int      // Seat whose hand is always shown, -1 for none
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format dispatches on the event type. Unknown events format as "".
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	case MatchEndEvent:
		return ef.FormatMatchEnd(e)
	}
	return ""
}

func (ef *EventFormatter) name(seat int) string {
	if seat >= 0 && seat < len(ef.opts.Names) && ef.opts.Names[seat] != "" {
		return ef.opts.Names[seat]
	}
	return fmt.Sprintf("p%d", seat)
}

func (ef *EventFormatter) showHand(seat int) bool {
	return ef.opts.ShowHands || seat == ef.opts.Perspective
}

// FormatRoundStart formats a round start event into a human-readable string
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** ROUND %d *** %s opens", event.Round, ef.name(event.Starter))
	for seat, c := range event.Hands {
		if ef.showHand(seat) {
			fmt.Fprintf(&b, "\nDealt to %s: [%v]", ef.name(seat), c)
		}
	}
	if ef.opts.ShowHands {
		fmt.Fprintf(&b, "\nBurnt: [%v]", event.Burnt)
	}
	return b.String()
}

// FormatPlayerAction formats a player action event into a human-readable string
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	act := event.Action
	player := ef.name(act.Player())

	var text string
	switch act.Card() {
	case card.Guard:
		text = fmt.Sprintf("%s: Guard on %s, guessing %v", player, ef.name(act.Target()), act.Guess())
	case card.Priest:
		text = fmt.Sprintf("%s: Priest looks at %s", player, ef.name(act.Target()))
	case card.Baron:
		text = fmt.Sprintf("%s: Baron compares with %s", player, ef.name(act.Target()))
	case card.Prince:
		text = fmt.Sprintf("%s: Prince makes %s discard", player, ef.name(act.Target()))
	case card.King:
		text = fmt.Sprintf("%s: King swaps with %s", player, ef.name(act.Target()))
	case card.Handmaid:
		text = fmt.Sprintf("%s: Handmaid, protected", player)
	default:
		text = fmt.Sprintf("%s: discards %v", player, act.Card())
	}

	if event.Substituted {
		text += fmt.Sprintf(" [substituted: %s]", event.Reason)
	}
	for _, seat := range event.Eliminated {
		text += fmt.Sprintf("\n  %s is out", ef.name(seat))
	}
	return text
}

// FormatRoundEnd formats a round end event into a human-readable string
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Round %d Complete ===\n", event.Round)
	for _, w := range event.Winners {
		fmt.Fprintf(&b, "Winner: %s", ef.name(w))
		if w < len(event.Hands) && event.Hands[w] != card.Unknown {
			fmt.Fprintf(&b, " [%v]", event.Hands[w])
		}
		b.WriteString("\n")
	}
	b.WriteString("Tokens: " + ef.formatTokens(event.Tokens))
	return b.String()
}

// FormatMatchEnd formats a match end event into a human-readable string
func (ef *EventFormatter) FormatMatchEnd(event MatchEndEvent) string {
	names := make([]string, len(event.Winners))
	for i, w := range event.Winners {
		names[i] = ef.name(w)
	}
	return fmt.Sprintf("*** MATCH %s *** won by %s after %d rounds (%s)",
		event.MatchID, strings.Join(names, ", "), event.Rounds, ef.formatTokens(event.Tokens))
}

func (ef *EventFormatter) formatTokens(tokens []int) string {
	parts := make([]string, len(tokens))
	for seat, t := range tokens {
		parts[seat] = fmt.Sprintf("%s=%d", ef.name(seat), t)
	}
	return strings.Join(parts, " ")
}
