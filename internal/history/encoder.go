// Package history records matches from game events and stores them as TOML.
package history

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/loveletterbots/internal/card"
	"github.com/lox/loveletterbots/internal/fileutil"
	"github.com/lox/loveletterbots/internal/game"
)

// Encode writes the match history to w as TOML.
func Encode(w io.Writer, h *MatchHistory) error {
	if h == nil {
		return fmt.Errorf("history: match history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(h *MatchHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a match history written by Encode.
func Decode(r io.Reader) (*MatchHistory, error) {
	var h MatchHistory
	if _, err := toml.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return &h, nil
}

// WriteFile atomically writes the history to path.
func WriteFile(path string, h *MatchHistory) error {
	data, err := EncodeToBytes(h)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// ReadFile loads a history written by WriteFile and checks it can be
// replayed.
func ReadFile(path string) (*MatchHistory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// FormatAction writes an action in the compact history notation, e.g.
// "p0 guard p2 baron", "p1 handmaid".
func FormatAction(act game.Action) string {
	parts := []string{fmt.Sprintf("p%d", act.Player()), strings.ToLower(act.Card().String())}
	if act.HasTarget() {
		parts = append(parts, fmt.Sprintf("p%d", act.Target()))
	}
	if act.Card() == card.Guard {
		parts = append(parts, strings.ToLower(act.Guess().String()))
	}
	return strings.Join(parts, " ")
}

// ParseAction reverses FormatAction. Trailing "# ..." comments are ignored.
func ParseAction(s string) (game.Action, error) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return game.Action{}, fmt.Errorf("history: malformed action %q", s)
	}

	player, err := parseSeat(fields[0])
	if err != nil {
		return game.Action{}, err
	}
	c, err := card.Parse(fields[1])
	if err != nil {
		return game.Action{}, fmt.Errorf("history: %w", err)
	}

	target, guess := game.NoTarget, card.Unknown
	if len(fields) > 2 {
		if target, err = parseSeat(fields[2]); err != nil {
			return game.Action{}, err
		}
	}
	if len(fields) > 3 {
		if guess, err = card.Parse(fields[3]); err != nil {
			return game.Action{}, fmt.Errorf("history: %w", err)
		}
	}
	return game.NewAction(c, player, target, guess)
}

func parseSeat(s string) (int, error) {
	var seat int
	if _, err := fmt.Sscanf(s, "p%d", &seat); err != nil {
		return 0, fmt.Errorf("history: bad seat %q", s)
	}
	return seat, nil
}

func cardNames(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
