package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/loveletterbots/internal/bot"
	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/history"
	"github.com/lox/loveletterbots/internal/matchid"
	"github.com/lox/loveletterbots/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func recordReplay(t *testing.T, seed int64) *Replay {
	t.Helper()
	logger := quietLogger()
	agents := []game.Agent{
		bot.NewBot(bot.DefaultConfig(), randutil.New(seed+1), logger),
		bot.NewRandBot(randutil.New(seed+2), logger),
		bot.NewRandBot(randutil.New(seed+3), logger),
	}
	replay, err := Record(context.Background(), "replay-test", agents, 0, randutil.New(seed), logger)
	require.NoError(t, err)
	return replay
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestRecord(t *testing.T) {
	replay := recordReplay(t, 42)

	require.NotNil(t, replay.Result)
	require.NotEmpty(t, replay.Frames)
	assert.Equal(t, 3, replay.Players)

	first := replay.Frames[0]
	assert.Contains(t, first.Text, "*** ROUND 1 ***")
	assert.Len(t, first.Beliefs, 2, "one belief per opponent")
	assert.Equal(t, 16, first.Unseen.Total(), "nothing played yet")

	last := replay.Frames[len(replay.Frames)-1]
	assert.Contains(t, last.Text, "*** MATCH replay-test ***")
	assert.Equal(t, replay.Result.Tokens, last.Tokens)
}

func TestRecordRequiresHeuristicHero(t *testing.T) {
	logger := quietLogger()
	agents := []game.Agent{
		bot.NewRandBot(randutil.New(1), logger),
		bot.NewRandBot(randutil.New(2), logger),
	}
	_, err := Record(context.Background(), "x", agents, 0, randutil.New(3), logger)
	assert.Error(t, err)

	_, err = Record(context.Background(), "x", agents, 5, randutil.New(3), logger)
	assert.Error(t, err)
}

func TestModelStepping(t *testing.T) {
	replay := recordReplay(t, 7)
	m := NewModel(replay, quietLogger())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 0, m.Position())

	m.Update(keyMsg("n"))
	m.Update(keyMsg("right"))
	assert.Equal(t, 2, m.Position())

	m.Update(keyMsg("p"))
	assert.Equal(t, 1, m.Position())

	m.Update(keyMsg("left"))
	m.Update(keyMsg("left"))
	assert.Equal(t, 0, m.Position(), "cannot step before the first frame")

	m.Update(keyMsg("G"))
	assert.Equal(t, len(replay.Frames)-1, m.Position())

	m.Update(keyMsg("n"))
	assert.Equal(t, len(replay.Frames)-1, m.Position(), "cannot step past the last frame")

	m.Update(keyMsg("g"))
	m.Update(keyMsg("N"))
	assert.Equal(t, 2, replay.Frames[m.Position()].Round)
}

func TestModelView(t *testing.T) {
	replay := recordReplay(t, 7)
	m := NewModel(replay, quietLogger())

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.Contains(t, view, "replay-test")
	assert.Contains(t, view, "Tokens")
	assert.Contains(t, view, "p0 believes")
	assert.Contains(t, view, "ROUND 1")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(recordReplay(t, 3), quietLogger())
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

// playRecorded plays a match and returns its history and formatted events
func playRecorded(t *testing.T, seed int64) (*history.MatchHistory, []string) {
	t.Helper()
	logger := quietLogger()
	agents := []game.Agent{
		bot.NewBot(bot.DefaultConfig(), randutil.New(seed+1), logger),
		bot.NewRandBot(randutil.New(seed+2), logger),
		bot.NewRandBot(randutil.New(seed+3), logger),
	}
	id, err := matchid.NewFromReader(randutil.NewReader(seed))
	require.NoError(t, err)
	m, err := game.NewMatch(id, agents, randutil.New(seed), logger)
	require.NoError(t, err)

	rec := history.NewRecorder(id, seed, []string{"heuristic", "random", "random"})
	m.EventBus().Subscribe(rec)

	formatter := game.NewEventFormatter(game.FormattingOptions{ShowHands: true, Perspective: 0})
	var texts []string
	m.EventBus().Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
		texts = append(texts, formatter.Format(e))
	}))

	_, err = m.Play(context.Background())
	require.NoError(t, err)
	return rec.History(), texts
}

func TestFromHistory(t *testing.T) {
	h, texts := playRecorded(t, 31)

	// round-trip through a file the way the watch command loads it
	path := filepath.Join(t.TempDir(), "match.toml")
	require.NoError(t, history.WriteFile(path, h))
	loaded, err := history.ReadFile(path)
	require.NoError(t, err)

	replay, err := FromHistory(context.Background(), loaded, 1, bot.DefaultConfig(), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, h.Match, replay.MatchID)
	assert.Equal(t, 1, replay.Hero)
	assert.Equal(t, h.Tokens, replay.Result.Tokens)
	assert.Equal(t, h.Winners, replay.Result.Winners)
	assert.Equal(t, []int{0, 0, 0}, replay.Result.Substitutions)

	require.Len(t, replay.Frames, len(texts))
	for i, frame := range replay.Frames {
		assert.Equal(t, texts[i], frame.Text, "frame %d", i)
	}
	assert.Len(t, replay.Frames[0].Beliefs, 2, "watcher models both opponents")
}

func TestFromHistoryRejectsTamperedActions(t *testing.T) {
	h, _ := playRecorded(t, 32)
	first := h.Rounds[0].Actions[0]
	h.Rounds[0].Actions[0] = "p9" + first[2:]

	_, err := FromHistory(context.Background(), h, 0, bot.DefaultConfig(), quietLogger())
	assert.Error(t, err)
}

func TestFromHistoryRejectsMissingRounds(t *testing.T) {
	h, _ := playRecorded(t, 33)
	h.Rounds = h.Rounds[:len(h.Rounds)-1]

	_, err := FromHistory(context.Background(), h, 0, bot.DefaultConfig(), quietLogger())
	assert.Error(t, err)
}

func TestFromHistoryHeroOutOfRange(t *testing.T) {
	h, _ := playRecorded(t, 34)
	_, err := FromHistory(context.Background(), h, 3, bot.DefaultConfig(), quietLogger())
	assert.Error(t, err)
}
