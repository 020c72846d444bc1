// Package tui replays a recorded match in the terminal, showing the event
// log next to what the heuristic bot believed at each step.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/card"
)

const sidebarWidth = 34

// Model is the Bubble Tea model for stepping through a Replay
type Model struct {
	replay *Replay
	logger *log.Logger

	logViewport viewport.Model
	pos         int // index of the last revealed frame
	quitting    bool

	width  int
	height int
}

// NewModel creates a model positioned on the first frame
func NewModel(replay *Replay, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	m := &Model{
		replay:      replay,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
	}
	m.refresh()
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Position returns the index of the current frame
func (m *Model) Position() int {
	return m.pos
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "n", "right", " ", "enter":
			m.step(1)
		case "p", "left":
			m.step(-1)
		case "N":
			m.nextRound()
		case "end", "G":
			m.seek(len(m.replay.Frames) - 1)
		case "home", "g":
			m.seek(0)
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup", "b":
			m.logViewport.HalfPageUp()
		case "pgdown", "f":
			m.logViewport.HalfPageDown()
		}
	}
	return m, nil
}

func (m *Model) step(delta int) {
	m.seek(m.pos + delta)
}

func (m *Model) nextRound() {
	frames := m.replay.Frames
	round := frames[m.pos].Round
	for i := m.pos + 1; i < len(frames); i++ {
		if frames[i].Round != round {
			m.seek(i)
			return
		}
	}
	m.seek(len(frames) - 1)
}

func (m *Model) seek(pos int) {
	pos = max(0, min(pos, len(m.replay.Frames)-1))
	if pos == m.pos {
		return
	}
	m.pos = pos
	m.refresh()
}

// refresh rebuilds the log up to the current frame and scrolls to it
func (m *Model) refresh() {
	m.logViewport.SetContent(m.renderLog())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resize() {
	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = max(1, m.height-4)
	m.refresh()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Width(m.width).Render(fmt.Sprintf(" Match %s  frame %d/%d",
		m.replay.MatchID, m.pos+1, len(m.replay.Frames)))

	logPane := paneStyle.
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	sidebar := paneStyle.
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())

	help := InfoStyle.Render("n/→ next • p/← back • N next round • g/G start/end • j/k scroll • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar),
		help)
}

func (m *Model) renderLog() string {
	var lines []string
	for i, frame := range m.replay.Frames[:m.pos+1] {
		text := frame.Text
		if i == m.pos {
			text = CurrentStyle.Render(text)
		} else {
			text = GameLogStyle.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSidebar() string {
	frame := m.replay.Frames[m.pos]
	var b strings.Builder

	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d", frame.Round)))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render("Tokens"))
	b.WriteString("\n")
	for seat, tokens := range frame.Tokens {
		line := fmt.Sprintf("  p%d: %d", seat, tokens)
		if seat == m.replay.Hero {
			line = HeroStyle.Render(line + " (bot)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("p%d believes", m.replay.Hero)))
	b.WriteString("\n")
	if len(frame.Beliefs) == 0 {
		b.WriteString("  nothing yet\n")
	}
	for _, belief := range frame.Beliefs {
		guess := fmt.Sprintf("%v %.0f%%", belief.MostLikely, belief.Chance*100)
		if belief.Known.Valid() {
			guess = fmt.Sprintf("%v (known)", belief.Known)
		}
		line := fmt.Sprintf("  p%d: %s", belief.Seat, guess)
		if belief.Threat > 0 {
			line += ThreatStyle.Render(fmt.Sprintf(" threat %d", belief.Threat))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Unseen"))
	b.WriteString("\n")
	for i, n := range frame.Unseen {
		if n > 0 {
			fmt.Fprintf(&b, "  %d %v\n", n, card.FromOrdinal(i))
		}
	}
	return b.String()
}
