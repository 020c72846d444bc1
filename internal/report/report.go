// Package report renders simulation results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/loveletterbots/internal/fileutil"
	"github.com/lox/loveletterbots/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(16)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)
)

// Run describes the simulation that produced a set of statistics
type Run struct {
	Opponent string `json:"opponent"`
	Players  int    `json:"players"`
	Seed     int64  `json:"seed"`
}

// SeatSummary is the result breakdown for one seat
type SeatSummary struct {
	Seat    int     `json:"seat"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// Summary is the serialisable digest of a simulation
type Summary struct {
	Run

	Games         int           `json:"games"`
	Wins          int           `json:"wins"`
	SharedWins    int           `json:"shared_wins"`
	WinRate       float64       `json:"win_rate"`
	Score         float64       `json:"score"`
	StdError      float64       `json:"std_error"`
	CILow         float64       `json:"ci95_low"`
	CIHigh        float64       `json:"ci95_high"`
	Baseline      float64       `json:"baseline"`
	MeanRounds    float64       `json:"mean_rounds"`
	MeanTokens    float64       `json:"mean_tokens"`
	TokensP25     float64       `json:"tokens_p25"`
	TokensMedian  float64       `json:"tokens_median"`
	TokensP75     float64       `json:"tokens_p75"`
	TokensP95     float64       `json:"tokens_p95"`
	Substitutions int           `json:"substitutions"`
	ElapsedMS     int64         `json:"elapsed_ms"`
	Seats         []SeatSummary `json:"seats"`
}

// Summarize digests stats for the given run
func Summarize(run Run, stats *statistics.Statistics) Summary {
	low, high := stats.ConfidenceInterval95()
	s := Summary{
		Run:           run,
		Games:         stats.Games,
		Wins:          stats.Wins,
		SharedWins:    stats.SharedWins,
		WinRate:       stats.WinRate(),
		Score:         stats.Mean(),
		StdError:      stats.StdError(),
		CILow:         low,
		CIHigh:        high,
		Baseline:      statistics.Baseline(run.Players),
		MeanRounds:    stats.MeanRounds(),
		MeanTokens:    stats.MeanTokens(),
		TokensP25:     stats.TokenPercentile(0.25),
		TokensMedian:  stats.TokenPercentile(0.5),
		TokensP75:     stats.TokenPercentile(0.75),
		TokensP95:     stats.TokenPercentile(0.95),
		Substitutions: stats.Substitutions,
		ElapsedMS:     stats.Elapsed.Milliseconds(),
	}
	for seat, ss := range stats.Seats {
		if ss.Games == 0 {
			continue
		}
		s.Seats = append(s.Seats, SeatSummary{
			Seat:    seat,
			Games:   ss.Games,
			Wins:    ss.Wins,
			WinRate: stats.SeatWinRate(seat),
		})
	}
	return s
}

// Verdict compares the confidence interval to the baseline share
func (s Summary) Verdict() string {
	switch {
	case s.CILow > s.Baseline:
		return "stronger than baseline"
	case s.CIHigh < s.Baseline:
		return "weaker than baseline"
	default:
		return "not significantly different from baseline"
	}
}

// Render writes a styled, human readable summary to w
func Render(w io.Writer, s Summary) error {
	var b strings.Builder

	row := func(label, format string, args ...any) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("heuristic vs %s (%d players)", s.Opponent, s.Players)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Results"))
	b.WriteString("\n")
	row("Games", "%d", s.Games)
	row("Wins", "%d (%d shared)", s.Wins, s.SharedWins)
	row("Win rate", "%.1f%%", s.WinRate*100)
	row("Score", "%.4f ± %.4f", s.Score, s.StdError)
	row("95% CI", "[%.4f, %.4f]", s.CILow, s.CIHigh)
	row("Baseline", "%.4f", s.Baseline)

	verdict := s.Verdict()
	style := warnStyle
	switch {
	case s.CILow > s.Baseline:
		style = goodStyle
	case s.CIHigh < s.Baseline:
		style = badStyle
	}
	row("Verdict", "%s", style.Render(verdict))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Games"))
	b.WriteString("\n")
	row("Rounds/game", "%.2f", s.MeanRounds)
	row("Tokens/game", "%.2f", s.MeanTokens)
	row("Token spread", "median %.1f, P25=%.1f, P75=%.1f, P95=%.1f", s.TokensMedian, s.TokensP25, s.TokensP75, s.TokensP95)
	if s.Substitutions > 0 {
		row("Substitutions", "%s", badStyle.Render(fmt.Sprint(s.Substitutions)))
	} else {
		row("Substitutions", "0")
	}

	if len(s.Seats) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Seats"))
		b.WriteString("\n")
		for _, seat := range s.Seats {
			row(fmt.Sprintf("Seat %d", seat.Seat), "%d games, %.1f%% won", seat.Games, seat.WinRate*100)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes s to filename atomically
func WriteJSON(filename string, s Summary) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	})
}
