package statistics

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// MaxSeats is the largest table a simulation can run
const MaxSeats = 4

// GameResult represents the outcome of a single match for the bot under test
type GameResult struct {
	Seed          int64         // RNG seed for this game (for replay)
	Seat          int           // Seat the bot played from (0-based)
	Players       int           // Table size
	Won           bool          // The bot finished with the most tokens
	Winners       int           // Number of seats sharing the win
	Tokens        int           // Tokens the bot collected
	Rounds        int           // Rounds played in the match
	Substitutions int           // Bot actions rejected and replaced
	Elapsed       time.Duration // Wall time for the match
}

// Score is the bot's share of the win: 1 for an outright win, split evenly
// between tied winners, 0 for a loss.
func (r GameResult) Score() float64 {
	if !r.Won || r.Winners <= 0 {
		return 0
	}
	return 1 / float64(r.Winners)
}

// SeatStats tracks results from one seat
type SeatStats struct {
	Games    int
	Wins     int
	SumScore float64
}

// Statistics aggregates match results for the bot under test
type Statistics struct {
	Games      int
	Wins       int
	SharedWins int
	SumScore   float64
	SumScore2  float64 // Sum of squares for variance calculation
	Tokens     []int   // Tokens per game, for median/percentile

	Rounds        int
	Substitutions int
	Elapsed       time.Duration
	Seats         [MaxSeats]SeatStats
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	score := result.Score()
	s.Games++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Tokens = append(s.Tokens, result.Tokens)
	s.Rounds += result.Rounds
	s.Substitutions += result.Substitutions
	s.Elapsed += result.Elapsed

	if result.Won {
		s.Wins++
		if result.Winners > 1 {
			s.SharedWins++
		}
	}

	if result.Seat >= 0 && result.Seat < MaxSeats {
		seat := &s.Seats[result.Seat]
		seat.Games++
		seat.SumScore += score
		if result.Won {
			seat.Wins++
		}
	}
}

// Merge folds other into s, e.g. when workers keep their own tallies
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Wins += other.Wins
	s.SharedWins += other.SharedWins
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Tokens = append(s.Tokens, other.Tokens...)
	s.Rounds += other.Rounds
	s.Substitutions += other.Substitutions
	s.Elapsed += other.Elapsed
	for i := range s.Seats {
		s.Seats[i].Games += other.Seats[i].Games
		s.Seats[i].Wins += other.Seats[i].Wins
		s.Seats[i].SumScore += other.Seats[i].SumScore
	}
}

// WinRate returns the fraction of games won, shared wins included
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Mean returns the mean score per game (shared wins count fractionally)
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of the per-game score
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return math.Max(0, (s.SumScore2-float64(s.Games)*mean*mean)/float64(s.Games-1))
}

// StdDev returns the sample standard deviation of the per-game score
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Baseline is the score a seat expects at a table of players equal bots
func Baseline(players int) float64 {
	if players <= 0 {
		return 0
	}
	return 1 / float64(players)
}

// MeanRounds returns the average number of rounds per game
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// MeanTokens returns the average tokens collected per game
func (s *Statistics) MeanTokens() float64 {
	if len(s.Tokens) == 0 {
		return 0
	}
	sum := 0
	for _, t := range s.Tokens {
		sum += t
	}
	return float64(sum) / float64(len(s.Tokens))
}

// TokenPercentile returns the tokens at the given percentile (0.0 to 1.0)
func (s *Statistics) TokenPercentile(p float64) float64 {
	if len(s.Tokens) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Tokens)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// SeatWinRate returns the win rate from one seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= MaxSeats || s.Seats[seat].Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Seats[seat].Games)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Tokens) != s.Games {
		return fmt.Errorf("tokens array length (%d) does not match games count (%d)", len(s.Tokens), s.Games)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}
	if s.SharedWins > s.Wins {
		return fmt.Errorf("shared wins (%d) exceed wins (%d)", s.SharedWins, s.Wins)
	}
	if s.SumScore > float64(s.Wins)+1e-9 {
		return fmt.Errorf("score total %.3f exceeds wins (%d)", s.SumScore, s.Wins)
	}

	seatGames, seatWins := 0, 0
	for _, seat := range s.Seats {
		seatGames += seat.Games
		seatWins += seat.Wins
	}
	if seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match games (%d)", seatGames, s.Games)
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match wins (%d)", seatWins, s.Wins)
	}
	return nil
}
