package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/loveletterbots/internal/bot"
	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/matchid"
	"github.com/lox/loveletterbots/internal/randutil"
	"github.com/lox/loveletterbots/internal/statistics"
)

// ErrGameTimeout is the cancellation cause when a game exceeds Config.Timeout
var ErrGameTimeout = errors.New("game timed out")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Players  int
	Opponent string // bot kind seated opposite the heuristic bot
	Seed     int64
	Workers  int // 0 means GOMAXPROCS
	Timeout  time.Duration
	Agent    bot.Config
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Players < game.MinPlayers || c.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", game.MinPlayers, game.MaxPlayers, c.Players)
	}
	if !bot.ValidKind(c.Opponent) {
		return fmt.Errorf("unknown opponent %q (want one of %v)", c.Opponent, bot.Kinds())
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent config: %w", err)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	c.Workers = min(c.Workers, c.Games)
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return nil
}

// Simulator plays many independent matches of the heuristic bot against a
// table of opponents and aggregates the results
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}, nil
}

// Run executes the simulation and returns results. Worker w plays games
// w, w+Workers, w+2*Workers... into its own tally, merged at the end.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	workers := s.config.Workers
	tallies := make([]*statistics.Statistics, workers)

	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"players", s.config.Players,
		"opponent", s.config.Opponent,
		"workers", workers,
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		tally := &statistics.Statistics{}
		tallies[w] = tally

		g.Go(func() error {
			for n := w; n < s.config.Games; n += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := s.PlayGame(ctx, n)
				if err != nil {
					return fmt.Errorf("game %d: %w", n+1, err)
				}
				tally.Add(result)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, tally := range tallies {
		stats.Merge(tally)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// GameSeed returns the seed used for game n
func (s *Simulator) GameSeed(n int) int64 {
	return s.config.Seed + int64(n)
}

// Seat returns the heuristic bot's seat for game n; it rotates to remove
// first-player bias
func (s *Simulator) Seat(n int) int {
	return n % s.config.Players
}

// PlayGame plays game n to completion, bounded by the configured timeout
func (s *Simulator) PlayGame(ctx context.Context, n int) (statistics.GameResult, error) {
	seed := s.GameSeed(n)
	seat := s.Seat(n)

	agents := make([]game.Agent, s.config.Players)
	for i := range agents {
		kind := s.config.Opponent
		if i == seat {
			kind = bot.KindHeuristic
		}
		agent, err := bot.New(kind, randutil.Derive(seed, int64(i)), s.config.Agent, s.config.Logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		agents[i] = agent
	}

	id, err := matchid.NewFromReader(randutil.NewReader(seed))
	if err != nil {
		return statistics.GameResult{}, fmt.Errorf("match id: %w", err)
	}

	match, err := game.NewMatch(id, agents, randutil.New(seed), s.config.Logger)
	if err != nil {
		return statistics.GameResult{}, err
	}
	match.SetClock(s.config.Clock)

	if s.config.Timeout > 0 {
		var cancel context.CancelCauseFunc
		ctx, cancel = context.WithCancelCause(ctx)
		defer cancel(nil)
		timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
			cancel(ErrGameTimeout)
		}, "simulator", "game")
		defer timer.Stop()
	}

	start := s.config.Clock.Now()
	result, err := match.Play(ctx)
	if err != nil {
		if cause := context.Cause(ctx); cause != nil {
			err = cause
		}
		return statistics.GameResult{}, fmt.Errorf("%w (seed: %d, seat: %d)", err, seed, seat)
	}

	s.logger.Debug("Game complete",
		"game", n+1,
		"match", id,
		"seat", seat,
		"rounds", result.Rounds,
		"tokens", result.Tokens,
		"winners", result.Winners)

	return statistics.GameResult{
		Seed:          seed,
		Seat:          seat,
		Players:       s.config.Players,
		Won:           slices.Contains(result.Winners, seat),
		Winners:       len(result.Winners),
		Tokens:        result.Tokens[seat],
		Rounds:        result.Rounds,
		Substitutions: result.Substitutions[seat],
		Elapsed:       s.config.Clock.Now().Sub(start),
	}, nil
}
