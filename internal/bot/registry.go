package bot

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/loveletterbots/internal/game"
	"github.com/lox/loveletterbots/internal/randutil"
)

const (
	KindHeuristic = "heuristic"
	KindRandom    = "random"
)

// Kinds lists the agents New can build
func Kinds() []string {
	return []string{KindHeuristic, KindRandom}
}

// New builds an agent by kind, seeded for reproducible play
func New(kind string, seed int64, cfg Config, logger *log.Logger) (game.Agent, error) {
	rng := randutil.New(seed)
	switch kind {
	case KindHeuristic:
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("heuristic bot: %w", err)
		}
		return NewBot(cfg, rng, logger), nil
	case KindRandom:
		return NewRandBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot kind %q (want one of %v)", kind, Kinds())
}

// ValidKind reports whether New understands kind
func ValidKind(kind string) bool {
	return slices.Contains(Kinds(), kind)
}
