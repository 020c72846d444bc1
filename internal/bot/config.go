package bot

import "fmt"

// PriestTargeting chooses which opponent a fallback Priest looks at
type PriestTargeting string

const (
	// PriestLeastCertain looks at the opponent we know least about
	PriestLeastCertain PriestTargeting = "least-certain"
	// PriestMostCertain looks at the opponent we are most sure about
	PriestMostCertain PriestTargeting = "most-certain"
)

// Config tunes the heuristic bot
type Config struct {
	MinConfidence      Thresholds
	PriestTargeting    PriestTargeting
	MaxFallbackSamples int
}

// DefaultConfig acts on any nonzero belief
func DefaultConfig() Config {
	return Config{
		PriestTargeting:    PriestLeastCertain,
		MaxFallbackSamples: 10000,
	}
}

// Validate checks the configuration for values the bot cannot use
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"guard": c.MinConfidence.Guard,
		"baron": c.MinConfidence.Baron,
		"king":  c.MinConfidence.King,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("min confidence %s must be within [0, 1], got %v", name, v)
		}
	}
	switch c.PriestTargeting {
	case PriestLeastCertain, PriestMostCertain:
	default:
		return fmt.Errorf("unknown priest targeting %q", c.PriestTargeting)
	}
	if c.MaxFallbackSamples <= 0 {
		return fmt.Errorf("max fallback samples must be positive, got %d", c.MaxFallbackSamples)
	}
	return nil
}
