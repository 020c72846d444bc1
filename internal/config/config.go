// Package config loads loveletter settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/loveletterbots/internal/bot"
	"github.com/lox/loveletterbots/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Agent      *AgentSettings      `hcl:"agent,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Logging    *LoggingSettings    `hcl:"logging,block"`
}

// AgentSettings tunes the heuristic bot
type AgentSettings struct {
	GuardConfidence    float64 `hcl:"guard_confidence,optional"`
	BaronConfidence    float64 `hcl:"baron_confidence,optional"`
	KingConfidence     float64 `hcl:"king_confidence,optional"`
	PriestTargeting    string  `hcl:"priest_targeting,optional"`
	MaxFallbackSamples int     `hcl:"max_fallback_samples,optional"`
}

// SimulationSettings controls the simulate command
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	Players  int    `hcl:"players,optional"`
	Opponent string `hcl:"opponent,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	Timeout  string `hcl:"timeout,optional"`
}

// LoggingSettings contains log output settings
type LoggingSettings struct {
	Level string `hcl:"level,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	agent := bot.DefaultConfig()
	return &Config{
		Agent: &AgentSettings{
			GuardConfidence:    agent.MinConfidence.Guard,
			BaronConfidence:    agent.MinConfidence.Baron,
			KingConfidence:     agent.MinConfidence.King,
			PriestTargeting:    string(agent.PriestTargeting),
			MaxFallbackSamples: agent.MaxFallbackSamples,
		},
		Simulation: &SimulationSettings{
			Games:    1000,
			Players:  4,
			Opponent: bot.KindRandom,
			Workers:  0,
			Timeout:  "10s",
		},
		Logging: &LoggingSettings{
			Level: "warn",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills blocks and fields the file left out. Confidence
// thresholds default to zero so they need no back-filling.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Agent == nil {
		c.Agent = defaults.Agent
	}
	if c.Agent.PriestTargeting == "" {
		c.Agent.PriestTargeting = defaults.Agent.PriestTargeting
	}
	if c.Agent.MaxFallbackSamples == 0 {
		c.Agent.MaxFallbackSamples = defaults.Agent.MaxFallbackSamples
	}

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = defaults.Simulation.Games
	}
	if c.Simulation.Players == 0 {
		c.Simulation.Players = defaults.Simulation.Players
	}
	if c.Simulation.Opponent == "" {
		c.Simulation.Opponent = defaults.Simulation.Opponent
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = defaults.Simulation.Timeout
	}

	if c.Logging == nil {
		c.Logging = defaults.Logging
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.BotConfig().Validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation games must be positive")
	}
	if c.Simulation.Players < game.MinPlayers || c.Simulation.Players > game.MaxPlayers {
		return fmt.Errorf("simulation players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	if !bot.ValidKind(c.Simulation.Opponent) {
		return fmt.Errorf("invalid opponent: %s", c.Simulation.Opponent)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation workers cannot be negative")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// BotConfig converts the agent block into heuristic bot settings
func (c *Config) BotConfig() bot.Config {
	return bot.Config{
		MinConfidence: bot.Thresholds{
			Guard: c.Agent.GuardConfidence,
			Baron: c.Agent.BaronConfidence,
			King:  c.Agent.KingConfidence,
		},
		PriestTargeting:    bot.PriestTargeting(c.Agent.PriestTargeting),
		MaxFallbackSamples: c.Agent.MaxFallbackSamples,
	}
}

// Timeout returns the per-game simulation timeout
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid simulation timeout %q: %w", c.Simulation.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation timeout cannot be negative")
	}
	return d, nil
}

// LogLevel returns the configured log level
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
