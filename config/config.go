// Package config loads experiment configuration from YAML: the game
// parameters, the two policies, and the experiment settings. All numeric
// game parameters are required; validation failures are fatal at startup so
// the episode hot loop never sees a malformed state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"twocars/game"
)

// CarConfig describes one vehicle's kinematics and starting pose.
type CarConfig struct {
	// Speed is the constant distance covered per timestep. Required, positive.
	Speed float64 `yaml:"speed"`
	// TurnRadius is the minimum turn radius; the turning rate is derived as
	// speed / turn_radius. Required, positive.
	TurnRadius float64 `yaml:"turn_radius"`

	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Heading in radians. 0 points along +x, increasing counterclockwise.
	Heading float64 `yaml:"heading"`
}

// GameConfig holds the shared game parameters.
type GameConfig struct {
	// TotalTurns is the game duration in main steps. Required, positive.
	TotalTurns int `yaml:"total_turns"`
	// CaptureRadius is the capture distance threshold. Required, positive.
	CaptureRadius float64 `yaml:"capture_radius"`

	Pursuer CarConfig `yaml:"pursuer"`
	Evader  CarConfig `yaml:"evader"`
}

// PolicyConfig selects and parameterizes one player's policy.
type PolicyConfig struct {
	// Name labels the policy in records and logs. Defaults to Kind.
	Name string `yaml:"name,omitempty"`
	// Kind is one of "tree", "fixed", "random", "rollout".
	Kind string `yaml:"kind"`

	// Expression is the policy tree as an s-expression (kind "tree").
	Expression string `yaml:"expression,omitempty"`
	// Action is the constant turn input (kind "fixed").
	Action float64 `yaml:"action,omitempty"`
	// Seed feeds the random source (kinds "random" and randomized "rollout").
	Seed uint64 `yaml:"seed,omitempty"`
	// Horizon and Playouts tune the rollout baseline (kind "rollout").
	Horizon  int `yaml:"horizon,omitempty"`
	Playouts int `yaml:"playouts,omitempty"`
}

// ExperimentConfig tunes the episode experiment runner.
type ExperimentConfig struct {
	// Name labels the output directory. Defaults to "twocars".
	Name string `yaml:"name,omitempty"`
	// Episodes per run. Defaults to 1.
	Episodes int `yaml:"episodes,omitempty"`
	// Goroutines running episodes concurrently. Defaults to 1; episodes are
	// independent, so any value is safe.
	Goroutines int `yaml:"goroutines,omitempty"`
}

// Config is the root of a configuration file.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Pursuer    PolicyConfig     `yaml:"pursuer_policy"`
	Evader     PolicyConfig     `yaml:"evader_policy"`
	Experiment ExperimentConfig `yaml:"experiment,omitempty"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pursuer.Name == "" {
		c.Pursuer.Name = c.Pursuer.Kind
	}
	if c.Evader.Name == "" {
		c.Evader.Name = c.Evader.Kind
	}
	if c.Experiment.Name == "" {
		c.Experiment.Name = "twocars"
	}
	if c.Experiment.Episodes <= 0 {
		c.Experiment.Episodes = 1
	}
	if c.Experiment.Goroutines <= 0 {
		c.Experiment.Goroutines = 1
	}
}

// Validate checks every required parameter. A zero turn radius would make
// the derived turning rate infinite, so it fails here rather than mid-game.
func (c *Config) Validate() error {
	if c.Game.TotalTurns <= 0 {
		return fmt.Errorf("game.total_turns must be positive, got %d", c.Game.TotalTurns)
	}
	if c.Game.CaptureRadius <= 0 {
		return fmt.Errorf("game.capture_radius must be positive, got %v", c.Game.CaptureRadius)
	}
	if err := c.Game.Pursuer.validate(); err != nil {
		return fmt.Errorf("game.pursuer: %w", err)
	}
	if err := c.Game.Evader.validate(); err != nil {
		return fmt.Errorf("game.evader: %w", err)
	}
	if err := c.Pursuer.validate(); err != nil {
		return fmt.Errorf("pursuer_policy: %w", err)
	}
	if err := c.Evader.validate(); err != nil {
		return fmt.Errorf("evader_policy: %w", err)
	}
	return nil
}

func (c CarConfig) validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	if c.TurnRadius <= 0 {
		return fmt.Errorf("turn_radius must be positive, got %v", c.TurnRadius)
	}
	return nil
}

func (p PolicyConfig) validate() error {
	switch p.Kind {
	case "tree":
		if p.Expression == "" {
			return fmt.Errorf("kind %q requires an expression", p.Kind)
		}
	case "fixed", "random", "rollout":
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	return nil
}

func (c CarConfig) carState() game.CarState {
	return game.CarState{
		Speed:       c.Speed,
		TurningRate: game.TurnRateFromTurnRadius(c.Speed, c.TurnRadius),
		X:           c.X,
		Y:           c.Y,
		Heading:     c.Heading,
	}
}

// InitialState builds the configured initial game state.
func (g GameConfig) InitialState() game.GameState {
	return game.NewState(g.TotalTurns, g.CaptureRadius, g.Pursuer.carState(), g.Evader.carState())
}
