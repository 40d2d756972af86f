// Package config provides unified configuration loading for trustgrid.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/grid"
	"github.com/nvandessel/trustgrid/internal/pathutil"
)

// TrustgridConfig contains all trustgrid configuration settings.
type TrustgridConfig struct {
	// Grid contains the shape, bounds and rule of the simulated grid.
	Grid grid.Config `json:"grid" yaml:"grid"`

	// Simulation contains settings for driving a grid over many generations.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and generation logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures a simulation run.
type SimulationConfig struct {
	// Steps is the maximum number of generations to advance.
	Steps int `json:"steps" yaml:"steps"`

	// Interval is the pause between generations. Zero runs flat out.
	Interval time.Duration `json:"interval" yaml:"interval"`

	// StopAtFixedPoint ends the run once a generation changes no cell.
	StopAtFixedPoint bool `json:"stop_at_fixed_point" yaml:"stop_at_fixed_point"`

	// Seed seeds the evaluator assignment draw. Zero picks a time-based seed.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Propagators lists the cells seeded before the first generation.
	// Empty means the centre cell.
	Propagators []grid.Coord `json:"propagators,omitempty" yaml:"propagators,omitempty"`
}

// LoggingConfig configures trustgrid's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the per-generation trace in Dir.
	Level string `json:"level" yaml:"level"`

	// Dir is where generations.jsonl is written at debug level.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Default returns a TrustgridConfig with sensible defaults.
func Default() *TrustgridConfig {
	return &TrustgridConfig{
		Grid: grid.DefaultConfig(),
		Simulation: SimulationConfig{
			Steps:            constants.DefaultSteps,
			Interval:         0,
			StopAtFixedPoint: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.trustgrid/config.yaml -> environment variables
func Load() (*TrustgridConfig, error) {
	config := Default()

	dir, err := pathutil.TrustgridDir()
	if err == nil {
		configPath := filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadPath loads configuration from path, or from the default locations when
// path is empty. Environment variables override file values in both cases.
func LoadPath(path string) (*TrustgridConfig, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (*TrustgridConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", pathutil.RedactPath(path), err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", pathutil.RedactPath(path), err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *TrustgridConfig) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.Grid.Size > constants.MaxGridSize {
		return fmt.Errorf("grid size must be at most %d, got %d", constants.MaxGridSize, c.Grid.Size)
	}

	if c.Simulation.Steps < 0 || c.Simulation.Steps > constants.MaxSteps {
		return fmt.Errorf("steps must be between 0 and %d, got %d", constants.MaxSteps, c.Simulation.Steps)
	}
	if c.Simulation.Interval < 0 {
		return fmt.Errorf("interval must be non-negative, got %v", c.Simulation.Interval)
	}
	for _, p := range c.Simulation.Propagators {
		if p.Row < 0 || p.Row >= c.Grid.Size || p.Col < 0 || p.Col >= c.Grid.Size {
			return fmt.Errorf("propagator %s outside %dx%d grid", p, c.Grid.Size, c.Grid.Size)
		}
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *TrustgridConfig) {
	if v := os.Getenv("TRUSTGRID_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Grid.Size = n
		}
	}

	if v := os.Getenv("TRUSTGRID_REVERSAL_PROBABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Grid.ReversalProbability = f
		}
	}

	if v := os.Getenv("TRUSTGRID_FORCE_NORMAL"); v != "" {
		config.Grid.ForceNormal = v == "true" || v == "1"
	}

	if v := os.Getenv("TRUSTGRID_RULE"); v != "" {
		config.Grid.Rule = constants.RuleName(v)
	}

	if v := os.Getenv("TRUSTGRID_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Grid.Workers = n
		}
	}

	if v := os.Getenv("TRUSTGRID_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("TRUSTGRID_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Steps = n
		}
	}

	if v := os.Getenv("TRUSTGRID_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
