package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/trustgrid/internal/config"
	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/pathutil"
)

// configKeys lists every dot-notation key in display order.
var configKeys = []string{
	"grid.size",
	"grid.min_info_points",
	"grid.max_info_points",
	"grid.reversal_probability",
	"grid.force_normal",
	"grid.rule",
	"grid.score_threshold",
	"grid.workers",
	"simulation.steps",
	"simulation.interval",
	"simulation.stop_at_fixed_point",
	"simulation.seed",
	"logging.level",
	"logging.dir",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage trustgrid configuration",
		Long: `View and modify trustgrid configuration settings.

Configuration is stored in ~/.trustgrid/config.yaml unless --config names
another file. Environment variables (TRUSTGRID_SIZE, TRUSTGRID_RULE, ...)
override file values.

Examples:
  trustgrid config list                     # Show all settings
  trustgrid config get grid.size            # Get a specific setting
  trustgrid config set grid.rule score      # Set a setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "%-32s %v\n", key+":", value)
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(out, "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key, value := args[0], args[1]

			path, err := configPath(cmd)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				if cfg, err = config.LoadFromFile(path); err != nil {
					return err
				}
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := saveConfig(cfg, path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			}
			fmt.Fprintf(out, "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// configPath returns the file written by config set: --config if given,
// otherwise ~/.trustgrid/config.yaml.
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	base, err := pathutil.TrustgridDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.TrustgridConfig, key string) (interface{}, bool) {
	switch key {
	case "grid.size":
		return cfg.Grid.Size, true
	case "grid.min_info_points":
		return cfg.Grid.MinInfoPoints, true
	case "grid.max_info_points":
		return cfg.Grid.MaxInfoPoints, true
	case "grid.reversal_probability":
		return cfg.Grid.ReversalProbability, true
	case "grid.force_normal":
		return cfg.Grid.ForceNormal, true
	case "grid.rule":
		return string(cfg.Grid.Rule), true
	case "grid.score_threshold":
		return cfg.Grid.ScoreThreshold, true
	case "grid.workers":
		return cfg.Grid.Workers, true
	case "simulation.steps":
		return cfg.Simulation.Steps, true
	case "simulation.interval":
		return cfg.Simulation.Interval.String(), true
	case "simulation.stop_at_fixed_point":
		return cfg.Simulation.StopAtFixedPoint, true
	case "simulation.seed":
		return cfg.Simulation.Seed, true
	case "logging.level":
		return cfg.Logging.Level, true
	case "logging.dir":
		return cfg.Logging.Dir, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.TrustgridConfig, key, value string) error {
	var err error
	switch key {
	case "grid.size":
		cfg.Grid.Size, err = strconv.Atoi(value)
	case "grid.min_info_points":
		cfg.Grid.MinInfoPoints, err = strconv.Atoi(value)
	case "grid.max_info_points":
		cfg.Grid.MaxInfoPoints, err = strconv.Atoi(value)
	case "grid.reversal_probability":
		cfg.Grid.ReversalProbability, err = strconv.ParseFloat(value, 64)
	case "grid.force_normal":
		cfg.Grid.ForceNormal, err = strconv.ParseBool(value)
	case "grid.rule":
		rule := constants.RuleName(value)
		if !rule.Valid() {
			return fmt.Errorf("invalid rule: %s (valid: rank, score)", value)
		}
		cfg.Grid.Rule = rule
	case "grid.score_threshold":
		cfg.Grid.ScoreThreshold, err = strconv.ParseFloat(value, 64)
	case "grid.workers":
		cfg.Grid.Workers, err = strconv.Atoi(value)
	case "simulation.steps":
		cfg.Simulation.Steps, err = strconv.Atoi(value)
	case "simulation.interval":
		var d time.Duration
		d, err = time.ParseDuration(value)
		cfg.Simulation.Interval = d
	case "simulation.stop_at_fixed_point":
		cfg.Simulation.StopAtFixedPoint, err = strconv.ParseBool(value)
	case "simulation.seed":
		cfg.Simulation.Seed, err = strconv.ParseUint(value, 10, 64)
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.dir":
		cfg.Logging.Dir = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %s", key, value)
	}
	return nil
}

// saveConfig writes the configuration to path.
func saveConfig(cfg *config.TrustgridConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
