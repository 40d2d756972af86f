package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/config"
	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/grid"
	"github.com/nvandessel/trustgrid/internal/simulation"
)

// addScenarioFlags registers the flags shared by run and watch. Flags left
// unset keep the configured value.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int("size", 0, "Side length of the square grid")
	cmd.Flags().Int("steps", 0, "Maximum generations to advance")
	cmd.Flags().StringArray("propagator", nil, "Propagator cell as row,col (repeatable, default centre)")
	cmd.Flags().String("rule", "", "Propagation rule: rank or score")
	cmd.Flags().Bool("force-normal", false, "Give every cell the normal evaluator assignment")
	cmd.Flags().Float64("reversal-probability", 0, "Chance of a reversed evaluator per cell")
	cmd.Flags().Uint64("seed", 0, "Seed for the evaluator assignment draw (0 = random)")
	cmd.Flags().Int("workers", 0, "Goroutines sweeping each generation")
	cmd.Flags().Duration("interval", 0, "Pause between generations")
	cmd.Flags().Bool("no-stop", false, "Keep advancing after a fixed point")
}

// applyScenarioFlags overrides cfg with every scenario flag the user set.
func applyScenarioFlags(cmd *cobra.Command, cfg *config.TrustgridConfig) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Grid.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("steps") {
		cfg.Simulation.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("rule") {
		rule, _ := flags.GetString("rule")
		cfg.Grid.Rule = constants.RuleName(rule)
	}
	if flags.Changed("force-normal") {
		cfg.Grid.ForceNormal, _ = flags.GetBool("force-normal")
	}
	if flags.Changed("reversal-probability") {
		cfg.Grid.ReversalProbability, _ = flags.GetFloat64("reversal-probability")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.Grid.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("interval") {
		cfg.Simulation.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("no-stop") {
		noStop, _ := flags.GetBool("no-stop")
		cfg.Simulation.StopAtFixedPoint = !noStop
	}
	if flags.Changed("propagator") {
		raw, _ := flags.GetStringArray("propagator")
		coords := make([]grid.Coord, 0, len(raw))
		for _, s := range raw {
			c, err := grid.ParseCoord(s)
			if err != nil {
				return fmt.Errorf("invalid --propagator: %w", err)
			}
			coords = append(coords, c)
		}
		cfg.Simulation.Propagators = coords
	}
	return nil
}

// scenarioFromConfig builds the scenario described by cfg, seeding the
// centre cell when no propagator is configured.
func scenarioFromConfig(name string, cfg *config.TrustgridConfig) (simulation.Scenario, error) {
	propagators := cfg.Simulation.Propagators
	if len(propagators) == 0 {
		propagators = []grid.Coord{simulation.Centre(cfg.Grid.Size)}
	}
	cfg.Simulation.Propagators = propagators

	if err := cfg.Validate(); err != nil {
		return simulation.Scenario{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return simulation.Scenario{
		Name:             name,
		Grid:             cfg.Grid,
		Propagators:      propagators,
		Steps:            cfg.Simulation.Steps,
		StopAtFixedPoint: cfg.Simulation.StopAtFixedPoint,
		Interval:         cfg.Simulation.Interval,
		Seed:             cfg.Simulation.Seed,
	}, nil
}
