package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/simulation"
	"github.com/nvandessel/trustgrid/internal/visualization"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animate a simulation in the terminal",
		Long: `Animate a trust propagation simulation in the terminal.

A generation is drawn every --interval (default 12ms) until the step cap,
q or ctrl+c. The animation also ends at a fixed point unless --no-stop is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyScenarioFlags(cmd, cfg); err != nil {
				return err
			}
			scenario, err := scenarioFromConfig("watch", cfg)
			if err != nil {
				return err
			}

			g, err := simulation.Prepare(scenario)
			if err != nil {
				return err
			}

			format := visualization.FormatANSI
			if plain {
				format = visualization.FormatText
			}
			model := visualization.NewWatchModel(g, visualization.WatchOptions{
				Interval:         scenario.Interval,
				MaxSteps:         scenario.Steps,
				StopAtFixedPoint: scenario.StopAtFixedPoint,
				Format:           format,
				Title:            fmt.Sprintf("trustgrid %dx%d", scenario.Grid.Size, scenario.Grid.Size),
			})

			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}

			m := final.(visualization.WatchModel)
			if err := m.Err(); err != nil {
				return err
			}
			snap := m.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped at generation %d (fixed point: %v), counts %s\n",
				snap.Generation, m.FixedPoint(), formatCounts(snap.Counts()))
			return nil
		},
	}

	addScenarioFlags(cmd)
	cmd.Flags().Bool("plain", false, "Draw with letters instead of colours")

	return cmd
}
