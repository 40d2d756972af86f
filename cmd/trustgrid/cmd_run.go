package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/simulation"
	"github.com/nvandessel/trustgrid/internal/visualization"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the final generation",
		Long: `Run a trust propagation simulation to completion.

The grid advances until a generation changes no cell or the step cap is
reached. The final generation is printed in the chosen format.

Examples:
  trustgrid run                                  # 21x21 grid, centre propagator
  trustgrid run --size 41 --propagator 0,0 --propagator 40,40
  trustgrid run --format html --output grid.html --open
  trustgrid run --json --steps 20 --history`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			formatName, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			open, _ := cmd.Flags().GetBool("open")
			history, _ := cmd.Flags().GetBool("history")

			format, err := visualization.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyScenarioFlags(cmd, cfg); err != nil {
				return err
			}
			scenario, err := scenarioFromConfig("run", cfg)
			if err != nil {
				return err
			}

			logger, trace := newLoggers(cfg)
			defer trace.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, err := simulation.NewRunner(logger, trace, nil).Run(ctx, scenario)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				summary := map[string]interface{}{
					"run_id":            result.RunID,
					"size":              result.Final.Size,
					"generations":       result.Steps(),
					"fixed_point":       result.FixedPoint,
					"counts":            result.Final.Counts(),
					"total_info_points": result.Final.TotalInfoPoints(),
				}
				if history {
					summary["history"] = result.Generations
				}
				return json.NewEncoder(out).Encode(summary)
			}

			rendered, err := visualization.Render(result.Final, format)
			if err != nil {
				return err
			}

			if output != "" || format == visualization.FormatHTML {
				if output == "" {
					output = "trustgrid.html"
				}
				if err := os.WriteFile(output, rendered, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Fprintf(out, "Wrote generation %d to %s\n", result.Final.Generation, output)
				if open && format == visualization.FormatHTML {
					if err := visualization.OpenInBrowser(output); err != nil {
						return fmt.Errorf("failed to open browser: %w", err)
					}
				}
			} else {
				out.Write(rendered)
				if format != visualization.FormatJSON {
					fmt.Fprintln(out, visualization.Legend())
				}
			}

			status := "step cap reached"
			if result.FixedPoint {
				status = "fixed point"
			}
			fmt.Fprintf(out, "%d generations (%s), counts %v\n", result.Steps(), status, formatCounts(result.Final.Counts()))
			return nil
		},
	}

	addScenarioFlags(cmd)
	cmd.Flags().String("format", "text", "Output format: text, ansi, json, html")
	cmd.Flags().StringP("output", "o", "", "Write the rendering to a file instead of stdout")
	cmd.Flags().Bool("open", false, "Open HTML output in the default browser")
	cmd.Flags().Bool("history", false, "Include per-generation statistics in JSON output")

	return cmd
}

// formatCounts renders per-level counts in rank order.
func formatCounts(counts map[string]int) string {
	return fmt.Sprintf("null=%d low=%d medium=%d high=%d",
		counts["null"], counts["low"], counts["medium"], counts["high"])
}
