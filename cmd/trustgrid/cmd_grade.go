package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/credibility"
)

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade <intensity>",
		Short: "Grade an info point intensity into a trust level",
		Long: `Show the membership degree of every trust level for an intensity and the
level that wins (lowest rank on ties).

Examples:
  trustgrid grade 4
  trustgrid grade 9 --reversed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			reversed, _ := cmd.Flags().GetBool("reversed")

			intensity, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid intensity %q: %w", args[0], err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			evalCfg := credibility.EvaluatorConfig{
				MinInfoPoints: cfg.Grid.MinInfoPoints,
				MaxInfoPoints: cfg.Grid.MaxInfoPoints,
			}
			if intensity < float64(evalCfg.MinInfoPoints) || intensity > float64(evalCfg.MaxInfoPoints) {
				return fmt.Errorf("intensity must be between %d and %d, got %v",
					evalCfg.MinInfoPoints, evalCfg.MaxInfoPoints, intensity)
			}

			assignment := credibility.Normal
			if reversed {
				assignment = credibility.Reversed
			}
			e, err := credibility.NewEvaluatorWithAssignment(evalCfg, assignment)
			if err != nil {
				return err
			}

			level := e.Grade(intensity)
			degrees := e.Degrees(intensity)

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"intensity":  intensity,
					"assignment": assignment.String(),
					"level":      level,
					"degrees":    degrees,
				})
			}

			fmt.Fprintf(out, "Intensity %v (%s assignment): %s\n\n", intensity, assignment, level.Name)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LEVEL\tRANK\tDEGREE")
			for _, d := range degrees {
				marker := ""
				if d.Level == level {
					marker = "  <-"
				}
				fmt.Fprintf(w, "%s\t%d\t%.4f%s\n", d.Level.Name, d.Level.Rank, d.Degree, marker)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Bool("reversed", false, "Use the reversed assignment (LOW and HIGH swapped)")

	return cmd
}
