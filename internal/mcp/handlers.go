package mcp

import (
	"context"
	"fmt"
	"math"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/credibility"
	"github.com/nvandessel/trustgrid/internal/grid"
	"github.com/nvandessel/trustgrid/internal/ratelimit"
	"github.com/nvandessel/trustgrid/internal/simulation"
	"github.com/nvandessel/trustgrid/internal/visualization"
)

// maxRenderSize is the largest grid whose text rendering is returned.
const maxRenderSize = 128

// registerTools registers all trustgrid tools with the MCP server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name: "trustgrid_simulate",
		Description: "Run a fresh trust propagation simulation to completion. Propagator cells start with " +
			"maximum info points and spread them to their neighbours each generation; the run stops at a " +
			"fixed point or after the step cap. Returns per-level counts and a text rendering of the final grid.",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "trustgrid_grade",
		Description: "Grade an info point intensity with a credibility evaluator. Returns the membership " +
			"degree of every trust level and the winning level (lowest rank wins ties).",
	}, s.handleGrade)
}

// handleSimulate implements the trustgrid_simulate tool.
func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (_ *sdk.CallToolResult, _ SimulateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("trustgrid_simulate", start, retErr, auditParams(map[string]interface{}{
			"size": args.Size, "steps": args.Steps, "propagators": len(args.Propagators),
			"force_normal": args.ForceNormal, "rule": args.Rule,
		}))
	}()

	scenario, err := scenarioFromInput(args)
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	cost := ratelimit.SimulationCost(scenario.Grid.Size, scenario.Steps)
	if err := s.toolLimiters.Check("trustgrid_simulate", cost); err != nil {
		return nil, SimulateOutput{}, err
	}

	runner := simulation.NewRunner(s.logger, nil, nil)
	result, err := runner.Run(ctx, scenario)
	if err != nil {
		return nil, SimulateOutput{}, fmt.Errorf("simulation failed: %w", err)
	}

	out := SimulateOutput{
		RunID:           result.RunID,
		Size:            result.Final.Size,
		Generations:     result.Steps(),
		FixedPoint:      result.FixedPoint,
		Counts:          result.Final.Counts(),
		TotalInfoPoints: result.Final.TotalInfoPoints(),
	}
	if result.Final.Size <= maxRenderSize {
		out.Render = visualization.RenderText(result.Final)
	}
	if args.IncludeHistory {
		out.History = result.Generations
	}
	return nil, out, nil
}

// scenarioFromInput applies defaults and bounds to a simulate request.
func scenarioFromInput(args SimulateInput) (simulation.Scenario, error) {
	cfg := grid.DefaultConfig()
	if args.Size != 0 {
		cfg.Size = args.Size
	}
	if cfg.Size < 1 || cfg.Size > constants.MaxGridSize {
		return simulation.Scenario{}, fmt.Errorf("size must be between 1 and %d, got %d", constants.MaxGridSize, cfg.Size)
	}
	cfg.ForceNormal = args.ForceNormal
	if args.Rule != "" {
		cfg.Rule = constants.RuleName(args.Rule)
	}

	steps := constants.DefaultSteps
	if args.Steps != 0 {
		steps = args.Steps
	}

	propagators := args.Propagators
	if len(propagators) == 0 {
		propagators = []grid.Coord{simulation.Centre(cfg.Size)}
	}

	scenario := simulation.Scenario{
		Name:             "mcp",
		Grid:             cfg,
		Propagators:      propagators,
		Steps:            steps,
		StopAtFixedPoint: true,
		Seed:             args.Seed,
	}
	if err := scenario.Validate(); err != nil {
		return simulation.Scenario{}, err
	}
	return scenario, nil
}

// handleGrade implements the trustgrid_grade tool.
func (s *Server) handleGrade(ctx context.Context, req *sdk.CallToolRequest, args GradeInput) (_ *sdk.CallToolResult, _ GradeOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("trustgrid_grade", start, retErr, auditParams(map[string]interface{}{
			"intensity": args.Intensity, "reversed": args.Reversed,
		}))
	}()

	if err := s.toolLimiters.Check("trustgrid_grade", 1); err != nil {
		return nil, GradeOutput{}, err
	}

	cfg := credibility.DefaultEvaluatorConfig()
	if math.IsNaN(args.Intensity) || args.Intensity < float64(cfg.MinInfoPoints) || args.Intensity > float64(cfg.MaxInfoPoints) {
		return nil, GradeOutput{}, fmt.Errorf("intensity must be between %d and %d, got %v",
			cfg.MinInfoPoints, cfg.MaxInfoPoints, args.Intensity)
	}

	assignment := credibility.Normal
	if args.Reversed {
		assignment = credibility.Reversed
	}
	e, err := credibility.NewEvaluatorWithAssignment(cfg, assignment)
	if err != nil {
		return nil, GradeOutput{}, fmt.Errorf("building evaluator: %w", err)
	}

	level := e.Grade(args.Intensity)
	degrees := e.Degrees(args.Intensity)
	out := GradeOutput{
		Assignment: assignment.String(),
		Level:      level.Name,
		Rank:       level.Rank,
		Color:      level.Color,
		Degrees:    make([]DegreeOutput, len(degrees)),
	}
	for i, d := range degrees {
		out.Degrees[i] = DegreeOutput{Level: d.Level.Name, Rank: d.Level.Rank, Degree: finite(d.Degree)}
	}
	return nil, out, nil
}

// finite maps NaN to 0 so degree tables always encode as JSON.
func finite(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
