package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/trustgrid/internal/grid"
	"github.com/nvandessel/trustgrid/internal/logging"
)

// Observer receives every generation produced by a run, starting with the
// seeded generation 0.
type Observer interface {
	OnGeneration(snap grid.Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap grid.Snapshot)

// OnGeneration calls f(snap).
func (f ObserverFunc) OnGeneration(snap grid.Snapshot) { f(snap) }

// Runner executes scenarios. The zero value is not usable; use NewRunner.
type Runner struct {
	logger   *slog.Logger
	trace    *logging.TraceLogger
	observer Observer
}

// NewRunner creates a runner. trace and observer may be nil.
func NewRunner(logger *slog.Logger, trace *logging.TraceLogger, observer Observer) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{logger: logger, trace: trace, observer: observer}
}

// Prepare validates the scenario and returns its seeded grid.
func Prepare(scenario Scenario) (*grid.Grid, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if scenario.Seed != 0 {
		rng = rand.New(rand.NewPCG(scenario.Seed, scenario.Seed))
	}

	g, err := grid.New(scenario.Grid, rng)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	for _, p := range scenario.Propagators {
		if err := g.PlacePropagator(p.Row, p.Col); err != nil {
			return nil, fmt.Errorf("placing propagator %s: %w", p, err)
		}
	}
	return g, nil
}

// Run executes the scenario. ctx is checked between generations only; on
// cancellation the partial result is returned along with ctx's error.
func (r *Runner) Run(ctx context.Context, scenario Scenario) (Result, error) {
	g, err := Prepare(scenario)
	if err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	log := r.logger.With("run_id", runID, "scenario", scenario.Name)
	log.Info("simulation started",
		"size", scenario.Grid.Size,
		"rule", scenario.Grid.Rule,
		"propagators", len(scenario.Propagators),
		"steps", scenario.Steps)

	prev := g.Snapshot()
	result := Result{
		RunID:       runID,
		Scenario:    scenario.Name,
		Initial:     prev,
		Final:       prev,
		Generations: make([]GenerationStats, 0, scenario.Steps),
	}
	r.notify(prev)

	var timer *time.Timer
	if scenario.Interval > 0 {
		timer = time.NewTimer(scenario.Interval)
		defer timer.Stop()
	}

	for step := 0; step < scenario.Steps; step++ {
		if err := ctx.Err(); err != nil {
			log.Info("simulation cancelled", "generation", g.Generation())
			return result, err
		}
		if timer != nil {
			if step > 0 {
				timer.Reset(scenario.Interval)
			}
			select {
			case <-ctx.Done():
				log.Info("simulation cancelled", "generation", g.Generation())
				return result, ctx.Err()
			case <-timer.C:
			}
		}

		if err := g.Advance(); err != nil {
			return result, fmt.Errorf("advancing generation %d: %w", g.Generation()+1, err)
		}

		snap := g.Snapshot()
		stats := GenerationStats{
			Generation:      snap.Generation,
			Counts:          snap.Counts(),
			Changed:         snap.Changed(prev),
			TotalInfoPoints: snap.TotalInfoPoints(),
		}
		result.Generations = append(result.Generations, stats)
		result.Final = snap

		log.Log(ctx, logging.LevelTrace, "generation advanced",
			"generation", stats.Generation,
			"changed", stats.Changed,
			"total_info_points", stats.TotalInfoPoints)
		r.trace.Log(logging.GenerationRecord{
			RunID:           runID,
			Generation:      stats.Generation,
			Changed:         stats.Changed,
			TotalInfoPoints: stats.TotalInfoPoints,
			Counts:          stats.Counts,
		})
		r.notify(snap)

		if scenario.StopAtFixedPoint && stats.Changed == 0 {
			result.FixedPoint = true
			break
		}
		prev = snap
	}

	log.Info("simulation finished",
		"generations", result.Steps(),
		"fixed_point", result.FixedPoint)
	return result, nil
}

func (r *Runner) notify(snap grid.Snapshot) {
	if r.observer != nil {
		r.observer.OnGeneration(snap)
	}
}
