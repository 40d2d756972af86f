package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/grid"
)

// ErrInvalidScenario is returned when a scenario cannot be run.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario defines a complete simulation run.
type Scenario struct {
	Name        string
	Grid        grid.Config
	Propagators []grid.Coord

	// Steps caps the number of generations advanced.
	Steps int

	// StopAtFixedPoint ends the run at the first generation that changes
	// no cell. That generation is still recorded.
	StopAtFixedPoint bool

	// Interval is the pause before each generation. Zero runs flat out.
	Interval time.Duration

	// Seed seeds the evaluator assignment draw. Zero uses the global source.
	Seed uint64
}

// Validate checks the scenario's own fields and its grid configuration.
func (s Scenario) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if s.Steps < 0 || s.Steps > constants.MaxSteps {
		return fmt.Errorf("steps must be between 0 and %d, got %d: %w", constants.MaxSteps, s.Steps, ErrInvalidScenario)
	}
	if s.Interval < 0 {
		return fmt.Errorf("interval must be non-negative, got %v: %w", s.Interval, ErrInvalidScenario)
	}
	return nil
}

// Centre returns the middle cell of a size×size grid.
func Centre(size int) grid.Coord {
	return grid.Coord{Row: size / 2, Col: size / 2}
}

// GenerationStats summarizes one generation of a run.
type GenerationStats struct {
	Generation      int            `json:"generation"`
	Counts          map[string]int `json:"counts"`
	Changed         int            `json:"changed"`
	TotalInfoPoints int            `json:"total_info_points"`
}

// Result captures a finished run.
type Result struct {
	RunID       string            `json:"run_id"`
	Scenario    string            `json:"scenario,omitempty"`
	Initial     grid.Snapshot     `json:"-"`
	Final       grid.Snapshot     `json:"-"`
	Generations []GenerationStats `json:"generations"`

	// FixedPoint is true when the run stopped because a generation changed
	// no cell.
	FixedPoint bool `json:"fixed_point"`
}

// Steps returns the number of generations advanced.
func (r Result) Steps() int { return len(r.Generations) }

// Last returns the stats of the final generation, or the zero value when no
// generation was advanced.
func (r Result) Last() GenerationStats {
	if len(r.Generations) == 0 {
		return GenerationStats{Counts: r.Final.Counts(), TotalInfoPoints: r.Final.TotalInfoPoints()}
	}
	return r.Generations[len(r.Generations)-1]
}
