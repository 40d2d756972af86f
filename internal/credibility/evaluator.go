package credibility

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/grader"
)

// Assignment selects which fixed table of membership functions an
// evaluator binds to its levels.
type Assignment int

const (
	// Normal grades low intensities as LOW and high intensities as HIGH.
	Normal Assignment = iota
	// Reversed swaps the LOW and HIGH functions of Normal.
	Reversed
)

// String returns "normal" or "reversed".
func (a Assignment) String() string {
	if a == Reversed {
		return "reversed"
	}
	return "normal"
}

// EvaluatorConfig holds the parameters shared by every evaluator of a grid.
type EvaluatorConfig struct {
	MinInfoPoints int
	MaxInfoPoints int

	// ReversalProbability is the chance of picking the Reversed assignment.
	ReversalProbability float64

	// ForceNormal always picks the Normal assignment.
	ForceNormal bool
}

// DefaultEvaluatorConfig returns the evaluator configuration built from the
// package constants.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		MinInfoPoints:       constants.MinInfoPoints,
		MaxInfoPoints:       constants.MaxInfoPoints,
		ReversalProbability: constants.ReversedTrustProbability,
	}
}

// Degree is the membership degree of one level for a given intensity.
type Degree struct {
	Level  TrustLevel `json:"level"`
	Degree float64    `json:"degree"`
}

// Evaluator maps an intensity to the trust level whose membership function
// yields the highest degree. The function table is fixed at construction,
// so an Evaluator is immutable and safe for concurrent use.
type Evaluator struct {
	assignment Assignment
	graders    [len(levels)]grader.Func
}

// NewEvaluator builds an evaluator, drawing the assignment from rng unless
// cfg.ForceNormal is set. rng may be nil when ForceNormal is set or the
// reversal probability is 0 or 1.
func NewEvaluator(cfg EvaluatorConfig, rng *rand.Rand) (*Evaluator, error) {
	assignment := Normal
	if !cfg.ForceNormal && pickReversed(cfg.ReversalProbability, rng) {
		assignment = Reversed
	}
	return NewEvaluatorWithAssignment(cfg, assignment)
}

// NewEvaluatorWithAssignment builds an evaluator bound to the given assignment.
func NewEvaluatorWithAssignment(cfg EvaluatorConfig, assignment Assignment) (*Evaluator, error) {
	span := float64(cfg.MaxInfoPoints - cfg.MinInfoPoints)
	offset := float64(cfg.MinInfoPoints)

	falling, err := grader.FallingContinuous(constants.SigmoidBeta, span)
	if err != nil {
		return nil, fmt.Errorf("building low grader: %w", err)
	}
	peaking, err := grader.PeakingSinusoid(span / 2)
	if err != nil {
		return nil, fmt.Errorf("building medium grader: %w", err)
	}
	growing, err := grader.GrowingContinuous(constants.SigmoidBeta, span)
	if err != nil {
		return nil, fmt.Errorf("building high grader: %w", err)
	}

	low, high := falling, growing
	if assignment == Reversed {
		low, high = growing, falling
	}

	e := &Evaluator{assignment: assignment}
	e.graders[Null.Rank] = shift(grader.Dot(0), offset)
	e.graders[Low.Rank] = shift(low, offset)
	e.graders[Medium.Rank] = shift(peaking, offset)
	e.graders[High.Rank] = shift(high, offset)
	return e, nil
}

// shift moves a function defined on [0, span] onto [offset, offset+span].
func shift(f grader.Func, offset float64) grader.Func {
	if offset == 0 {
		return f
	}
	return func(x float64) float64 { return f(x - offset) }
}

func pickReversed(p float64, rng *rand.Rand) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	case rng == nil:
		return rand.Float64() < p
	}
	return rng.Float64() < p
}

// Assignment reports which function table the evaluator uses.
func (e *Evaluator) Assignment() Assignment {
	return e.assignment
}

// Grade returns the trust level with the maximum membership degree for the
// intensity. When several levels tie, the lowest rank wins. NaN degrees
// never win.
func (e *Evaluator) Grade(intensity float64) TrustLevel {
	best := Null
	bestDegree := math.Inf(-1)
	for rank, f := range e.graders {
		d := f(intensity)
		if d > bestDegree {
			best, bestDegree = levels[rank], d
		}
	}
	return best
}

// Degrees returns the membership degree of every level for the intensity,
// ordered by ascending rank.
func (e *Evaluator) Degrees(intensity float64) []Degree {
	out := make([]Degree, len(levels))
	for rank, f := range e.graders {
		out[rank] = Degree{Level: levels[rank], Degree: f(intensity)}
	}
	return out
}
