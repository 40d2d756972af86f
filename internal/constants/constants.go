// Package constants provides named constants used throughout the trustgrid codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

import "time"

// Info point bounds
const (
	// MinInfoPoints is the lowest amount of info points a cell can hold.
	// Freshly built cells start here.
	MinInfoPoints = 0

	// MaxInfoPoints is the highest amount of info points a cell can hold.
	// Propagators are seeded at this value.
	MaxInfoPoints = 10
)

// Credibility evaluator constants
const (
	// ReversedTrustProbability is the chance that a cell's evaluator swaps the
	// LOW and HIGH membership functions.
	ReversedTrustProbability = 0.4

	// SigmoidBeta is the slope used by the continuous falling and growing graders.
	SigmoidBeta = 2.0
)

// Grid defaults
const (
	// DefaultGridSize is the side length of the default square grid.
	DefaultGridSize = 21

	// DefaultWorkers is the number of goroutines sweeping a generation.
	// A value of 1 keeps the sweep sequential.
	DefaultWorkers = 1

	// DefaultScoreThreshold is the normalized info point share a neighbor must
	// exceed to influence a cell under the score rule.
	DefaultScoreThreshold = 0.5
)

// Simulation pacing
const (
	// DefaultSteps is the default generation cap for a simulation run.
	DefaultSteps = 100

	// DefaultFrameInterval is the pause between generations when a run is
	// being watched.
	DefaultFrameInterval = 12 * time.Millisecond

	// MaxSteps caps the generations any single run may request.
	MaxSteps = 10000

	// MaxGridSize caps the side length accepted from external callers.
	MaxGridSize = 512
)
