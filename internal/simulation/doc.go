// Package simulation drives a trust grid over many generations.
//
// A Runner builds a fresh grid from a Scenario, seeds its propagators and
// advances it until the step cap or a fixed point is reached, recording
// per-generation statistics. Renderers subscribe through an Observer to see
// every generation as it is produced.
//
// Usage:
//
//	r := simulation.NewRunner(logger, nil, nil)
//	result, err := r.Run(ctx, simulation.Scenario{
//	    Name:             "centre",
//	    Grid:             grid.DefaultConfig(),
//	    Propagators:      []grid.Coord{simulation.Centre(21)},
//	    Steps:            100,
//	    StopAtFixedPoint: true,
//	})
package simulation
