package simulation

import (
	"testing"
)

// AssertFixedPointWithin asserts that the run reached a fixed point after at
// most maxSteps generations.
func AssertFixedPointWithin(t *testing.T, result Result, maxSteps int) {
	t.Helper()
	if !result.FixedPoint {
		t.Errorf("AssertFixedPointWithin: no fixed point after %d generations", result.Steps())
		return
	}
	if result.Steps() > maxSteps {
		t.Errorf("AssertFixedPointWithin: fixed point at generation %d, want <= %d", result.Steps(), maxSteps)
	}
}

// AssertInfoPointsNonDecreasing asserts that the grid's total info points
// never shrink from one generation to the next.
func AssertInfoPointsNonDecreasing(t *testing.T, result Result) {
	t.Helper()
	prev := result.Initial.TotalInfoPoints()
	for _, g := range result.Generations {
		if g.TotalInfoPoints < prev {
			t.Errorf("AssertInfoPointsNonDecreasing: generation %d total %d < previous %d", g.Generation, g.TotalInfoPoints, prev)
		}
		prev = g.TotalInfoPoints
	}
}

// AssertCellCount asserts that every generation accounts for size*size cells
// across the trust levels.
func AssertCellCount(t *testing.T, result Result, size int) {
	t.Helper()
	for _, g := range result.Generations {
		total := 0
		for _, n := range g.Counts {
			total += n
		}
		if total != size*size {
			t.Errorf("AssertCellCount: generation %d counts %d cells, want %d", g.Generation, total, size*size)
		}
	}
}

// AssertLevelCount asserts the number of cells at a level in the final
// generation.
func AssertLevelCount(t *testing.T, result Result, level string, want int) {
	t.Helper()
	if got := result.Final.Counts()[level]; got != want {
		t.Errorf("AssertLevelCount: final generation has %d %s cells, want %d", got, level, want)
	}
}
