package grid

import (
	"fmt"

	"github.com/nvandessel/trustgrid/internal/credibility"
)

// Cell holds a bounded info point counter and the trust level derived from
// it. The trust level is regraded on every mutation and cannot be set
// directly.
//
// Cells are values: copying a Cell copies its state, while the evaluator is
// shared because it never changes after construction.
type Cell struct {
	infoPoints int
	minPoints  int
	maxPoints  int
	level      credibility.TrustLevel
	evaluator  *credibility.Evaluator
}

// NewCell creates an empty cell holding min info points.
func NewCell(evaluator *credibility.Evaluator, min, max int) Cell {
	return Cell{
		infoPoints: min,
		minPoints:  min,
		maxPoints:  max,
		level:      evaluator.Grade(float64(min)),
		evaluator:  evaluator,
	}
}

// InfoPoints returns the current info point count.
func (c *Cell) InfoPoints() int { return c.infoPoints }

// TrustLevel returns the trust level graded from the current info points.
func (c *Cell) TrustLevel() credibility.TrustLevel { return c.level }

// Assignment reports whether the cell's evaluator is normal or reversed.
func (c *Cell) Assignment() credibility.Assignment { return c.evaluator.Assignment() }

// IsFull reports whether the cell holds the maximum info points.
func (c *Cell) IsFull() bool { return c.infoPoints == c.maxPoints }

// IsEmpty reports whether the cell holds the minimum info points.
func (c *Cell) IsEmpty() bool { return c.infoPoints == c.minPoints }

// Increment adds one info point.
func (c *Cell) Increment() error {
	return c.setInfoPoints(c.infoPoints + 1)
}

// Decrement removes one info point.
func (c *Cell) Decrement() error {
	return c.setInfoPoints(c.infoPoints - 1)
}

// MakePropagator fills the cell so it acts as an information source.
func (c *Cell) MakePropagator() error {
	return c.setInfoPoints(c.maxPoints)
}

// setInfoPoints rejects values outside [min, max] and leaves the cell
// unchanged in that case.
func (c *Cell) setInfoPoints(points int) error {
	if points < c.minPoints || points > c.maxPoints {
		return fmt.Errorf("set info points to %d outside [%d, %d]: %w", points, c.minPoints, c.maxPoints, ErrOutOfRange)
	}
	c.infoPoints = points
	c.level = c.evaluator.Grade(float64(points))
	return nil
}

// state returns the renderer-facing view of the cell.
func (c *Cell) state() CellState {
	return CellState{
		InfoPoints: c.infoPoints,
		Level:      c.level,
		Reversed:   c.evaluator.Assignment() == credibility.Reversed,
	}
}
