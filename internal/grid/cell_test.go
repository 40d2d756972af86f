package grid

import (
	"errors"
	"testing"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/credibility"
)

func newTestCell(t *testing.T, assignment credibility.Assignment) Cell {
	t.Helper()
	e, err := credibility.NewEvaluatorWithAssignment(credibility.DefaultEvaluatorConfig(), assignment)
	if err != nil {
		t.Fatalf("NewEvaluatorWithAssignment: %v", err)
	}
	return NewCell(e, constants.MinInfoPoints, constants.MaxInfoPoints)
}

func TestCell_Fresh(t *testing.T) {
	c := newTestCell(t, credibility.Normal)

	if c.InfoPoints() != constants.MinInfoPoints {
		t.Errorf("InfoPoints() = %d, want %d", c.InfoPoints(), constants.MinInfoPoints)
	}
	if !c.IsEmpty() {
		t.Error("expected fresh cell to be empty")
	}
	if c.IsFull() {
		t.Error("expected fresh cell not to be full")
	}
	if c.TrustLevel() != credibility.Null {
		t.Errorf("TrustLevel() = %v, want null", c.TrustLevel())
	}
}

func TestCell_MakePropagator(t *testing.T) {
	for _, a := range []credibility.Assignment{credibility.Normal, credibility.Reversed} {
		t.Run(a.String(), func(t *testing.T) {
			c := newTestCell(t, a)
			if err := c.MakePropagator(); err != nil {
				t.Fatalf("MakePropagator: %v", err)
			}
			if c.InfoPoints() != constants.MaxInfoPoints {
				t.Errorf("InfoPoints() = %d, want %d", c.InfoPoints(), constants.MaxInfoPoints)
			}
			if !c.IsFull() {
				t.Error("expected propagator to be full")
			}
		})
	}
}

func TestCell_IncrementRegrades(t *testing.T) {
	c := newTestCell(t, credibility.Normal)
	want := []credibility.TrustLevel{
		credibility.Low, credibility.Low, credibility.Low,
		credibility.Medium, credibility.Medium, credibility.Medium,
		credibility.High, credibility.High, credibility.High, credibility.High,
	}

	for i, level := range want {
		if err := c.Increment(); err != nil {
			t.Fatalf("Increment #%d: %v", i+1, err)
		}
		if c.TrustLevel() != level {
			t.Errorf("after %d increments TrustLevel() = %v, want %v", i+1, c.TrustLevel(), level)
		}
	}

	if err := c.Decrement(); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if c.InfoPoints() != constants.MaxInfoPoints-1 {
		t.Errorf("InfoPoints() = %d, want %d", c.InfoPoints(), constants.MaxInfoPoints-1)
	}
}

func TestCell_IncrementFullFails(t *testing.T) {
	c := newTestCell(t, credibility.Normal)
	if err := c.MakePropagator(); err != nil {
		t.Fatalf("MakePropagator: %v", err)
	}
	before := c.TrustLevel()

	err := c.Increment()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Increment on full cell: got %v, want ErrOutOfRange", err)
	}
	if c.InfoPoints() != constants.MaxInfoPoints || c.TrustLevel() != before {
		t.Error("rejected increment must leave the cell unchanged")
	}
}

func TestCell_DecrementEmptyFails(t *testing.T) {
	c := newTestCell(t, credibility.Normal)

	err := c.Decrement()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Decrement on empty cell: got %v, want ErrOutOfRange", err)
	}
	if c.InfoPoints() != constants.MinInfoPoints {
		t.Errorf("InfoPoints() = %d, want %d", c.InfoPoints(), constants.MinInfoPoints)
	}
}

func TestCell_CopyIsIndependent(t *testing.T) {
	c := newTestCell(t, credibility.Normal)
	cp := c
	if err := cp.Increment(); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if c.InfoPoints() != constants.MinInfoPoints {
		t.Errorf("original changed to %d after mutating copy", c.InfoPoints())
	}
}
