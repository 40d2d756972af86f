package grader

import (
	"fmt"
	"math"
)

// PeakingBinary returns 1 for a <= x < b and 0 elsewhere.
func PeakingBinary(a, b float64) (Func, error) {
	if err := checkBounds("peaking binary", a, b); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		if a <= x && x < b {
			return 1
		}
		return 0
	}, nil
}

// PeakingSteep is a triangle rising from a, peaking at the midpoint of a and
// b, and back to 0 at b.
func PeakingSteep(a, b float64) (Func, error) {
	if err := checkBounds("peaking steep", a, b); err != nil {
		return nil, err
	}
	mid := (a + b) / 2
	return func(x float64) float64 {
		switch {
		case x <= a || x >= b:
			return 0
		case x <= mid:
			return (x - a) / (mid - a)
		}
		return (b - x) / (b - mid)
	}, nil
}

// PeakingSigmoid rises along a sigmoid to 1 at c and falls back to 0 at 2c,
// so the expected support is [0, 2c]. The usual choice for beta is 2.
func PeakingSigmoid(c, beta float64) (Func, error) {
	if err := checkSigmoid("peaking sigmoid", beta, c); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		switch {
		case x <= 0 || x >= 2*c:
			return 0
		case x == c:
			return 1
		case x < c:
			return rise(x, beta, c)
		}
		return 1 - rise(x-c, beta, c)
	}, nil
}

// PeakingSinusoid is a half-period sine bump peaking at c, with support [0, 2c]:
// (sin((x - c/2)·π/c) + 1) / 2.
func PeakingSinusoid(c float64) (Func, error) {
	if c <= 0 {
		return nil, fmt.Errorf("peaking sinusoid: c (%v) must be greater than 0: %w", c, ErrInvalidParameter)
	}
	return func(x float64) float64 {
		if x < 0 || x > 2*c {
			return 0
		}
		return (math.Sin((x-0.5*c)*math.Pi/c) + 1) / 2
	}, nil
}
