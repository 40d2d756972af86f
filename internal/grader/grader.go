// Package grader provides fuzzy membership functions. Each constructor
// validates its shape parameters once and returns a Func mapping an intensity
// to a membership degree.
//
// Functions come in three shapes: falling (1 toward 0), growing (0 toward 1)
// and peaking (0, up to 1, back to 0). Each shape has binary, steep (linear)
// and continuous (sigmoid or sinusoid) variants that share the same signature
// and can be used interchangeably.
package grader

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when a constructor receives shape
// parameters that cannot describe a membership function.
var ErrInvalidParameter = errors.New("invalid grader parameter")

// Func maps an intensity to a membership degree. Funcs are pure and safe for
// concurrent use.
type Func func(x float64) float64

func checkBounds(shape string, a, b float64) error {
	if a >= b {
		return fmt.Errorf("%s: a (%v) must be less than b (%v): %w", shape, a, b, ErrInvalidParameter)
	}
	return nil
}

func checkSigmoid(shape string, beta, c float64) error {
	if beta <= 1 {
		return fmt.Errorf("%s: beta (%v) must be greater than 1: %w", shape, beta, ErrInvalidParameter)
	}
	if c <= 0 {
		return fmt.Errorf("%s: c (%v) must be greater than 0: %w", shape, c, ErrInvalidParameter)
	}
	return nil
}

// rise is the rising sigmoid over (0, c): 1 / (1 + (x/(c-x))^-beta).
// Callers handle the endpoints.
func rise(x, beta, c float64) float64 {
	return 1 / (1 + math.Pow(x/(c-x), -beta))
}

// Dot returns a singleton membership: 1 when x equals c exactly, 0 otherwise.
func Dot(c float64) Func {
	return func(x float64) float64 {
		if x == c {
			return 1
		}
		return 0
	}
}
