package grader

// FallingBinary returns 1 while x <= c and 0 afterwards.
func FallingBinary(c float64) Func {
	return func(x float64) float64 {
		if x <= c {
			return 1
		}
		return 0
	}
}

// FallingSteep starts at 1, falls linearly from a and reaches 0 at b.
func FallingSteep(a, b float64) (Func, error) {
	if err := checkBounds("falling steep", a, b); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		switch {
		case x <= a:
			return 1
		case x >= b:
			return 0
		}
		return (b - x) / (b - a)
	}, nil
}

// FallingContinuous is a sigmoid falling from 1 at x = 0 to 0 at x = c.
// The usual choice for beta is 2.
func FallingContinuous(beta, c float64) (Func, error) {
	if err := checkSigmoid("falling continuous", beta, c); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		switch {
		case x >= c:
			return 0
		case x <= 0:
			return 1
		}
		return 1 - rise(x, beta, c)
	}, nil
}
