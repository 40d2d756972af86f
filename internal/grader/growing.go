package grader

// GrowingBinary returns 1 once x >= c and 0 before.
func GrowingBinary(c float64) Func {
	return func(x float64) float64 {
		if x >= c {
			return 1
		}
		return 0
	}
}

// GrowingSteep starts at 0, grows linearly from a and reaches 1 at b.
func GrowingSteep(a, b float64) (Func, error) {
	if err := checkBounds("growing steep", a, b); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		switch {
		case x <= a:
			return 0
		case x >= b:
			return 1
		}
		return (x - a) / (b - a)
	}, nil
}

// GrowingContinuous is a sigmoid growing from 0 at x = 0 to 1 at x = c.
// The usual choice for beta is 2.
func GrowingContinuous(beta, c float64) (Func, error) {
	if err := checkSigmoid("growing continuous", beta, c); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		switch {
		case x >= c:
			return 1
		case x <= 0:
			return 0
		}
		return rise(x, beta, c)
	}, nil
}
