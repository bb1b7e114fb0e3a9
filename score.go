package rare

import "gonum.org/v1/gonum/floats"

// Last scores a trajectory by its most recent state
func Last(t, x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return x[len(x)-1]
}

// Max scores a trajectory by the largest state it has visited
func Max(t, x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x)
}
