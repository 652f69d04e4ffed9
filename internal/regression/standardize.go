package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Standardize z-scores x using a standard deviation with ddof delta degrees of
// freedom: 1 for the sample estimate, 0 for the population one.
func Standardize(x []float64, ddof int) ([]float64, error) {
	n := len(x)
	if ddof < 0 || n <= ddof {
		return nil, fmt.Errorf("%w: cannot standardize %d values with ddof %d", ErrTooFewObservations, n, ddof)
	}

	mean := stat.Mean(x, nil)
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(n-ddof))
	if std == 0 {
		return nil, fmt.Errorf("cannot standardize a constant column")
	}

	out := make([]float64, n)
	for i, v := range x {
		out[i] = stat.StdScore(v, mean, std)
	}
	return out, nil
}
