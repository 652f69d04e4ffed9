package hypothesis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ProportionTest is a one-sample z-test on the share of values below a threshold
type ProportionTest struct {
	N            int     `json:"n" yaml:"n"`
	Below        int     `json:"below" yaml:"below"`
	Threshold    float64 `json:"threshold" yaml:"threshold"`
	Proportion   float64 `json:"proportion" yaml:"proportion"`
	Hypothesized float64 `json:"hypothesized" yaml:"hypothesized"`
	Statistic    float64 `json:"statistic" yaml:"statistic"`
	PValue       float64 `json:"pValue" yaml:"pValue"`
}

// ProportionZ tests whether the proportion of x strictly below threshold
// differs from p0, using the normal approximation under the null.
func ProportionZ(x []float64, threshold, p0 float64) (ProportionTest, error) {
	if !(p0 > 0 && p0 < 1) {
		return ProportionTest{}, fmt.Errorf("hypothesized proportion must be in (0, 1), got %g", p0)
	}
	n := len(x)
	if n == 0 {
		return ProportionTest{}, fmt.Errorf("%w: proportion test needs at least one value", ErrSampleSize)
	}

	below := 0
	for _, v := range x {
		if v < threshold {
			below++
		}
	}
	phat := float64(below) / float64(n)
	z := (phat - p0) / math.Sqrt(p0*(1-p0)/float64(n))

	return ProportionTest{
		N:            n,
		Below:        below,
		Threshold:    threshold,
		Proportion:   phat,
		Hypothesized: p0,
		Statistic:    z,
		PValue:       min(1, 2*distuv.UnitNormal.Survival(math.Abs(z))),
	}, nil
}
