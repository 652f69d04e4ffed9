package hypothesis

import (
	"fmt"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a two-sided confidence interval
type Interval struct {
	Level float64 `json:"level" yaml:"level"`
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Contains reports whether v lies inside the interval, bounds included
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

func (i Interval) String() string {
	return fmt.Sprintf("(%g, %g)", i.Lower, i.Upper)
}

// Decision is the outcome of comparing a test to its significance level
type Decision string

const (
	Reject       Decision = "reject"
	FailToReject Decision = "fail to reject"
)

func decide(reject bool) Decision {
	if reject {
		return Reject
	}
	return FailToReject
}

// tCritical returns the two-sided critical value of Student's t at level
func tCritical(level, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile((1 + level) / 2)
}

// tTwoSided returns the two-sided p-value of a t statistic
func tTwoSided(t, df float64) float64 {
	if t < 0 {
		t = -t
	}
	return min(1, 2*distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(t))
}

// fQuantile inverts the F(d1, d2) CDF through the regularized incomplete beta
func fQuantile(p, d1, d2 float64) float64 {
	x := mathext.InvRegIncBeta(d1/2, d2/2, p)
	return d2 * x / (d1 * (1 - x))
}

// fCDF returns P(F <= f) for F ~ F(d1, d2)
func fCDF(f, d1, d2 float64) float64 {
	if f <= 0 {
		return 0
	}
	return mathext.RegIncBeta(d1/2, d2/2, d1*f/(d1*f+d2))
}
