package hypothesis

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// TTest is the result of a one- or two-sample t-test
type TTest struct {
	N1        int      `json:"n1" yaml:"n1"`
	N2        int      `json:"n2,omitempty" yaml:"n2,omitempty"` // Zero for one-sample tests
	Mean1     float64  `json:"mean1" yaml:"mean1"`
	Mean2     float64  `json:"mean2,omitempty" yaml:"mean2,omitempty"`
	Null      float64  `json:"null" yaml:"null"` // Hypothesized mean or mean difference
	Statistic float64  `json:"statistic" yaml:"statistic"`
	DF        float64  `json:"df" yaml:"df"`
	PValue    float64  `json:"pValue" yaml:"pValue"`
	Alpha     float64  `json:"alpha" yaml:"alpha"`
	Critical  float64  `json:"critical" yaml:"critical"` // t* used for the interval
	Interval  Interval `json:"interval" yaml:"interval"`
	Decision  Decision `json:"decision" yaml:"decision"`
}

// OneSampleT tests whether the mean of x differs from mu0 and builds the
// interval mean ± t*·s/√n at the given confidence level.
func OneSampleT(x []float64, mu0, confidence float64) (TTest, error) {
	if err := checkConfidence(confidence); err != nil {
		return TTest{}, err
	}
	n := len(x)
	if n < 2 {
		return TTest{}, fmt.Errorf("%w: one-sample t-test needs 2 values, got %d", ErrSampleSize, n)
	}
	mean, sd := stat.MeanStdDev(x, nil)
	if sd == 0 {
		return TTest{}, ErrZeroVariance
	}

	res, err := stats.OneSampleTTest(&stats.Sample{Xs: x}, mu0, stats.LocationDiffers)
	if err != nil {
		return TTest{}, fmt.Errorf("one-sample t-test: %w", err)
	}

	df := float64(n - 1)
	crit := tCritical(confidence, df)
	margin := crit * sd / math.Sqrt(float64(n))
	alpha := 1 - confidence

	return TTest{
		N1:        n,
		Mean1:     mean,
		Null:      mu0,
		Statistic: res.T,
		DF:        res.DoF,
		PValue:    res.P,
		Alpha:     alpha,
		Critical:  crit,
		Interval:  Interval{Level: confidence, Lower: mean - margin, Upper: mean + margin},
		Decision:  decide(res.P < alpha),
	}, nil
}

// WelchT runs an unequal-variance two-sample t-test on x and y. The p-value uses
// the Welch–Satterthwaite degrees of freedom; the interval on mean(x)-mean(y)
// uses the conservative min(n1-1, n2-1).
func WelchT(x, y []float64, confidence float64) (TTest, error) {
	if err := checkConfidence(confidence); err != nil {
		return TTest{}, err
	}
	n1, n2 := len(x), len(y)
	if n1 < 2 || n2 < 2 {
		return TTest{}, fmt.Errorf("%w: Welch t-test needs 2 values per sample, got %d and %d", ErrSampleSize, n1, n2)
	}
	mean1, sd1 := stat.MeanStdDev(x, nil)
	mean2, sd2 := stat.MeanStdDev(y, nil)
	if sd1 == 0 && sd2 == 0 {
		return TTest{}, ErrZeroVariance
	}

	res, err := stats.TwoSampleWelchTTest(&stats.Sample{Xs: x}, &stats.Sample{Xs: y}, stats.LocationDiffers)
	if err != nil {
		return TTest{}, fmt.Errorf("Welch t-test: %w", err)
	}

	se := math.Sqrt(sd1*sd1/float64(n1) + sd2*sd2/float64(n2))
	crit := tCritical(confidence, float64(min(n1-1, n2-1)))
	diff := mean1 - mean2
	alpha := 1 - confidence

	return TTest{
		N1:        n1,
		N2:        n2,
		Mean1:     mean1,
		Mean2:     mean2,
		Statistic: res.T,
		DF:        res.DoF,
		PValue:    res.P,
		Alpha:     alpha,
		Critical:  crit,
		Interval:  Interval{Level: confidence, Lower: diff - crit*se, Upper: diff + crit*se},
		Decision:  decide(res.P < alpha),
	}, nil
}
