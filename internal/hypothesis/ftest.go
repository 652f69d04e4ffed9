package hypothesis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// FTest is the result of a two-sided variance-ratio test
type FTest struct {
	Var1         float64  `json:"var1" yaml:"var1"`
	Var2         float64  `json:"var2" yaml:"var2"`
	Swapped      bool     `json:"swapped" yaml:"swapped"` // Ratio is var2/var1
	Statistic    float64  `json:"statistic" yaml:"statistic"`
	DF1          float64  `json:"df1" yaml:"df1"`
	DF2          float64  `json:"df2" yaml:"df2"`
	CriticalLow  float64  `json:"criticalLow" yaml:"criticalLow"`
	CriticalHigh float64  `json:"criticalHigh" yaml:"criticalHigh"`
	PValue       float64  `json:"pValue" yaml:"pValue"`
	Alpha        float64  `json:"alpha" yaml:"alpha"`
	Interval     Interval `json:"interval" yaml:"interval"` // On the reported ratio
	Decision     Decision `json:"decision" yaml:"decision"`
}

// VarianceF tests equality of the variances of x and y. The statistic is the
// larger sample variance over the smaller one, with degrees of freedom ordered
// to match, and the interval bounds the population variance ratio.
func VarianceF(x, y []float64, confidence float64) (FTest, error) {
	if err := checkConfidence(confidence); err != nil {
		return FTest{}, err
	}
	n1, n2 := len(x), len(y)
	if n1 < 2 || n2 < 2 {
		return FTest{}, fmt.Errorf("%w: F-test needs 2 values per sample, got %d and %d", ErrSampleSize, n1, n2)
	}
	var1 := stat.Variance(x, nil)
	var2 := stat.Variance(y, nil)
	if var1 == 0 || var2 == 0 {
		return FTest{}, ErrZeroVariance
	}

	res := FTest{
		Var1:      var1,
		Var2:      var2,
		Statistic: var1 / var2,
		DF1:       float64(n1 - 1),
		DF2:       float64(n2 - 1),
	}
	if var2 > var1 {
		res.Swapped = true
		res.Statistic = var2 / var1
		res.DF1, res.DF2 = res.DF2, res.DF1
	}

	alpha := 1 - confidence
	res.Alpha = alpha
	res.CriticalLow = fQuantile(alpha/2, res.DF1, res.DF2)
	res.CriticalHigh = fQuantile(1-alpha/2, res.DF1, res.DF2)

	cdf := fCDF(res.Statistic, res.DF1, res.DF2)
	res.PValue = min(1, 2*min(cdf, 1-cdf))

	res.Interval = Interval{
		Level: confidence,
		Lower: res.Statistic / res.CriticalHigh,
		Upper: res.Statistic / res.CriticalLow,
	}
	res.Decision = decide(res.Statistic < res.CriticalLow || res.Statistic > res.CriticalHigh)
	return res, nil
}
