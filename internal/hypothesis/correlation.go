package hypothesis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/peekknuf/wineqa/internal/numeric"
)

// Correlation is a Pearson correlation test
type Correlation struct {
	N         int           `json:"n" yaml:"n"`
	R         float64       `json:"r" yaml:"r"`
	Statistic numeric.Float `json:"statistic" yaml:"statistic"` // t = r·√(df/(1-r²)), ±Inf when |r| = 1
	DF        float64       `json:"df" yaml:"df"`
	PValue    float64       `json:"pValue" yaml:"pValue"`
	Interval  Interval      `json:"interval" yaml:"interval"` // Fisher z interval on r
}

// Pearson computes the correlation of paired samples x and y, its two-sided
// p-value against r = 0 and a Fisher-transformed confidence interval.
func Pearson(x, y []float64, confidence float64) (Correlation, error) {
	if err := checkConfidence(confidence); err != nil {
		return Correlation{}, err
	}
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("%w: %d and %d", ErrMismatchedSamples, len(x), len(y))
	}
	n := len(x)
	if n < 4 {
		return Correlation{}, fmt.Errorf("%w: correlation interval needs 4 pairs, got %d", ErrSampleSize, n)
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return Correlation{}, ErrZeroVariance
	}

	r := stat.Correlation(x, y, nil)
	// Collinear data can land a few ulps away from ±1
	if 1-math.Abs(r) < 1e-12 {
		r = math.Copysign(1, r)
	}
	df := float64(n - 2)

	res := Correlation{N: n, R: r, DF: df}
	if math.Abs(r) == 1 {
		res.Statistic = numeric.Float(math.Copysign(math.Inf(1), r))
		res.PValue = 0
		res.Interval = Interval{Level: confidence, Lower: r, Upper: r}
		return res, nil
	}

	t := r * math.Sqrt(df/(1-r*r))
	res.Statistic = numeric.Float(t)
	res.PValue = tTwoSided(t, df)

	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	zc := distuv.UnitNormal.Quantile((1 + confidence) / 2)
	res.Interval = Interval{
		Level: confidence,
		Lower: math.Tanh(z - zc*se),
		Upper: math.Tanh(z + zc*se),
	}
	return res, nil
}
