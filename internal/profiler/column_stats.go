package profiler

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/peekknuf/wineqa/internal/numeric"
	"github.com/peekknuf/wineqa/internal/outliers"
)

// ColumnStats represents pandas.describe() style statistics for a numeric column
type ColumnStats struct {
	Name     string        `json:"name" yaml:"name"`
	Count    int           `json:"count" yaml:"count"`
	Mean     numeric.Float `json:"mean" yaml:"mean"`
	Std      numeric.Float `json:"std" yaml:"std"` // Sample standard deviation (ddof=1)
	Variance numeric.Float `json:"variance" yaml:"variance"`
	Min      numeric.Float `json:"min" yaml:"min"`
	Q25      numeric.Float `json:"q25" yaml:"q25"`
	Q50      numeric.Float `json:"q50" yaml:"q50"`
	Q75      numeric.Float `json:"q75" yaml:"q75"`
	Max      numeric.Float `json:"max" yaml:"max"`
	IQR      numeric.Float `json:"iqr" yaml:"iqr"`
	CoeffVar numeric.Float `json:"coeffVar" yaml:"coeffVar"` // NaN when the mean is zero
	Skewness numeric.Float `json:"skewness" yaml:"skewness"`
	Kurtosis numeric.Float `json:"kurtosis" yaml:"kurtosis"` // Excess kurtosis
	Outliers int           `json:"outliers" yaml:"outliers"` // Values outside the 1.5·IQR fences
}

// Describe computes the summary of one column. Statistics that need more
// observations than are available are left as NaN.
func Describe(name string, values []float64) ColumnStats {
	s := ColumnStats{
		Name:     name,
		Count:    len(values),
		Mean:     numeric.NaN(),
		Std:      numeric.NaN(),
		Variance: numeric.NaN(),
		Min:      numeric.NaN(),
		Q25:      numeric.NaN(),
		Q50:      numeric.NaN(),
		Q75:      numeric.NaN(),
		Max:      numeric.NaN(),
		IQR:      numeric.NaN(),
		CoeffVar: numeric.NaN(),
		Skewness: numeric.NaN(),
		Kurtosis: numeric.NaN(),
	}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q25 := outliers.Quantile(sorted, 0.25)
	q75 := outliers.Quantile(sorted, 0.75)
	iqr := q75 - q25
	s.Mean = numeric.Float(stat.Mean(values, nil))
	s.Min = numeric.Float(sorted[0])
	s.Max = numeric.Float(sorted[len(sorted)-1])
	s.Q25 = numeric.Float(q25)
	s.Q50 = numeric.Float(outliers.Quantile(sorted, 0.5))
	s.Q75 = numeric.Float(q75)
	s.IQR = numeric.Float(iqr)

	fences := outliers.Fences{Lower: q25 - outliers.DefaultMultiplier*iqr, Upper: q75 + outliers.DefaultMultiplier*iqr}
	for _, v := range values {
		if !fences.Contains(v) {
			s.Outliers++
		}
	}

	if len(values) < 2 {
		return s
	}
	variance := stat.Variance(values, nil)
	s.Variance = numeric.Float(variance)
	s.Std = numeric.Float(math.Sqrt(variance))
	s.CoeffVar = numeric.Float(CoefficientOfVariation(values))

	if variance > 0 {
		s.Skewness = numeric.Float(stat.Skew(values, nil))
		s.Kurtosis = numeric.Float(stat.ExKurtosis(values, nil))
	}
	return s
}

// CoefficientOfVariation returns sd/mean with the sample standard deviation.
// NaN for a zero mean or fewer than two values.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return math.NaN()
	}
	return std / mean
}
