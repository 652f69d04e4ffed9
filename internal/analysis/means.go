package analysis

import (
	"fmt"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/hypothesis"
	"github.com/peekknuf/wineqa/internal/numeric"
	"github.com/peekknuf/wineqa/internal/profiler"
)

// MeanVarianceResult holds the two-sample comparisons of every configured pair
type MeanVarianceResult struct {
	Removals    []Removal                `json:"removals" yaml:"removals"`
	Comparisons []MeanVarianceComparison `json:"comparisons" yaml:"comparisons"`
}

// MeanVarianceComparison compares two columns of one dataset
type MeanVarianceComparison struct {
	Variant        connectors.Variant `json:"variant" yaml:"variant"`
	First          string             `json:"first" yaml:"first"`
	Second         string             `json:"second" yaml:"second"`
	Welch          hypothesis.TTest   `json:"welch" yaml:"welch"`
	Variance       hypothesis.FTest   `json:"variance" yaml:"variance"`
	CoeffVarFirst  numeric.Float      `json:"coeffVarFirst" yaml:"coeffVarFirst"`
	CoeffVarSecond numeric.Float      `json:"coeffVarSecond" yaml:"coeffVarSecond"`
}

// Label returns the "Red Wine: Density and Alcohol" style heading
func (c MeanVarianceComparison) Label() string {
	return pairLabel(c.Variant, c.First, c.Second)
}

// MeanVariance runs a Welch t-test and an F-test for each configured pair of
// columns, each column cleaned on its own sample.
func (r *Runner) MeanVariance() (*MeanVarianceResult, error) {
	cfg := r.cfg.MeanVariance
	res := &MeanVarianceResult{}

	for _, variant := range r.variants() {
		cleaned, removals, err := r.cleanAll(variant, flatten(cfg.Pairs))
		if err != nil {
			return nil, err
		}
		res.Removals = append(res.Removals, removals...)

		for _, pair := range cfg.Pairs {
			x := cleaned[pair[0]].Result.Values
			y := cleaned[pair[1]].Result.Values
			heading := pairLabel(variant, pair[0], pair[1])

			welch, err := hypothesis.WelchT(x, y, cfg.Confidence)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", heading, err)
			}
			ftest, err := hypothesis.VarianceF(x, y, cfg.Confidence)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", heading, err)
			}

			res.Comparisons = append(res.Comparisons, MeanVarianceComparison{
				Variant:        variant,
				First:          pair[0],
				Second:         pair[1],
				Welch:          welch,
				Variance:       ftest,
				CoeffVarFirst:  numeric.Float(profiler.CoefficientOfVariation(x)),
				CoeffVarSecond: numeric.Float(profiler.CoefficientOfVariation(y)),
			})
		}
	}
	return res, nil
}
