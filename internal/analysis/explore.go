package analysis

import (
	"fmt"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/hypothesis"
)

// ExploreResult holds the one-sample tests on a single column per variant
type ExploreResult struct {
	Column   string           `json:"column" yaml:"column"`
	Removals []Removal        `json:"removals" yaml:"removals"`
	Variants []ExploreVariant `json:"variants" yaml:"variants"`
}

// ExploreVariant is the mean and proportion test for one dataset
type ExploreVariant struct {
	Variant    connectors.Variant        `json:"variant" yaml:"variant"`
	Mean       hypothesis.TTest          `json:"mean" yaml:"mean"`
	Proportion hypothesis.ProportionTest `json:"proportion" yaml:"proportion"`
}

// Explore tests the cleaned sample mean against the hypothesized mean and the
// share of values below each variant's threshold against the hypothesized
// proportion.
func (r *Runner) Explore() (*ExploreResult, error) {
	cfg := r.cfg.Explore
	res := &ExploreResult{Column: cfg.Column}

	for _, variant := range r.variants() {
		c, err := r.clean(variant, cfg.Column)
		if err != nil {
			return nil, err
		}
		res.Removals = append(res.Removals, c.Removal)

		mean, err := hypothesis.OneSampleT(c.Result.Values, cfg.HypothesizedMean, cfg.Confidence)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Removal.Label, err)
		}

		threshold, ok := cfg.Thresholds[string(variant)]
		if !ok {
			return nil, fmt.Errorf("no proportion threshold configured for %s wine", variant)
		}
		prop, err := hypothesis.ProportionZ(c.Result.Values, threshold, cfg.HypothesizedProportion)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Removal.Label, err)
		}

		res.Variants = append(res.Variants, ExploreVariant{
			Variant:    variant,
			Mean:       mean,
			Proportion: prop,
		})
	}
	return res, nil
}
