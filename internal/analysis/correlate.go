package analysis

import (
	"fmt"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/hypothesis"
	"github.com/peekknuf/wineqa/internal/outliers"
)

// CorrelationResult holds the Pearson tests of every configured pair
type CorrelationResult struct {
	Pairing  string            `json:"pairing" yaml:"pairing"`
	Removals []Removal         `json:"removals" yaml:"removals"`
	Pairs    []CorrelationPair `json:"pairs" yaml:"pairs"`
}

// CorrelationPair is the correlation of two columns of one dataset
type CorrelationPair struct {
	Variant connectors.Variant     `json:"variant" yaml:"variant"`
	X       string                 `json:"x" yaml:"x"`
	Y       string                 `json:"y" yaml:"y"`
	Test    hypothesis.Correlation `json:"test" yaml:"test"`
}

// Label returns the "White Wine: Density and Sugar" style heading
func (p CorrelationPair) Label() string {
	return pairLabel(p.Variant, p.X, p.Y)
}

// Correlate computes Pearson's r for each configured pair. Columns are cleaned
// independently, then paired by the configured strategy.
func (r *Runner) Correlate() (*CorrelationResult, error) {
	cfg := r.cfg.Correlation
	res := &CorrelationResult{Pairing: cfg.Pairing}

	for _, variant := range r.variants() {
		cleaned, removals, err := r.cleanAll(variant, flatten(cfg.Pairs))
		if err != nil {
			return nil, err
		}
		res.Removals = append(res.Removals, removals...)

		for _, pair := range cfg.Pairs {
			a, b := cleaned[pair[0]].Result, cleaned[pair[1]].Result

			var x, y []float64
			switch cfg.Pairing {
			case PairRows:
				x, y = outliers.Intersect(a, b)
			default:
				x, y = outliers.TailAlign(a.Values, b.Values, cfg.Tail)
			}

			test, err := hypothesis.Pearson(x, y, cfg.Confidence)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pairLabel(variant, pair[0], pair[1]), err)
			}
			res.Pairs = append(res.Pairs, CorrelationPair{
				Variant: variant,
				X:       pair[0],
				Y:       pair[1],
				Test:    test,
			})
		}
	}
	return res, nil
}
