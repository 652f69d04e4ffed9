package analysis

import (
	"fmt"
	"strings"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/dataset"
	"github.com/peekknuf/wineqa/internal/outliers"
	"github.com/peekknuf/wineqa/internal/regression"
)

// MultipleRegressionResult holds every configured model for every variant
type MultipleRegressionResult struct {
	Response string        `json:"response" yaml:"response"`
	Removals []RowRemoval  `json:"removals" yaml:"removals"`
	Models   []MultipleFit `json:"models" yaml:"models"`
}

// RowRemoval records the rows one cleaning pass dropped from a dataset
type RowRemoval struct {
	Variant connectors.Variant `json:"variant" yaml:"variant"`
	Column  string             `json:"column" yaml:"column"`
	Removed int                `json:"removed" yaml:"removed"`
}

// MultipleFit is one fitted model
type MultipleFit struct {
	Variant connectors.Variant `json:"variant" yaml:"variant"`
	Index   int                `json:"index" yaml:"index"` // 1-based position in the config
	Model   *regression.Model  `json:"model" yaml:"model"`
}

// Label returns "Red Wine Model 1: density, residual sugar"
func (f MultipleFit) Label() string {
	return fmt.Sprintf("%s Wine Model %d: %s", f.Variant.Title(), f.Index, strings.Join(f.Model.Predictors, ", "))
}

// MultipleRegression removes outlying rows column by column over the whole
// dataset, z-scores the predictors with the population standard deviation,
// samples rows and fits each configured model with an intercept.
func (r *Runner) MultipleRegression() (*MultipleRegressionResult, error) {
	cfg := r.cfg.MultipleRegression
	res := &MultipleRegressionResult{Response: cfg.Response}

	for _, variant := range r.variants() {
		frame, removals, err := outliers.FilterRows(r.frames[variant], cfg.CleanColumns, r.cfg.Multiplier)
		if err != nil {
			return nil, fmt.Errorf("%s wine: %w", variant, err)
		}
		for _, rm := range removals {
			res.Removals = append(res.Removals, RowRemoval{Variant: variant, Column: rm.Column, Removed: rm.Removed})
		}

		frame, err = standardizeColumns(frame, predictorColumns(cfg.Models))
		if err != nil {
			return nil, fmt.Errorf("%s wine: %w", variant, err)
		}

		rows, err := r.sampler.Indices(frame.Len(), r.cfg.SampleSize)
		if err != nil {
			return nil, fmt.Errorf("%s wine: %w", variant, err)
		}
		frame, err = frame.Rows(rows)
		if err != nil {
			return nil, err
		}

		y, err := frame.Column(cfg.Response)
		if err != nil {
			return nil, err
		}
		for i, predictors := range cfg.Models {
			cols := make([][]float64, len(predictors))
			for j, name := range predictors {
				if cols[j], err = frame.Column(name); err != nil {
					return nil, err
				}
			}
			model, err := regression.Fit(y, cols, predictors)
			if err != nil {
				return nil, fmt.Errorf("%s wine model %d: %w", variant, i+1, err)
			}
			res.Models = append(res.Models, MultipleFit{Variant: variant, Index: i + 1, Model: model})
		}
	}
	return res, nil
}

// predictorColumns lists every predictor used by models once, in first-seen order
func predictorColumns(models [][]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, model := range models {
		for _, col := range model {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}

func standardizeColumns(frame *dataset.Frame, columns []string) (*dataset.Frame, error) {
	for _, col := range columns {
		values, err := frame.Column(col)
		if err != nil {
			return nil, err
		}
		z, err := regression.Standardize(values, 0)
		if err != nil {
			return nil, fmt.Errorf("standardizing %s: %w", col, err)
		}
		if frame, err = frame.WithColumn(col, z); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
