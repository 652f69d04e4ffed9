package analysis

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/plotting"
	"github.com/peekknuf/wineqa/internal/regression"
	"github.com/peekknuf/wineqa/internal/sampling"
)

// SimpleRegressionResult holds one single-predictor model per variant
type SimpleRegressionResult struct {
	Predictor string      `json:"predictor" yaml:"predictor"`
	Response  string      `json:"response" yaml:"response"`
	Removals  []Removal   `json:"removals" yaml:"removals"`
	Fits      []SimpleFit `json:"fits" yaml:"fits"`
}

// SimpleFit is the model and figures of one dataset
type SimpleFit struct {
	Variant      connectors.Variant `json:"variant" yaml:"variant"`
	Model        *regression.Model  `json:"model" yaml:"model"`
	FitPlot      string             `json:"fitPlot,omitempty" yaml:"fitPlot,omitempty"`
	ResidualPlot string             `json:"residualPlot,omitempty" yaml:"residualPlot,omitempty"`
}

// SimpleRegression cleans a sample of the predictor, z-scores it and regresses
// the response observed on the same rows against it. Figures are written under
// GraphsDir/single_regression when GraphsDir is set.
func (r *Runner) SimpleRegression() (*SimpleRegressionResult, error) {
	cfg := r.cfg.SimpleRegression
	res := &SimpleRegressionResult{Predictor: cfg.Predictor, Response: cfg.Response}

	for _, variant := range r.variants() {
		c, err := r.clean(variant, cfg.Predictor)
		if err != nil {
			return nil, err
		}
		res.Removals = append(res.Removals, c.Removal)

		response, err := r.frames[variant].Column(cfg.Response)
		if err != nil {
			return nil, err
		}
		kept := make([]int, len(c.Result.Kept))
		for i, pos := range c.Result.Kept {
			kept[i] = c.Rows[pos]
		}
		y := sampling.Take(response, kept)

		x, err := regression.Standardize(c.Result.Values, 1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Removal.Label, err)
		}
		model, err := regression.FitSimple(x, y, cfg.Predictor)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Removal.Label, err)
		}

		fit := SimpleFit{Variant: variant, Model: model}
		if cfg.GraphsDir != "" {
			if err := r.plotSimple(&fit, x, y); err != nil {
				return nil, err
			}
		}
		res.Fits = append(res.Fits, fit)
	}
	return res, nil
}

func (r *Runner) plotSimple(fit *SimpleFit, x, y []float64) error {
	cfg := r.cfg.SimpleRegression
	dir := filepath.Join(cfg.GraphsDir, "single_regression")
	predictor := "Normalized " + titleCase(cfg.Predictor)
	response := titleCase(cfg.Response)

	fitPath := filepath.Join(dir, string(fit.Variant)+"_ols.png")
	title := fmt.Sprintf("%s vs. %s with OLS", predictor, response)
	if err := plotting.FitPlot(fitPath, title, predictor, response, x, y, fit.Model.Fitted); err != nil {
		return err
	}

	residualPath := filepath.Join(dir, string(fit.Variant)+"_residuals.png")
	title = fmt.Sprintf("Residuals of Linear Regression on %s vs. %s", predictor, response)
	if err := plotting.ResidualPlot(residualPath, title, "Observed "+response, y, fit.Model.Residuals); err != nil {
		return err
	}

	fit.FitPlot, fit.ResidualPlot = fitPath, residualPath
	r.logger.Info("saved regression plots",
		zap.String("dataset", string(fit.Variant)),
		zap.String("fit", fitPath),
		zap.String("residuals", residualPath))
	return nil
}
