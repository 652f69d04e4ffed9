package analysis

import (
	"fmt"

	"github.com/peekknuf/wineqa/internal/outliers"
	"github.com/peekknuf/wineqa/internal/sampling"
)

// Pairing strategies for two independently cleaned columns
const (
	PairTail = "tail" // Keep the last N values of each column
	PairRows = "rows" // Keep rows retained in both columns
)

// Config drives every study. Field tags match the keys of the YAML config file.
type Config struct {
	Seed       uint64  `mapstructure:"seed" yaml:"seed"`
	SampleSize int     `mapstructure:"sample-size" yaml:"sample-size"`
	Multiplier float64 `mapstructure:"iqr-multiplier" yaml:"iqr-multiplier"`

	Explore            ExploreConfig            `mapstructure:"explore" yaml:"explore"`
	MeanVariance       MeanVarianceConfig       `mapstructure:"means" yaml:"means"`
	Correlation        CorrelationConfig        `mapstructure:"correlate" yaml:"correlate"`
	SimpleRegression   SimpleRegressionConfig   `mapstructure:"regress" yaml:"regress"`
	MultipleRegression MultipleRegressionConfig `mapstructure:"multiregress" yaml:"multiregress"`
}

// ExploreConfig configures the one-sample mean and proportion tests
type ExploreConfig struct {
	Column                 string             `mapstructure:"column" yaml:"column"`
	HypothesizedMean       float64            `mapstructure:"hypothesized-mean" yaml:"hypothesized-mean"`
	Confidence             float64            `mapstructure:"confidence" yaml:"confidence"`
	Thresholds             map[string]float64 `mapstructure:"thresholds" yaml:"thresholds"` // Keyed by variant
	HypothesizedProportion float64            `mapstructure:"hypothesized-proportion" yaml:"hypothesized-proportion"`
}

// MeanVarianceConfig configures the two-sample mean and variance comparisons
type MeanVarianceConfig struct {
	Confidence float64    `mapstructure:"confidence" yaml:"confidence"`
	Pairs      [][]string `mapstructure:"pairs" yaml:"pairs"`
}

// CorrelationConfig configures the Pearson tests
type CorrelationConfig struct {
	Confidence float64    `mapstructure:"confidence" yaml:"confidence"`
	Pairing    string     `mapstructure:"pairing" yaml:"pairing"`
	Tail       int        `mapstructure:"tail" yaml:"tail"`
	Pairs      [][]string `mapstructure:"pairs" yaml:"pairs"`
}

// SimpleRegressionConfig configures the single-predictor OLS and its plots
type SimpleRegressionConfig struct {
	Predictor string `mapstructure:"predictor" yaml:"predictor"`
	Response  string `mapstructure:"response" yaml:"response"`
	GraphsDir string `mapstructure:"graphs-dir" yaml:"graphs-dir"` // Empty disables plots
}

// MultipleRegressionConfig configures the multi-predictor OLS models
type MultipleRegressionConfig struct {
	Response     string     `mapstructure:"response" yaml:"response"`
	CleanColumns []string   `mapstructure:"clean-columns" yaml:"clean-columns"`
	Models       [][]string `mapstructure:"models" yaml:"models"`
}

// DefaultConfig returns the settings the wine studies were first run with
func DefaultConfig() Config {
	return Config{
		Seed:       sampling.DefaultSeed,
		SampleSize: 100,
		Multiplier: outliers.DefaultMultiplier,
		Explore: ExploreConfig{
			Column:           "density",
			HypothesizedMean: 1.000,
			Confidence:       0.99,
			Thresholds: map[string]float64{
				"red":   0.9967,
				"white": 0.9940,
			},
			HypothesizedProportion: 0.5,
		},
		MeanVariance: MeanVarianceConfig{
			Confidence: 0.99,
			Pairs: [][]string{
				{"density", "residual sugar"},
				{"density", "alcohol"},
			},
		},
		Correlation: CorrelationConfig{
			Confidence: 0.95,
			Pairing:    PairTail,
			Tail:       90,
			Pairs: [][]string{
				{"density", "residual sugar"},
				{"density", "alcohol"},
			},
		},
		SimpleRegression: SimpleRegressionConfig{
			Predictor: "density",
			Response:  "quality",
			GraphsDir: "graphs",
		},
		MultipleRegression: MultipleRegressionConfig{
			Response:     "quality",
			CleanColumns: []string{"density", "residual sugar", "alcohol"},
			Models: [][]string{
				{"density", "residual sugar"},
				{"density", "alcohol"},
				{"density", "residual sugar", "alcohol"},
			},
		},
	}
}

// Validate checks the settings that would otherwise fail deep inside a study
func (c Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", c.SampleSize)
	}
	if c.Multiplier <= 0 {
		return fmt.Errorf("IQR multiplier must be positive, got %g", c.Multiplier)
	}
	for name, level := range map[string]float64{
		"explore":   c.Explore.Confidence,
		"means":     c.MeanVariance.Confidence,
		"correlate": c.Correlation.Confidence,
	} {
		if !(level > 0 && level < 1) {
			return fmt.Errorf("%s confidence must be in (0, 1), got %g", name, level)
		}
	}
	for _, pairs := range [][][]string{c.MeanVariance.Pairs, c.Correlation.Pairs} {
		for _, pair := range pairs {
			if len(pair) != 2 {
				return fmt.Errorf("column pair %v must name exactly two columns", pair)
			}
		}
	}
	switch c.Correlation.Pairing {
	case PairTail, PairRows:
	default:
		return fmt.Errorf("unknown pairing %q (want %s or %s)", c.Correlation.Pairing, PairTail, PairRows)
	}
	if len(c.MultipleRegression.Models) == 0 {
		return fmt.Errorf("at least one regression model is required")
	}
	for i, model := range c.MultipleRegression.Models {
		if len(model) == 0 {
			return fmt.Errorf("regression model %d has no predictors", i+1)
		}
	}
	return nil
}
