// Package analysis runs the wine studies: sampling, IQR cleaning and the
// statistical routine each study reports on.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/dataset"
	"github.com/peekknuf/wineqa/internal/outliers"
	"github.com/peekknuf/wineqa/internal/sampling"
)

// Removal records how many sampled values the IQR rule dropped
type Removal struct {
	Label   string `json:"label" yaml:"label"`
	Removed int    `json:"removed" yaml:"removed"`
	Kept    int    `json:"kept" yaml:"kept"`
}

// Runner executes studies against the loaded datasets
type Runner struct {
	cfg     Config
	frames  map[connectors.Variant]*dataset.Frame
	sampler sampling.Sampler
	logger  *zap.Logger
}

// NewRunner validates cfg and prepares a runner. A nil logger discards logs.
func NewRunner(cfg Config, frames map[connectors.Variant]*dataset.Frame, logger *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no datasets loaded")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		frames:  frames,
		sampler: sampling.New(cfg.Seed),
		logger:  logger,
	}, nil
}

// Config returns the runner's settings
func (r *Runner) Config() Config {
	return r.cfg
}

// variants returns the loaded variants in report order
func (r *Runner) variants() []connectors.Variant {
	var out []connectors.Variant
	for _, v := range connectors.Variants {
		if _, ok := r.frames[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// label builds the "Red wine density" style name used in printed output
func label(variant connectors.Variant, column string) string {
	return fmt.Sprintf("%s wine %s", variant.Title(), column)
}

// cleanedColumn is one sampled and IQR-filtered column
type cleanedColumn struct {
	Name    string
	Rows    []int // Dataset rows of the raw sample
	Result  outliers.Result
	Removal Removal
}

// sampleColumn draws the configured sample of one column
func (r *Runner) sampleColumn(variant connectors.Variant, column string) ([]float64, []int, error) {
	frame := r.frames[variant]
	values, err := frame.Column(column)
	if err != nil {
		return nil, nil, err
	}
	sample, rows, err := r.sampler.Sample(values, r.cfg.SampleSize)
	if err != nil {
		return nil, nil, fmt.Errorf("sampling %s: %w", label(variant, column), err)
	}
	return sample, rows, nil
}

// clean samples one column and applies the IQR rule to that sample alone
func (r *Runner) clean(variant connectors.Variant, column string) (cleanedColumn, error) {
	sample, rows, err := r.sampleColumn(variant, column)
	if err != nil {
		return cleanedColumn{}, err
	}
	res := outliers.Filter(sample, r.cfg.Multiplier)
	c := cleanedColumn{
		Name:   column,
		Rows:   rows,
		Result: res,
		Removal: Removal{
			Label:   label(variant, column),
			Removed: res.Removed,
			Kept:    len(res.Values),
		},
	}
	r.logger.Debug("removed outliers",
		zap.String("dataset", string(variant)),
		zap.String("column", column),
		zap.Int("removed", res.Removed),
		zap.Float64("lower", res.Fences.Lower),
		zap.Float64("upper", res.Fences.Upper))
	return c, nil
}

// cleanAll cleans each distinct column once per variant, in first-seen order
func (r *Runner) cleanAll(variant connectors.Variant, columns []string) (map[string]cleanedColumn, []Removal, error) {
	cleaned := make(map[string]cleanedColumn, len(columns))
	var removals []Removal
	for _, col := range columns {
		if _, done := cleaned[col]; done {
			continue
		}
		c, err := r.clean(variant, col)
		if err != nil {
			return nil, nil, err
		}
		cleaned[col] = c
		removals = append(removals, c.Removal)
	}
	return cleaned, removals, nil
}

// Report bundles the results of every study
type Report struct {
	Explore            *ExploreResult            `json:"explore,omitempty" yaml:"explore,omitempty"`
	MeanVariance       *MeanVarianceResult       `json:"means,omitempty" yaml:"means,omitempty"`
	Correlation        *CorrelationResult        `json:"correlate,omitempty" yaml:"correlate,omitempty"`
	SimpleRegression   *SimpleRegressionResult   `json:"regress,omitempty" yaml:"regress,omitempty"`
	MultipleRegression *MultipleRegressionResult `json:"multiregress,omitempty" yaml:"multiregress,omitempty"`
}

// Study names accepted by RunStudy
const (
	StudyExplore            = "explore"
	StudyMeanVariance       = "means"
	StudyCorrelation        = "correlate"
	StudySimpleRegression   = "regress"
	StudyMultipleRegression = "multiregress"
)

// Studies lists every study in report order
var Studies = []string{StudyExplore, StudyMeanVariance, StudyCorrelation, StudySimpleRegression, StudyMultipleRegression}

// RunStudy runs one study by name and stores its result in report
func (r *Runner) RunStudy(name string, report *Report) error {
	var err error
	switch name {
	case StudyExplore:
		report.Explore, err = r.Explore()
	case StudyMeanVariance:
		report.MeanVariance, err = r.MeanVariance()
	case StudyCorrelation:
		report.Correlation, err = r.Correlate()
	case StudySimpleRegression:
		report.SimpleRegression, err = r.SimpleRegression()
	case StudyMultipleRegression:
		report.MultipleRegression, err = r.MultipleRegression()
	default:
		return fmt.Errorf("unknown study %q (want one of %s)", name, strings.Join(Studies, ", "))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// All runs every study concurrently. done, when set, is called as each study
// finishes.
func (r *Runner) All(ctx context.Context, done func(study string)) (*Report, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	report := &Report{}
	for _, study := range Studies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var partial Report
			if err := r.RunStudy(study, &partial); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			merge(report, &partial)
			if done != nil {
				done(study)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func merge(dst, src *Report) {
	if src.Explore != nil {
		dst.Explore = src.Explore
	}
	if src.MeanVariance != nil {
		dst.MeanVariance = src.MeanVariance
	}
	if src.Correlation != nil {
		dst.Correlation = src.Correlation
	}
	if src.SimpleRegression != nil {
		dst.SimpleRegression = src.SimpleRegression
	}
	if src.MultipleRegression != nil {
		dst.MultipleRegression = src.MultipleRegression
	}
}
