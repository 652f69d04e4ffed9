package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peekknuf/wineqa/internal/analysis"
	"github.com/peekknuf/wineqa/internal/report"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "One-sample t-test and proportion test on a single column",
	Long: `Samples the density of each dataset, removes IQR outliers, tests the mean
against a hypothesized value and the share of wines below a per-dataset
threshold against a hypothesized proportion.

Examples:
  wineqa explore --data-dir ./data
  wineqa explore --hypothesized-mean 0.995 --confidence 0.95`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, analysis.StudyExplore)
	},
}

var meansCmd = &cobra.Command{
	Use:   "means",
	Short: "Welch t-tests and F-tests between column pairs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, analysis.StudyMeanVariance)
	},
}

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Pearson correlation between column pairs",
	Long: `Computes Pearson's r with a Fisher-z confidence interval for each column pair.
Columns are cleaned independently; --pairing tail keeps the last --tail values
of each, --pairing rows keeps only rows retained in both.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, analysis.StudyCorrelation)
	},
}

var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Simple OLS of quality on normalized density, with plots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, analysis.StudySimpleRegression)
	},
}

var multiregressCmd = &cobra.Command{
	Use:   "multiregress",
	Short: "Multiple OLS models of quality",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, analysis.StudyMultipleRegression)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every study",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, format, err := newRunner(cmd)
		if err != nil {
			return err
		}

		bar := newProgressBar(cmd.ErrOrStderr(), len(analysis.Studies), "Running studies...")
		rep, err := runner.All(cmd.Context(), func(study string) {
			_ = bar.Add(1)
			logger.Info("study finished", zap.String("study", study))
		})
		_ = bar.Finish()
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), format, rep)
	},
}

func init() {
	defaults := analysis.DefaultConfig()

	rootCmd.AddCommand(exploreCmd, meansCmd, correlateCmd, regressCmd, multiregressCmd, allCmd)

	exploreCmd.Flags().Float64("confidence", defaults.Explore.Confidence,
		"Confidence level of the mean interval")
	exploreCmd.Flags().Float64("hypothesized-mean", defaults.Explore.HypothesizedMean,
		"Mean under the null hypothesis")
	bindFlags(exploreCmd, "explore")

	meansCmd.Flags().Float64("confidence", defaults.MeanVariance.Confidence,
		"Confidence level of the t and F intervals")
	bindFlags(meansCmd, "means")

	correlateCmd.Flags().Float64("confidence", defaults.Correlation.Confidence,
		"Confidence level of the correlation interval")
	correlateCmd.Flags().String("pairing", defaults.Correlation.Pairing,
		"How cleaned columns are paired (tail, rows)")
	correlateCmd.Flags().Int("tail", defaults.Correlation.Tail,
		"Values kept from the end of each column with --pairing tail")
	bindFlags(correlateCmd, "correlate")

	regressCmd.Flags().String("graphs-dir", defaults.SimpleRegression.GraphsDir,
		"Directory for regression plots (empty disables plotting)")
	bindFlags(regressCmd, "regress")
}

// bindFlags binds every flag defined on cmd to the viper key section.flag
func bindFlags(cmd *cobra.Command, section string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(section+"."+f.Name, f)
	})
}

func newRunner(cmd *cobra.Command) (*analysis.Runner, report.Format, error) {
	format, err := outputFormat()
	if err != nil {
		return nil, "", err
	}
	cfg, err := studyConfig()
	if err != nil {
		return nil, "", err
	}
	frames, err := loadDatasets(cmd)
	if err != nil {
		return nil, "", err
	}
	runner, err := analysis.NewRunner(cfg, frames, logger)
	if err != nil {
		return nil, "", err
	}
	return runner, format, nil
}

func runStudy(cmd *cobra.Command, study string) error {
	runner, format, err := newRunner(cmd)
	if err != nil {
		return err
	}
	var rep analysis.Report
	if err := runner.RunStudy(study, &rep); err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), format, &rep)
}
