package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/peekknuf/wineqa/internal/analysis"
	"github.com/peekknuf/wineqa/internal/report"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "wineqa",
	Short: "Wine quality statistics CLI",
	Long: `Exploratory statistics on the red and white wine quality datasets:
descriptive profiles, hypothesis tests, correlation and OLS regression`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command and exits 1 on error
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := analysis.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.wineqa.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data",
		"Directory holding the red and white wine CSV files")
	rootCmd.PersistentFlags().String("delimiter", "",
		"Field delimiter (default: auto-detect)")
	rootCmd.PersistentFlags().Uint64("seed", defaults.Seed,
		"Seed for every sample draw")
	rootCmd.PersistentFlags().Int("sample-size", defaults.SampleSize,
		"Rows sampled per column before outlier removal")
	rootCmd.PersistentFlags().String("format", string(report.Text),
		"Output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn",
		"Log level (debug, info, warn, error)")

	for _, name := range []string{"data-dir", "delimiter", "seed", "sample-size", "format", "log-level"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads the config file and WINEQA_* environment variables
func initConfig() error {
	if err := registerDefaults(); err != nil {
		return err
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wineqa")
	}

	viper.SetEnvPrefix("wineqa")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		// A wineqa.yaml in the working directory is the fallback
		viper.SetConfigName("wineqa")
		if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// initLogger builds the process logger: console encoding on stderr
func initLogger() error {
	level, err := zapcore.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = built
	return nil
}

// registerDefaults seeds viper with every default study setting. Config files,
// env vars and flags then override single keys, and a list value replaces the
// default list whole.
func registerDefaults() error {
	raw, err := yaml.Marshal(analysis.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	var defaults map[string]any
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		return fmt.Errorf("decoding default config: %w", err)
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	return nil
}

// studyConfig decodes the study configuration from viper
func studyConfig() (analysis.Config, error) {
	var cfg analysis.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return analysis.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

func outputFormat() (report.Format, error) {
	return report.ParseFormat(viper.GetString("format"))
}

func dataDir() string {
	return viper.GetString("data-dir")
}
