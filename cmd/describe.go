package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/dataset"
	"github.com/peekknuf/wineqa/internal/profiler"
	"github.com/peekknuf/wineqa/internal/report"
)

var (
	describeWorkers   int
	outputFile        string
	describeRecursive bool
)

var describeCmd = &cobra.Command{
	Use:   "describe [file or directory]",
	Short: "Generate descriptive statistics for CSV files",
	Long: `Generate descriptive statistics for every numeric column of one or more
CSV files: count, mean, standard deviation, quartiles, skewness, kurtosis
and the number of values outside the IQR fences.

Examples:
  wineqa describe data/winequality-red.csv           # Single file
  wineqa describe data/ --recursive                  # Directory processing
  wineqa describe data/ --workers 2                  # Limit CPU usage
  wineqa describe data/ --format json                # Machine readable
  wineqa describe data/ --output results.txt         # Save output`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		targetPath := dataDir()
		if len(args) == 1 {
			targetPath = args[0]
		}

		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", targetPath, err)
		}

		var files []connectors.FileMeta
		if fileInfo.IsDir() {
			files, err = connectors.DiscoverFiles(targetPath, "csv", connectors.DiscoveryOptions{
				Recursive: describeRecursive,
			})
			if err != nil {
				return fmt.Errorf("failed to discover files: %w", err)
			}
		} else {
			if !strings.EqualFold(filepath.Ext(targetPath), ".csv") {
				return fmt.Errorf("file must be a CSV file: %s", targetPath)
			}
			files = []connectors.FileMeta{{Path: targetPath, Size: fileInfo.Size(), Modified: fileInfo.ModTime()}}
		}

		profiles, err := describeFiles(cmd, files)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := report.Render(&buf, format, profiles); err != nil {
			return err
		}
		if outputFile != "" {
			if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write to output file %s: %w", outputFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", outputFile)
			return nil
		}
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().IntVar(&describeWorkers, "workers", 0,
		"Number of parallel workers (default: auto-detect CPU cores)")
	describeCmd.Flags().StringVar(&outputFile, "output", "",
		"Output file to save results (default: stdout)")
	describeCmd.Flags().BoolVar(&describeRecursive, "recursive", false,
		"Process directories recursively")
}

// describeFiles loads and profiles files in parallel, preserving their order
func describeFiles(cmd *cobra.Command, files []connectors.FileMeta) ([]profiler.Profile, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}

	workers := describeWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bar := newProgressBar(cmd.ErrOrStderr(), len(files), "Describing files...")
	defer func() { _ = bar.Finish() }()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)

	var mu sync.Mutex
	profiles := make([]profiler.Profile, len(files))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := dataset.Load(file.Path, opts)
			if err != nil {
				return err
			}
			frame.Name = strings.TrimSuffix(filepath.Base(file.Path), filepath.Ext(file.Path))
			profile := profiler.ProfileFrame(frame)

			mu.Lock()
			profiles[i] = profile
			_ = bar.Add(1)
			mu.Unlock()

			logger.Debug("described file",
				zap.String("path", file.Path),
				zap.Int("rows", profile.RowCount),
				zap.Duration("elapsed", profile.ProcessingTime))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}
