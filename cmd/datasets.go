package cmd

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/dataset"
)

func newProgressBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] "+description),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

// loadOptions builds the CSV options from the --delimiter setting
func loadOptions() (dataset.LoadOptions, error) {
	opts := dataset.DefaultLoadOptions()
	delim := viper.GetString("delimiter")
	if delim == "" {
		return opts, nil
	}
	if delim == `\t` {
		delim = "\t"
	}
	r, size := utf8.DecodeRuneInString(delim)
	if size != len(delim) || !dataset.IsValidDelimiter(r) {
		return opts, fmt.Errorf("unsupported delimiter %q", delim)
	}
	opts.Delimiter = r
	return opts, nil
}

// loadDatasets discovers and reads the red and white datasets of --data-dir
func loadDatasets(cmd *cobra.Command) (map[connectors.Variant]*dataset.Frame, error) {
	dir := dataDir()
	files, err := connectors.DiscoverDatasets(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover datasets: %w", err)
	}
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}

	bar := newProgressBar(cmd.ErrOrStderr(), len(files), "Loading datasets...")
	frames, err := dataset.LoadAll(cmd.Context(), files, opts, func(variant connectors.Variant, frame *dataset.Frame) {
		_ = bar.Add(1)
		logger.Info("loaded dataset",
			zap.String("dataset", string(variant)),
			zap.String("path", frame.Path),
			zap.String("size", humanize.Bytes(uint64(frame.Size))),
			zap.Int("rows", frame.Len()),
			zap.Int("columns", len(frame.Columns)))
	})
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	return frames, nil
}
