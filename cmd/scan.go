package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/peekknuf/wineqa/internal/connectors"
	"github.com/peekknuf/wineqa/internal/dataset"
)

var (
	recursive bool
	verbose   bool
	minSize   int64
	maxSize   int64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the data directory for wine datasets",
	Long: `Scan the data directory, list every CSV file with its size and report which
file each study will read as the red and white dataset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir()
		files, err := connectors.DiscoverFiles(dir, "csv", connectors.DiscoveryOptions{
			Recursive: recursive,
			MinSize:   minSize,
			MaxSize:   maxSize,
		})
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		opts, err := loadOptions()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d CSV files in %s\n", len(files), dir)
		for _, file := range files {
			fmt.Fprintf(out, "\nFile: %s\n", file.Path)
			fmt.Fprintf(out, "- Size: %s\n", humanize.Bytes(uint64(file.Size)))
			fmt.Fprintf(out, "- Modified: %s\n", humanize.Time(file.Modified))

			if verbose {
				frame, err := dataset.Load(file.Path, opts)
				if err != nil {
					fmt.Fprintf(out, "- Error: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "- Rows: %s\n", humanize.Comma(int64(frame.Len())))
				fmt.Fprintf(out, "- Columns: %s\n", strings.Join(frame.Columns, ", "))
			}
		}

		datasets, err := connectors.DiscoverDatasets(dir)
		if err != nil {
			fmt.Fprintf(out, "\nDatasets: %v\n", err)
			return nil
		}
		fmt.Fprintln(out, "\nDatasets:")
		for _, variant := range connectors.Variants {
			file := datasets[variant]
			fmt.Fprintf(out, "- %s: %s (%s, modified %s)\n", variant.Title(), filepath.Base(file.Path),
				humanize.Bytes(uint64(file.Size)), file.Modified.Format(time.DateOnly))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Load each file and show its row count and columns")
	scanCmd.Flags().Int64Var(&minSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&maxSize, "max-size", 0,
		"Maximum file size in bytes")
}
