package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/peekknuf/wineqa/internal/profiler"
)

// qualityLabel grades a dataset by the share of cells outside the IQR fences
func qualityLabel(q profiler.Quality) string {
	switch {
	case q.OutlierPercentage > 15:
		return "Poor"
	case q.OutlierPercentage > 5:
		return "Fair"
	default:
		return "Good"
	}
}

func profilesText(profiles []profiler.Profile) string {
	var output strings.Builder

	var totalRows, totalCols, outlierCells, totalCells int
	var totalTime time.Duration
	for _, p := range profiles {
		totalRows += p.RowCount
		totalCols += len(p.Columns)
		outlierCells += p.Quality.OutlierCells
		totalCells += p.Quality.TotalCells
		totalTime += p.ProcessingTime
	}

	output.WriteString("=== DATA QUALITY SUMMARY ===\n")
	output.WriteString(fmt.Sprintf("Total files processed: %d\n", len(profiles)))
	output.WriteString(fmt.Sprintf("Total processing time: %v\n", totalTime.Round(time.Microsecond)))
	output.WriteString(fmt.Sprintf("Total rows processed: %d\n", totalRows))
	output.WriteString(fmt.Sprintf("Total columns analyzed: %d\n", totalCols))
	if totalCells > 0 {
		output.WriteString(fmt.Sprintf("Outlier cells: %d (%.1f%%)\n", outlierCells, float64(outlierCells)/float64(totalCells)*100))
	}
	output.WriteString("\n")

	output.WriteString("=== PER-FILE ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("%-40s %10s %10s %10s %12s %12s\n", "File", "Size", "Rows", "Columns", "Outlier Rate", "Data Quality"))
	output.WriteString(strings.Repeat("-", 100) + "\n")
	for _, p := range profiles {
		filename := filepath.Base(p.Path)
		if p.Path == "" {
			filename = p.Name
		}
		if len(filename) > 37 {
			filename = filename[:34] + "..."
		}
		output.WriteString(fmt.Sprintf("%-40s %10s %10d %10d %11.1f%% %12s\n",
			filename, humanize.Bytes(uint64(p.Size)), p.RowCount, len(p.Columns),
			p.Quality.OutlierPercentage, qualityLabel(p.Quality)))
	}
	output.WriteString("\n")

	output.WriteString("=== DETAILED ANALYSIS ===\n")
	for _, p := range profiles {
		name := p.Name
		if p.Path != "" {
			name = filepath.Base(p.Path)
		}
		output.WriteString(fmt.Sprintf("File: %s\n", name))
		output.WriteString(fmt.Sprintf("%-22s %6s %10s %10s %10s %10s %10s %10s %10s %8s\n",
			"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "outliers"))
		for _, col := range p.Columns {
			output.WriteString(fmt.Sprintf("%-22s %6d %10.4g %10.4g %10.4g %10.4g %10.4g %10.4g %10.4g %8d\n",
				col.Name, col.Count, col.Mean, col.Std, col.Min, col.Q25, col.Q50, col.Q75, col.Max, col.Outliers))
		}
		if p.Quality.ColumnsWithOutliers > 0 {
			output.WriteString(fmt.Sprintf("  %d columns have values outside the IQR fences\n", p.Quality.ColumnsWithOutliers))
		}
		output.WriteString("\n")
	}
	return output.String()
}
