package profiler

import (
	"time"

	"github.com/peekknuf/wineqa/internal/dataset"
)

// Profile is the describe output for one dataset
type Profile struct {
	Name           string        `json:"name" yaml:"name"`
	Path           string        `json:"path" yaml:"path"`
	Size           int64         `json:"size" yaml:"size"`
	RowCount       int           `json:"rowCount" yaml:"rowCount"`
	Columns        []ColumnStats `json:"columns" yaml:"columns"`
	Quality        Quality       `json:"quality" yaml:"quality"`
	ProcessingTime time.Duration `json:"processingTime" yaml:"processingTime"`
}

// ProfileFrame describes every column of frame in header order
func ProfileFrame(frame *dataset.Frame) Profile {
	startTime := time.Now()

	profile := Profile{
		Name:     frame.Name,
		Path:     frame.Path,
		Size:     frame.Size,
		RowCount: frame.Len(),
		Columns:  make([]ColumnStats, 0, len(frame.Columns)),
	}

	for _, name := range frame.Columns {
		values, err := frame.Column(name)
		if err != nil {
			// Columns come from the frame's own header
			continue
		}
		profile.Columns = append(profile.Columns, Describe(name, values))
	}

	profile.Quality = CalculateQuality(profile)
	profile.ProcessingTime = time.Since(startTime)
	return profile
}
