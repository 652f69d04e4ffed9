package profiler

// Quality summarises how much of a dataset the IQR rule would discard
type Quality struct {
	TotalRows           int     `json:"totalRows" yaml:"totalRows"`
	TotalCells          int     `json:"totalCells" yaml:"totalCells"`
	OutlierCells        int     `json:"outlierCells" yaml:"outlierCells"`
	OutlierPercentage   float64 `json:"outlierPercentage" yaml:"outlierPercentage"`
	ColumnsWithOutliers int     `json:"columnsWithOutliers" yaml:"columnsWithOutliers"`
}

// CalculateQuality aggregates per-column outlier counts
func CalculateQuality(p Profile) Quality {
	q := Quality{
		TotalRows: p.RowCount,
	}
	for _, col := range p.Columns {
		q.TotalCells += col.Count
		q.OutlierCells += col.Outliers
		if col.Outliers > 0 {
			q.ColumnsWithOutliers++
		}
	}
	if q.TotalCells > 0 {
		q.OutlierPercentage = float64(q.OutlierCells) / float64(q.TotalCells) * 100
	}
	return q
}
