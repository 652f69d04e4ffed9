// Package outliers implements Tukey-fence cleaning of numeric columns.
package outliers

import (
	"fmt"
	"math"
	"sort"

	"github.com/peekknuf/wineqa/internal/dataset"
)

// DefaultMultiplier is the conventional 1.5·IQR fence width
const DefaultMultiplier = 1.5

// Quantile returns the p-quantile of sorted data, interpolating linearly between
// the closest ranks at h = (n-1)p. NaN for empty input.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Fences holds the quartiles and acceptance bounds of a column
type Fences struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within the fences, bounds included
func (f Fences) Contains(v float64) bool {
	return v >= f.Lower && v <= f.Upper
}

// ComputeFences returns the quartiles of x and the bounds Q1-k·IQR, Q3+k·IQR
func ComputeFences(x []float64, k float64) Fences {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - k*iqr,
		Upper: q3 + k*iqr,
	}
}

// Result is the outcome of cleaning one column
type Result struct {
	Values  []float64 `json:"-"`
	Kept    []int     `json:"-"` // Positions of Values in the input
	Removed int       `json:"removed"`
	Fences  Fences    `json:"fences"`
}

// Filter drops every value of x outside the k·IQR fences, preserving order
func Filter(x []float64, k float64) Result {
	fences := ComputeFences(x, k)
	res := Result{
		Values: make([]float64, 0, len(x)),
		Kept:   make([]int, 0, len(x)),
		Fences: fences,
	}
	for i, v := range x {
		if fences.Contains(v) {
			res.Values = append(res.Values, v)
			res.Kept = append(res.Kept, i)
		}
	}
	res.Removed = len(x) - len(res.Values)
	return res
}

// ColumnRemoval records how many rows a single pass of FilterRows dropped
type ColumnRemoval struct {
	Column  string `json:"column"`
	Removed int    `json:"removed"`
}

// FilterRows removes whole rows column by column. Each pass computes fences on
// the rows that survived the previous passes.
func FilterRows(frame *dataset.Frame, columns []string, k float64) (*dataset.Frame, []ColumnRemoval, error) {
	current := frame
	removals := make([]ColumnRemoval, 0, len(columns))
	for _, col := range columns {
		values, err := current.Column(col)
		if err != nil {
			return nil, nil, err
		}
		res := Filter(values, k)
		removals = append(removals, ColumnRemoval{Column: col, Removed: res.Removed})
		if res.Removed == 0 {
			continue
		}
		current, err = current.Rows(res.Kept)
		if err != nil {
			return nil, nil, fmt.Errorf("filtering %s: %w", col, err)
		}
	}
	return current, removals, nil
}

// TailAlign trims two cleaned columns to a common length by keeping their last n
// values. n <= 0, or n larger than either column, uses the shorter length.
func TailAlign(a, b []float64, n int) ([]float64, []float64) {
	m := min(len(a), len(b))
	if n <= 0 || n > m {
		n = m
	}
	return a[len(a)-n:], b[len(b)-n:]
}

// Intersect pairs two cleaned columns on the input positions both kept
func Intersect(a, b Result) ([]float64, []float64) {
	pos := make(map[int]int, len(b.Kept))
	for i, row := range b.Kept {
		pos[row] = i
	}
	var xs, ys []float64
	for i, row := range a.Kept {
		if j, ok := pos[row]; ok {
			xs = append(xs, a.Values[i])
			ys = append(ys, b.Values[j])
		}
	}
	return xs, ys
}
