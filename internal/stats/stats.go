// Package stats computes the descriptive statistics and correlation matrix
// the report pages are built from.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/datascribe/internal/dataset"
)

// RowStats is one statistics-table row describing a numeric column.
type RowStats struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q25     float64 `json:"q25"`
	Median  float64 `json:"median"`
	Q75     float64 `json:"q75"`
	Max     float64 `json:"max"`
	Missing int     `json:"missing"`
}

// Table holds one row per numeric-kind column, in column order. A dataset
// with no numeric columns yields an empty table, never an error.
type Table struct {
	Rows []RowStats `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Describe computes descriptive statistics for every numeric-kind column.
// The column set follows the loaded kind, not the categorical heuristic, so
// low-cardinality numeric columns still get a row. An all-missing column
// yields NaN moments with Count 0.
func Describe(ds *dataset.Dataset) Table {
	var t Table
	for i := range ds.Columns {
		c := &ds.Columns[i]
		if c.Kind != dataset.KindNumeric {
			continue
		}
		vals := c.NonMissing()
		r := RowStats{Name: c.Name, Count: len(vals), Missing: c.MissingCount()}
		if len(vals) == 0 {
			nan := math.NaN()
			r.Mean, r.Std, r.Min, r.Q25, r.Median, r.Q75, r.Max = nan, nan, nan, nan, nan, nan, nan
		} else {
			sorted := append([]float64(nil), vals...)
			sort.Float64s(sorted)
			r.Mean = stat.Mean(vals, nil)
			if len(vals) > 1 {
				r.Std = math.Sqrt(stat.Variance(vals, nil))
			} else {
				r.Std = math.NaN()
			}
			r.Min = sorted[0]
			r.Q25 = Quantile(sorted, 0.25)
			r.Median = Quantile(sorted, 0.5)
			r.Q75 = Quantile(sorted, 0.75)
			r.Max = sorted[len(sorted)-1]
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// Quantile interpolates the q-th quantile of ascending-sorted values using
// linear interpolation between the two nearest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// CorrelationMatrix computes pairwise Pearson correlation over the given
// column indexes using pairwise-complete observations: rows missing in either
// column are dropped per pair. Pairs with fewer than two complete rows or
// zero variance yield 0. The diagonal is 1 and values are clamped to [-1, 1].
func CorrelationMatrix(ds *dataset.Dataset, idx []int) [][]float64 {
	n := len(idx)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pairCorrelation(&ds.Columns[idx[a]], &ds.Columns[idx[b]])
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return mat
}

func pairCorrelation(x, y *dataset.Column) float64 {
	var xs, ys []float64
	for i := range x.Missing {
		if x.Missing[i] || y.Missing[i] {
			continue
		}
		xs = append(xs, x.Floats[i])
		ys = append(ys, y.Floats[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// SummaryText renders the report's opening summary block: shape, kind
// counts, total missingness, and a sample of column means.
func SummaryText(ds *dataset.Dataset, t Table) string {
	numeric := len(ds.NumericIndexes())
	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n", ds.Rows, len(ds.Columns))
	fmt.Fprintf(&b, "Numeric columns: %d | Categorical/text columns: %d\n", numeric, len(ds.Columns)-numeric)
	fmt.Fprintf(&b, "Total missing values: %d", ds.TotalMissing())
	var parts []string
	for _, r := range t.Rows {
		if math.IsNaN(r.Mean) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.4g", r.Name, r.Mean))
		if len(parts) == 8 {
			break
		}
	}
	if len(parts) > 0 {
		b.WriteString("\nSample means: " + strings.Join(parts, "; "))
	}
	return b.String()
}
