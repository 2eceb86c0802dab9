package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datascribe/internal/dataset"
)

func numCol(name string, vals []float64, missing []bool) dataset.Column {
	if missing == nil {
		missing = make([]bool, len(vals))
	}
	return dataset.Column{Name: name, Kind: dataset.KindNumeric, Floats: vals, Missing: missing}
}

func textCol(name string, vals []string) dataset.Column {
	return dataset.Column{Name: name, Kind: dataset.KindText, Texts: vals, Missing: make([]bool, len(vals))}
}

func TestDescribe(t *testing.T) {
	nan := math.NaN()
	ds := &dataset.Dataset{
		Rows: 5,
		Columns: []dataset.Column{
			numCol("v", []float64{1, 2, 3, 4, nan}, []bool{false, false, false, false, true}),
			textCol("label", []string{"a", "b", "a", "c", "b"}),
		},
	}
	table := Describe(ds)
	require.Len(t, table.Rows, 1, "only numeric columns get a row")

	r := table.Rows[0]
	assert.Equal(t, "v", r.Name)
	assert.Equal(t, 4, r.Count)
	assert.Equal(t, 1, r.Missing)
	assert.InDelta(t, 2.5, r.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), r.Std, 1e-12)
	assert.Equal(t, 1.0, r.Min)
	assert.InDelta(t, 1.75, r.Q25, 1e-12)
	assert.InDelta(t, 2.5, r.Median, 1e-12)
	assert.InDelta(t, 3.25, r.Q75, 1e-12)
	assert.Equal(t, 4.0, r.Max)
}

func TestDescribeNoNumericColumns(t *testing.T) {
	ds := &dataset.Dataset{
		Rows:    2,
		Columns: []dataset.Column{textCol("a", []string{"x", "y"})},
	}
	assert.True(t, Describe(ds).Empty())
}

func TestDescribeAllMissingColumn(t *testing.T) {
	nan := math.NaN()
	ds := &dataset.Dataset{
		Rows: 3,
		Columns: []dataset.Column{
			numCol("gone", []float64{nan, nan, nan}, []bool{true, true, true}),
		},
	}
	table := Describe(ds)
	require.Len(t, table.Rows, 1)
	r := table.Rows[0]
	assert.Equal(t, 0, r.Count)
	assert.Equal(t, 3, r.Missing)
	assert.True(t, math.IsNaN(r.Mean))
	assert.True(t, math.IsNaN(r.Median))
}

func TestDescribeSingleValue(t *testing.T) {
	ds := &dataset.Dataset{
		Rows:    1,
		Columns: []dataset.Column{numCol("one", []float64{7}, nil)},
	}
	r := Describe(ds).Rows[0]
	assert.Equal(t, 7.0, r.Mean)
	assert.True(t, math.IsNaN(r.Std), "std undefined for a single observation")
	assert.Equal(t, 7.0, r.Median)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-12)
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestCorrelationMatrix(t *testing.T) {
	nan := math.NaN()
	ds := &dataset.Dataset{
		Rows: 4,
		Columns: []dataset.Column{
			numCol("x", []float64{1, 2, 3, 4}, nil),
			numCol("y", []float64{2, 4, 6, 8}, nil),
			numCol("z", []float64{4, 3, 2, 1}, nil),
			numCol("c", []float64{5, 5, 5, 5}, nil),
			numCol("m", []float64{1, nan, 3, 4}, []bool{false, true, false, false}),
		},
	}
	idx := []int{0, 1, 2, 3, 4}
	mat := CorrelationMatrix(ds, idx)
	require.Len(t, mat, 5)

	for i := range mat {
		assert.Equal(t, 1.0, mat[i][i], "diagonal must be 1")
	}
	assert.InDelta(t, 1.0, mat[0][1], 1e-12, "perfect positive correlation")
	assert.InDelta(t, -1.0, mat[0][2], 1e-12, "perfect negative correlation")
	assert.Equal(t, 0.0, mat[0][3], "zero-variance pair yields 0")
	// Pairwise-complete: the missing row is dropped, leaving x=[1,3,4] m=[1,3,4].
	assert.InDelta(t, 1.0, mat[0][4], 1e-12)
	assert.Equal(t, mat[1][0], mat[0][1], "matrix must be symmetric")
}

func TestCorrelationMatrixTooFewRows(t *testing.T) {
	ds := &dataset.Dataset{
		Rows: 1,
		Columns: []dataset.Column{
			numCol("x", []float64{1}, nil),
			numCol("y", []float64{2}, nil),
		},
	}
	mat := CorrelationMatrix(ds, []int{0, 1})
	assert.Equal(t, 0.0, mat[0][1])
}

func TestSummaryText(t *testing.T) {
	ds := &dataset.Dataset{
		Rows: 3,
		Columns: []dataset.Column{
			numCol("v", []float64{1, 2, 3}, nil),
			textCol("label", []string{"a", "b", "c"}),
		},
	}
	text := SummaryText(ds, Describe(ds))
	assert.Contains(t, text, "Rows: 3, Columns: 2")
	assert.Contains(t, text, "Numeric columns: 1 | Categorical/text columns: 1")
	assert.Contains(t, text, "Total missing values: 0")
	assert.Contains(t, text, "Sample means: v=2")
}
