// Package dataset provides the in-memory columnar structure the report
// pipeline works over, plus loaders for delimited text and XLSX workbooks
// and the numeric/categorical column classifier.
package dataset

import "strconv"

// Kind is the semantic type a column was loaded with.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Column holds one named column. Floats and Texts run parallel to the
// dataset's rows; Missing is the explicit absent-value sentinel and is
// authoritative for both representations. For a numeric column Floats[i]
// is NaN wherever Missing[i] is true; for a text column Texts[i] is empty.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Texts   []string
	Missing []bool
}

// MissingCount returns the number of absent entries.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// NonMissing returns the numeric values with absent entries dropped, in row
// order. It returns nil for text columns.
func (c *Column) NonMissing() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if c.Missing[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Labels returns the non-missing values rendered as strings, in row order.
// Numeric values use minimal formatting so integral values read as integers.
func (c *Column) Labels() []string {
	out := make([]string, 0, len(c.Missing))
	for i, m := range c.Missing {
		if m {
			continue
		}
		if c.Kind == KindText {
			out = append(out, c.Texts[i])
		} else {
			out = append(out, strconv.FormatFloat(c.Floats[i], 'g', -1, 64))
		}
	}
	return out
}

// DistinctNonMissing counts distinct non-missing values.
func (c *Column) DistinctNonMissing() int {
	if c.Kind == KindText {
		seen := make(map[string]struct{})
		for i, m := range c.Missing {
			if !m {
				seen[c.Texts[i]] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[float64]struct{})
	for i, m := range c.Missing {
		if !m {
			seen[c.Floats[i]] = struct{}{}
		}
	}
	return len(seen)
}

// Dataset is an ordered collection of equally sized columns. Row count and
// column order are fixed at load time; everything downstream treats it as
// read-only.
type Dataset struct {
	Columns []Column
	Rows    int
}

// ColumnNames returns the column names in original order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i := range d.Columns {
		names[i] = d.Columns[i].Name
	}
	return names
}

// NumericIndexes returns the indexes of numeric-kind columns in column order.
// This is the loaded kind, not the categorical heuristic.
func (d *Dataset) NumericIndexes() []int {
	var out []int
	for i := range d.Columns {
		if d.Columns[i].Kind == KindNumeric {
			out = append(out, i)
		}
	}
	return out
}

// TotalMissing counts absent entries across all columns.
func (d *Dataset) TotalMissing() int {
	n := 0
	for i := range d.Columns {
		n += d.Columns[i].MissingCount()
	}
	return n
}
