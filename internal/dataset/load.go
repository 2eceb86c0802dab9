package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// missingTokens are the NA markers recognized in addition to empty cells.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Load reads a dataset from path, dispatching on the file extension:
// .xlsx workbooks are read from their first sheet, everything else is
// treated as delimited text with a header row.
func Load(path string) (*Dataset, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, "", 1)
	}
	return LoadDelimited(path, sniffDelimiter(path))
}

// sniffDelimiter picks the field separator from the file extension.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// LoadDelimited parses a delimited text file with a header row into a Dataset.
// Any read or parse failure is fatal; there is no partial dataset.
func LoadDelimited(path string, delim rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %s has no header row", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	ncol := len(header)
	cells := make([][]string, ncol)
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		// Short rows are padded with missing cells.
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		for j := 0; j < ncol; j++ {
			cells[j] = append(cells[j], rec[j])
		}
		rows++
	}
	return build(header, cells, rows), nil
}

// build infers each column's kind and materializes the dataset. A column is
// numeric only when every non-missing cell parses as a float; a single
// non-numeric cell demotes the whole column to text. An all-missing column
// stays numeric.
func build(header []string, cells [][]string, rows int) *Dataset {
	ds := &Dataset{Rows: rows, Columns: make([]Column, len(header))}
	for j, name := range header {
		col := Column{Name: strings.TrimSpace(name), Missing: make([]bool, rows)}
		floats := make([]float64, rows)
		numeric := true
		for i := 0; i < rows; i++ {
			v := strings.TrimSpace(cells[j][i])
			if isMissing(v) {
				col.Missing[i] = true
				floats[i] = math.NaN()
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				numeric = false
			}
			floats[i] = x
		}
		if numeric {
			col.Kind = KindNumeric
			col.Floats = floats
		} else {
			col.Kind = KindText
			col.Texts = make([]string, rows)
			for i := 0; i < rows; i++ {
				if !col.Missing[i] {
					col.Texts[i] = strings.TrimSpace(cells[j][i])
				}
			}
		}
		ds.Columns[j] = col
	}
	return ds
}
