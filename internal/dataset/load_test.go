package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSVKinds(t *testing.T) {
	path := writeFile(t, "data.csv",
		"age,city,score",
		"31,Lisbon,12.5",
		"45,Porto,",
		"28,Lisbon,9.25",
		"NA,Faro,3.5",
	)
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 4 {
		t.Fatalf("rows = %d, want 4", ds.Rows)
	}
	if len(ds.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(ds.Columns))
	}

	age := ds.Columns[0]
	if age.Kind != KindNumeric {
		t.Fatalf("age kind = %s, want numeric", age.Kind)
	}
	if age.Floats[0] != 31 {
		t.Fatalf("age[0] = %v, want 31", age.Floats[0])
	}
	if !age.Missing[3] || !math.IsNaN(age.Floats[3]) {
		t.Fatalf("age[3] should be missing NaN, got %v (missing=%v)", age.Floats[3], age.Missing[3])
	}
	if age.MissingCount() != 1 {
		t.Fatalf("age missing = %d, want 1", age.MissingCount())
	}

	city := ds.Columns[1]
	if city.Kind != KindText {
		t.Fatalf("city kind = %s, want text", city.Kind)
	}
	if city.Texts[1] != "Porto" {
		t.Fatalf("city[1] = %q, want Porto", city.Texts[1])
	}
	if city.DistinctNonMissing() != 3 {
		t.Fatalf("city distinct = %d, want 3", city.DistinctNonMissing())
	}

	score := ds.Columns[2]
	if score.Kind != KindNumeric {
		t.Fatalf("score kind = %s, want numeric", score.Kind)
	}
	if score.MissingCount() != 1 {
		t.Fatalf("score missing = %d, want 1", score.MissingCount())
	}
	if got := score.NonMissing(); len(got) != 3 || got[0] != 12.5 {
		t.Fatalf("score non-missing = %v", got)
	}
}

func TestLoadTSVDelimiter(t *testing.T) {
	path := writeFile(t, "data.tsv",
		"a\tb",
		"1\tx",
		"2\ty",
	)
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 2 || len(ds.Columns) != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", ds.Rows, len(ds.Columns))
	}
	if ds.Columns[0].Kind != KindNumeric || ds.Columns[1].Kind != KindText {
		t.Fatalf("kinds = %s,%s", ds.Columns[0].Kind, ds.Columns[1].Kind)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for file without header row")
	}
}

func TestLoadMalformedCSV(t *testing.T) {
	path := writeFile(t, "bad.csv",
		"a,b",
		`"unterminated,1`,
	)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for unterminated quote")
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", "a,b")
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 0 {
		t.Fatalf("rows = %d, want 0", ds.Rows)
	}
	// With no cells to contradict it, columns default to numeric.
	for i := range ds.Columns {
		if ds.Columns[i].Kind != KindNumeric {
			t.Fatalf("column %d kind = %s, want numeric", i, ds.Columns[i].Kind)
		}
	}
}

func TestLoadPadsShortRows(t *testing.T) {
	path := writeFile(t, "short.csv",
		"a,b",
		"1",
		"2,3",
	)
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b := ds.Columns[1]
	if !b.Missing[0] {
		t.Fatal("padded cell should be missing")
	}
	if b.Missing[1] || b.Floats[1] != 3 {
		t.Fatalf("b[1] = %v (missing=%v), want 3", b.Floats[1], b.Missing[1])
	}
}

func TestLabelsFormatting(t *testing.T) {
	col := Column{
		Name:    "n",
		Kind:    KindNumeric,
		Floats:  []float64{1, 2.5, math.NaN()},
		Missing: []bool{false, false, true},
	}
	got := col.Labels()
	if len(got) != 2 || got[0] != "1" || got[1] != "2.5" {
		t.Fatalf("labels = %v", got)
	}
}
