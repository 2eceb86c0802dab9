package dataset

import "testing"

func numericColumn(name string, vals ...float64) Column {
	return Column{
		Name:    name,
		Kind:    KindNumeric,
		Floats:  vals,
		Missing: make([]bool, len(vals)),
	}
}

func textColumn(name string, vals ...string) Column {
	return Column{
		Name:    name,
		Kind:    KindText,
		Texts:   vals,
		Missing: make([]bool, len(vals)),
	}
}

func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestClassifyBuckets(t *testing.T) {
	ds := &Dataset{
		Rows: 25,
		Columns: []Column{
			numericColumn("wide", sequence(25)...),
			numericColumn("narrow", append(sequence(5), sequence(20)...)...),
			textColumn("label", make([]string, 25)...),
		},
	}
	cls := Classify(ds, DefaultMaxUnique)

	if got := cls.Class(0); got != ClassNumeric {
		t.Fatalf("wide (25 distinct) classified %s, want numeric", got)
	}
	// Exactly maxUnique distinct values is a tie, and ties are categorical.
	if got := cls.Class(1); got != ClassCategorical {
		t.Fatalf("narrow (20 distinct) classified %s, want categorical", got)
	}
	if got := cls.Class(2); got != ClassCategorical {
		t.Fatalf("text column classified %s, want categorical", got)
	}
}

func TestClassifyEveryColumnOnce(t *testing.T) {
	ds := &Dataset{
		Rows: 3,
		Columns: []Column{
			numericColumn("a", 1, 2, 3),
			textColumn("b", "x", "y", "z"),
		},
	}
	cls := Classify(ds, 0)
	if cls.Len() != len(ds.Columns) {
		t.Fatalf("classified %d columns, want %d", cls.Len(), len(ds.Columns))
	}
	for i := 0; i < cls.Len(); i++ {
		c := cls.Class(i)
		if c != ClassNumeric && c != ClassCategorical {
			t.Fatalf("column %d has unexpected class %d", i, c)
		}
	}
}

func TestClassifyIgnoresRowOrder(t *testing.T) {
	vals := sequence(30)
	reversed := make([]float64, len(vals))
	for i, v := range vals {
		reversed[len(vals)-1-i] = v
	}

	forward := &Dataset{Rows: 30, Columns: []Column{numericColumn("v", vals...)}}
	backward := &Dataset{Rows: 30, Columns: []Column{numericColumn("v", reversed...)}}

	a := Classify(forward, DefaultMaxUnique).Class(0)
	b := Classify(backward, DefaultMaxUnique).Class(0)
	if a != b {
		t.Fatalf("classification depends on row order: %s vs %s", a, b)
	}
}

func TestClassifyMissingOnlyColumn(t *testing.T) {
	col := numericColumn("empty")
	col.Floats = []float64{0, 0}
	col.Missing = []bool{true, true}
	ds := &Dataset{Rows: 2, Columns: []Column{col}}

	// Zero distinct non-missing values is below any threshold.
	if got := Classify(ds, DefaultMaxUnique).Class(0); got != ClassCategorical {
		t.Fatalf("all-missing column classified %s, want categorical", got)
	}
}

func TestFirstSelectionOrder(t *testing.T) {
	ds := &Dataset{
		Rows: 25,
		Columns: []Column{
			numericColumn("n1", sequence(25)...),
			textColumn("c1", make([]string, 25)...),
			numericColumn("n2", sequence(25)...),
			numericColumn("n3", sequence(25)...),
		},
	}
	cls := Classify(ds, DefaultMaxUnique)

	got := cls.FirstNumeric(2)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("FirstNumeric(2) = %v, want [0 2]", got)
	}
	all := cls.FirstNumeric(0)
	if len(all) != 3 || all[2] != 3 {
		t.Fatalf("FirstNumeric(0) = %v, want [0 2 3]", all)
	}
	cats := cls.FirstCategorical(5)
	if len(cats) != 1 || cats[0] != 1 {
		t.Fatalf("FirstCategorical(5) = %v, want [1]", cats)
	}
}
