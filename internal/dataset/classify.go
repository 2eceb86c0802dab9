package dataset

// DefaultMaxUnique is the distinct-value threshold at or below which a
// numeric column is treated as categorical.
const DefaultMaxUnique = 20

// Class is a classification bucket. Every column lands in exactly one.
type Class int

const (
	ClassNumeric Class = iota
	ClassCategorical
)

func (c Class) String() string {
	if c == ClassCategorical {
		return "categorical"
	}
	return "numeric"
}

// Classification maps every dataset column to a bucket, preserving original
// column order for the bounded first-k selections the generators use.
type Classification struct {
	classes []Class
}

// Classify buckets each column: text columns are categorical, numeric
// columns with at most maxUnique distinct non-missing values are categorical
// (ties included), everything else is numeric. The result is a pure function
// of column kind and distinct count and never depends on row order.
func Classify(ds *Dataset, maxUnique int) Classification {
	if maxUnique <= 0 {
		maxUnique = DefaultMaxUnique
	}
	classes := make([]Class, len(ds.Columns))
	for i := range ds.Columns {
		c := &ds.Columns[i]
		if c.Kind == KindText || c.DistinctNonMissing() <= maxUnique {
			classes[i] = ClassCategorical
		} else {
			classes[i] = ClassNumeric
		}
	}
	return Classification{classes: classes}
}

// Class returns the bucket for column index i.
func (cl Classification) Class(i int) Class { return cl.classes[i] }

// Len returns the number of classified columns.
func (cl Classification) Len() int { return len(cl.classes) }

// FirstNumeric returns the indexes of the first k numeric-classified columns
// in original column order. k <= 0 returns all of them.
func (cl Classification) FirstNumeric(k int) []int { return cl.first(ClassNumeric, k) }

// FirstCategorical is the categorical counterpart of FirstNumeric.
func (cl Classification) FirstCategorical(k int) []int { return cl.first(ClassCategorical, k) }

func (cl Classification) first(want Class, k int) []int {
	var out []int
	for i, c := range cl.classes {
		if c != want {
			continue
		}
		out = append(out, i)
		if k > 0 && len(out) == k {
			break
		}
	}
	return out
}
