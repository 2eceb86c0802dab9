package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datascribe/internal/dataset"
	"github.com/KaramelBytes/datascribe/internal/stats"
	"github.com/KaramelBytes/datascribe/internal/utils"
)

var (
	insJSON       bool
	insOutput     string
	insSheetName  string
	insSheetIndex int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a quick text summary of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		var (
			ds  *dataset.Dataset
			err error
		)
		if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			ds, err = dataset.LoadXLSX(path, insSheetName, insSheetIndex)
		} else {
			ds, err = dataset.Load(path)
		}
		if err != nil {
			return err
		}

		c := effectiveConfig()
		cls := dataset.Classify(ds, c.MaxUnique)
		table := stats.Describe(ds)

		var out string
		if insJSON {
			b, err := utils.PrettyJSON(table)
			if err != nil {
				return err
			}
			out = string(b)
		} else {
			out = inspectText(path, ds, cls, table)
		}

		if insOutput != "" {
			if err := os.WriteFile(insOutput, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", insOutput)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&insJSON, "json", false, "emit the statistics table as JSON")
	inspectCmd.Flags().StringVar(&insOutput, "output", "", "write the summary to a file instead of stdout")
	inspectCmd.Flags().StringVar(&insSheetName, "sheet", "", "XLSX sheet name (default: first sheet)")
	inspectCmd.Flags().IntVar(&insSheetIndex, "sheet-index", 1, "XLSX sheet index, 1-based")
	rootCmd.AddCommand(inspectCmd)
}

// inspectText renders a compact schema summary suitable for a terminal.
func inspectText(path string, ds *dataset.Dataset, cls dataset.Classification, t stats.Table) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	fmt.Fprintf(&b, "File: %s\n", filepath.Base(path))
	fmt.Fprintf(&b, "Rows: %d\n", ds.Rows)
	fmt.Fprintf(&b, "Columns: %d\n", len(ds.Columns))
	fmt.Fprintf(&b, "Missing values: %d\n\n", ds.TotalMissing())

	statRows := map[string]stats.RowStats{}
	for _, r := range t.Rows {
		statRows[r.Name] = r
	}

	b.WriteString("[SCHEMA]\n")
	for i := range ds.Columns {
		c := &ds.Columns[i]
		fmt.Fprintf(&b, "- %s: %s (%s)", c.Name, c.Kind, cls.Class(i))
		if r, ok := statRows[c.Name]; ok && c.Kind == dataset.KindNumeric {
			if math.IsNaN(r.Mean) {
				fmt.Fprintf(&b, " - all missing")
			} else {
				fmt.Fprintf(&b, " - min %.4g, max %.4g, mean %.4g, std %.4g", r.Min, r.Max, r.Mean, r.Std)
			}
			if r.Missing > 0 {
				fmt.Fprintf(&b, "; missing %d", r.Missing)
			}
		} else {
			fmt.Fprintf(&b, " - %d distinct", c.DistinctNonMissing())
			if m := c.MissingCount(); m > 0 {
				fmt.Fprintf(&b, "; missing %d", m)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
