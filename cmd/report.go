package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datascribe/internal/report"
)

var (
	repInput     string
	repOutput    string
	repMaxUnique int
	repBins      int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze a dataset and write a multi-page PDF report",
	Long: `Report loads the dataset at --input, computes descriptive statistics and
missing-value counts, renders the fixed chart battery, and writes a single
paginated PDF to --output. The exit code is nonzero on any failure; on
success the output file is always a complete document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		if cmd.Flags().Changed("max-unique") && repMaxUnique > 0 {
			c.MaxUnique = repMaxUnique
		}
		if cmd.Flags().Changed("bins") && repBins > 0 {
			c.HistBins = repBins
		}
		pipe := &report.Pipeline{Config: c, Log: slog.Default()}
		if _, err := pipe.Run(repInput, repOutput); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote report to %s\n", repOutput)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&repInput, "input", "i", "", "path to the input dataset (CSV/TSV/XLSX)")
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "path for the output PDF")
	_ = reportCmd.MarkFlagRequired("input")
	_ = reportCmd.MarkFlagRequired("output")
	reportCmd.Flags().IntVar(&repMaxUnique, "max-unique", 0, "distinct-value threshold for categorical detection (overrides config)")
	reportCmd.Flags().IntVar(&repBins, "bins", 0, "histogram bin count (overrides config)")
	rootCmd.AddCommand(reportCmd)
}
