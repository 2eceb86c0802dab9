package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datascribe/internal/config"
	"github.com/KaramelBytes/datascribe/internal/report"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "datascribe",
	Short: "DataScribe: turn a tabular dataset into a PDF EDA report",
	Long: `DataScribe ingests a tabular dataset (CSV, TSV, or XLSX) and produces a
single multi-page PDF summarizing its structure: descriptive statistics,
missing-value patterns, distributions, categorical breakdowns, and
correlations.`,
	Version: report.Version,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initLogging, loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datascribe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func initLogging() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c
}

// effectiveConfig returns a private copy of the loaded configuration, so
// per-command flag overrides never leak between commands.
func effectiveConfig() *cfgpkg.Config {
	if cfg == nil {
		return cfgpkg.Default()
	}
	c := *cfg
	return &c
}
