package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/datascribe/internal/stats"
)

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	lines := []string{"age,city,score"}
	cities := []string{"Lisbon", "Porto", "Faro"}
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("%d,%s,%.2f", 20+i, cities[i%3], float64(i)*1.5))
	}
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReportCommand(t *testing.T) {
	in := writeSampleCSV(t)
	out := filepath.Join(t.TempDir(), "report.pdf")

	rootCmd.SetArgs([]string{"report", "-i", in, "-o", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("report command: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(b), "%PDF-") {
		t.Fatal("output is not a PDF")
	}
}

func TestReportCommandMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	rootCmd.SetArgs([]string{"report", "-i", filepath.Join(t.TempDir(), "absent.csv"), "-o", out})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("no output file may exist after a failed run")
	}
}

func TestInspectCommandJSON(t *testing.T) {
	in := writeSampleCSV(t)
	out := filepath.Join(t.TempDir(), "summary.json")

	rootCmd.SetArgs([]string{"inspect", in, "--json", "--output", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("inspect command: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var table stats.Table
	if err := json.Unmarshal(b, &table); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 numeric columns", len(table.Rows))
	}
	if table.Rows[0].Name != "age" || table.Rows[1].Name != "score" {
		t.Fatalf("row names = %s, %s", table.Rows[0].Name, table.Rows[1].Name)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	rootCmd.SetArgs([]string{"config", "set", "hist_bins", "40", "--config", cfgPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "hist_bins: 40") {
		t.Fatalf("saved config missing override: %s", b)
	}

	rootCmd.SetArgs([]string{"config", "set", "hist_bins", "zero", "--config", cfgPath})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for non-integer value")
	}
}
