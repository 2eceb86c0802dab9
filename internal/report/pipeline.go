package report

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datascribe/internal/config"
	"github.com/KaramelBytes/datascribe/internal/dataset"
	"github.com/KaramelBytes/datascribe/internal/render"
	"github.com/KaramelBytes/datascribe/internal/stats"
)

// Version identifies the generator in the report's closing notes.
const Version = "0.1.0"

// Per-generator column limits. The chart battery and these bounds are fixed;
// "first k" always means original column order, never a ranking.
const (
	maxHistogramCols   = 12
	maxCategoricalCols = 8
	maxBoxCols         = 8
	maxViolinCols      = 6
	maxDensityCols     = 8
	maxScatterCols     = 5
	maxLineCols        = 6
	maxPieCols         = 4

	topCategoryValues = 15
	topPieSlices      = 6
)

// Result describes a completed pipeline run.
type Result struct {
	RunID      string
	OutputPath string
	Pages      []PageInfo
}

// Pipeline drives one dataset-to-document run. It is synchronous and
// single-use: load, classify, describe, render each page in fixed order,
// flush. Any stage error aborts the run before anything reaches disk.
type Pipeline struct {
	Config *config.Config
	Log    *slog.Logger
}

// Run generates the full report for the dataset at inPath and writes it to
// outPath.
func (p *Pipeline) Run(inPath, outPath string) (*Result, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	runID := uuid.NewString()
	start := time.Now()
	log.Info("report run started", "run_id", runID, "input", inPath)

	render.Init(cfg.ChartDPI)

	ds, err := dataset.Load(inPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	cls := dataset.Classify(ds, cfg.MaxUnique)
	table := stats.Describe(ds)
	log.Debug("dataset loaded",
		"rows", ds.Rows,
		"columns", len(ds.Columns),
		"numeric", len(cls.FirstNumeric(0)),
		"categorical", len(cls.FirstCategorical(0)))

	doc := NewDocument("DataScribe Report", runID)

	doc.AddTextPage("Dataset Summary", stats.SummaryText(ds, table))
	if !table.Empty() {
		header, rows := statsGrid(table, cfg.TableMaxRows)
		doc.AddTablePage("Descriptive Statistics (Numeric)", header, rows)
	}
	if err := p.addCharts(doc, ds, cls, cfg); err != nil {
		return nil, err
	}
	doc.AddTextPage("Notes", notesText(runID))

	if err := doc.Flush(outPath); err != nil {
		return nil, err
	}
	log.Info("report run finished",
		"run_id", runID,
		"pages", doc.PageCount(),
		"output", outPath,
		"elapsed", time.Since(start))
	return &Result{RunID: runID, OutputPath: outPath, Pages: doc.Pages()}, nil
}

// addCharts runs the ten generators in the contract's order. Each generator
// may emit zero pages on degenerate input; a rendering error is fatal.
func (p *Pipeline) addCharts(doc *Document, ds *dataset.Dataset, cls dataset.Classification, cfg *config.Config) error {
	add := func(title string, png []byte, err error) error {
		if err != nil {
			return err
		}
		if png == nil {
			return nil
		}
		return doc.AddChartPage(title, png)
	}

	// Missingness covers every column and is emitted for every dataset,
	// even an empty one.
	counts := make([]int, len(ds.Columns))
	for i := range ds.Columns {
		counts[i] = ds.Columns[i].MissingCount()
	}
	png, err := render.Missingness(ds.ColumnNames(), counts)
	if err != nil {
		return fmt.Errorf("missingness chart: %w", err)
	}
	if err := add("Missing Values per Column", png, nil); err != nil {
		return err
	}

	for _, i := range cls.FirstNumeric(maxHistogramCols) {
		c := &ds.Columns[i]
		png, err := render.Histogram(c.Name, c.NonMissing(), cfg.HistBins)
		if err := add("Histogram: "+c.Name, png, err); err != nil {
			return err
		}
	}

	for _, i := range cls.FirstCategorical(maxCategoricalCols) {
		c := &ds.Columns[i]
		png, err := render.CategoricalBar(c.Name, c.Labels(), topCategoryValues)
		if err := add("Categorical Bars: "+c.Name, png, err); err != nil {
			return err
		}
	}

	if idx := cls.FirstNumeric(0); len(idx) >= 2 {
		mat := stats.CorrelationMatrix(ds, idx)
		png, err := render.CorrelationHeatmap(columnNames(ds, idx), mat)
		if err := add("Correlation Heatmap", png, err); err != nil {
			return err
		}
	}

	for _, i := range cls.FirstNumeric(maxBoxCols) {
		c := &ds.Columns[i]
		png, err := render.Box(c.Name, c.NonMissing())
		if err := add("Box Plot: "+c.Name, png, err); err != nil {
			return err
		}
	}

	for _, i := range cls.FirstNumeric(maxViolinCols) {
		c := &ds.Columns[i]
		png, err := render.Violin(c.Name, c.NonMissing(), cfg.DensityPoints)
		if err := add("Violin Plot: "+c.Name, png, err); err != nil {
			return err
		}
	}

	for _, i := range cls.FirstNumeric(maxDensityCols) {
		c := &ds.Columns[i]
		png, err := render.Density(c.Name, c.NonMissing(), cfg.DensityPoints)
		if err := add("Density Plot: "+c.Name, png, err); err != nil {
			return err
		}
	}

	if idx := cls.FirstNumeric(maxScatterCols); len(idx) >= 2 {
		png, err := render.ScatterMatrix(columnNames(ds, idx), columnFloats(ds, idx), cfg.DensityPoints)
		if err := add("Scatter Matrix", png, err); err != nil {
			return err
		}
	}

	if idx := cls.FirstNumeric(maxLineCols); len(idx) > 0 {
		png, err := render.Lines(columnNames(ds, idx), columnFloats(ds, idx))
		if err := add("Line Chart", png, err); err != nil {
			return err
		}
	}

	for _, i := range cls.FirstCategorical(maxPieCols) {
		c := &ds.Columns[i]
		png, err := render.Pie(c.Name, c.Labels(), topPieSlices)
		if err := add("Pie Chart: "+c.Name, png, err); err != nil {
			return err
		}
	}
	return nil
}

// statsGrid flattens the statistics table into header and cell strings,
// capped at maxRows numeric columns with values rounded to 4 decimals.
func statsGrid(t stats.Table, maxRows int) ([]string, [][]string) {
	header := []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "missing"}
	rows := t.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Name,
			strconv.Itoa(r.Count),
			formatStat(r.Mean),
			formatStat(r.Std),
			formatStat(r.Min),
			formatStat(r.Q25),
			formatStat(r.Median),
			formatStat(r.Q75),
			formatStat(r.Max),
			strconv.Itoa(r.Missing),
		}
	}
	return header, out
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func notesText(runID string) string {
	return "This report was auto-generated. Graphs are limited in number for readability. " +
		"Consider domain-specific EDA for deeper insights.\n\n" +
		"Generator: datascribe " + Version + "\n" +
		"Run ID: " + runID
}

func columnNames(ds *dataset.Dataset, idx []int) []string {
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = ds.Columns[j].Name
	}
	return names
}

func columnFloats(ds *dataset.Dataset, idx []int) [][]float64 {
	cols := make([][]float64, len(idx))
	for i, j := range idx {
		cols[i] = ds.Columns[j].Floats
	}
	return cols
}
