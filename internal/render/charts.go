package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Missingness renders a bar chart of missing counts per column, sorted
// descending. It is the one chart emitted for every dataset, including an
// empty one, which yields an empty set of axes.
func Missingness(names []string, counts []int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Missing Values per Column"
	p.X.Label.Text = "Columns"
	p.Y.Label.Text = "Count of missing entries"
	if len(names) == 0 {
		fixEmptyRanges(p)
		return encodePNG(p, wideWidth, wideHeight)
	}

	ord := make([]int, len(names))
	for i := range ord {
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool {
		if counts[ord[a]] == counts[ord[b]] {
			return names[ord[a]] < names[ord[b]]
		}
		return counts[ord[a]] > counts[ord[b]]
	})
	vals := make(plotter.Values, len(ord))
	sortedNames := make([]string, len(ord))
	for i, j := range ord {
		vals[i] = float64(counts[j])
		sortedNames[i] = names[j]
	}

	bar, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("missingness bars: %w", err)
	}
	bar.Color = plotutil.Color(0)
	p.Add(bar)
	p.NominalX(sortedNames...)
	p.Y.Min = 0
	if p.Y.Max <= 0 {
		p.Y.Max = 1
	}
	return encodePNG(p, wideWidth, wideHeight)
}

// Histogram renders one column's value distribution. Constant columns fall
// back to a single bar, since a zero-width bin range cannot be split.
func Histogram(name string, values []float64, bins int) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	p := plot.New()
	p.Title.Text = "Histogram: " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "Frequency"

	lo, hi := minMax(values)
	if lo == hi {
		bar, err := plotter.NewBarChart(plotter.Values{float64(len(values))}, vg.Points(40))
		if err != nil {
			return nil, fmt.Errorf("histogram %s: %w", name, err)
		}
		bar.Color = plotutil.Color(0)
		p.Add(bar)
		p.NominalX(fmt.Sprintf("%g", lo))
		p.Y.Min = 0
		return encodePNG(p, wideWidth, wideHeight)
	}

	if bins <= 0 {
		bins = 30
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)
	p.Y.Min = 0
	return encodePNG(p, wideWidth, wideHeight)
}

// CategoricalBar renders the topK most frequent values of one categorical
// column. Columns with no present values yield no chart.
func CategoricalBar(name string, labels []string, topK int) ([]byte, error) {
	tops := topFrequencies(labels, topK)
	if len(tops) == 0 {
		return nil, nil
	}
	vals := make(plotter.Values, len(tops))
	names := make([]string, len(tops))
	for i, t := range tops {
		vals[i] = float64(t.count)
		names[i] = t.value
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Values: %s", topK, name)
	p.X.Label.Text = name
	p.Y.Label.Text = "Count"
	bar, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("categorical bars %s: %w", name, err)
	}
	bar.Color = plotutil.Color(2)
	p.Add(bar)
	p.NominalX(names...)
	p.Y.Min = 0
	return encodePNG(p, wideWidth, wideHeight)
}

// corrGrid adapts a correlation matrix to the heatmap's grid interface.
// Row r of the matrix maps to Y value r, so the diagonal runs corner to
// corner.
type corrGrid struct {
	names []string
	vals  [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.names), len(g.names) }
func (g corrGrid) Z(c, r int) float64 { return g.vals[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap renders the pairwise correlation matrix on a fixed
// [-1, 1] diverging scale. Fewer than two columns yields no chart.
func CorrelationHeatmap(names []string, mat [][]float64) ([]byte, error) {
	if len(names) < 2 {
		return nil, nil
	}
	hm := plotter.NewHeatMap(corrGrid{names: names, vals: mat}, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm)
	p.NominalX(names...)
	p.NominalY(names...)
	return encodePNG(p, squareSide, squareSide)
}

// Box renders one column's box plot.
func Box(name string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	b, err := plotter.NewBoxPlot(vg.Points(50), 0, plotter.Values(values))
	if err != nil {
		return nil, fmt.Errorf("box plot %s: %w", name, err)
	}
	p := plot.New()
	p.Title.Text = "Box Plot: " + name
	p.Y.Label.Text = name
	p.Add(b)
	p.NominalX(name)
	return encodePNG(p, boxWidth, boxHeight)
}

// Violin renders one column as a mirrored kernel density polygon with a
// marker at the median.
func Violin(name string, values []float64, points int) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	xs, ds := gaussianKDE(values, points)
	maxD := 0.0
	for _, d := range ds {
		if d > maxD {
			maxD = d
		}
	}
	scale := 1.0
	if maxD > 0 {
		scale = 0.4 / maxD
	}
	pts := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		pts = append(pts, plotter.XY{X: ds[i] * scale, Y: xs[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: -ds[i] * scale, Y: xs[i]})
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, fmt.Errorf("violin %s: %w", name, err)
	}
	poly.Color = color.NRGBA{R: 70, G: 130, B: 180, A: 128}
	poly.LineStyle.Color = color.NRGBA{R: 70, G: 130, B: 180, A: 255}

	med, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: median(values)}})
	if err != nil {
		return nil, fmt.Errorf("violin %s: %w", name, err)
	}
	med.GlyphStyle.Shape = draw.CrossGlyph{}
	med.GlyphStyle.Color = color.Black

	p := plot.New()
	p.Title.Text = "Violin Plot: " + name
	p.Y.Label.Text = name
	p.Add(poly, med)
	p.X.Min, p.X.Max = -0.5, 0.5
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	return encodePNG(p, boxWidth, boxHeight)
}

// Density renders one column's Gaussian kernel density estimate. Columns
// with no present values are skipped individually by returning no chart.
func Density(name string, values []float64, points int) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	xs, ds := gaussianKDE(values, points)
	line, err := plotter.NewLine(xyPairs(xs, ds))
	if err != nil {
		return nil, fmt.Errorf("density %s: %w", name, err)
	}
	line.LineStyle.Color = plotutil.Color(0)
	p := plot.New()
	p.Title.Text = "Density Plot: " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "Density"
	p.Add(line)
	p.Y.Min = 0
	return encodePNG(p, wideWidth, wideHeight)
}

// ScatterMatrix renders a k-by-k grid of pairwise scatter panels with a
// density curve on the diagonal. cols are row-aligned values with NaN where
// a row is missing; each panel drops its own incomplete rows. Fewer than two
// columns yields no chart.
func ScatterMatrix(names []string, cols [][]float64, points int) ([]byte, error) {
	k := len(names)
	if k < 2 {
		return nil, nil
	}
	plots := make([][]*plot.Plot, k)
	for i := 0; i < k; i++ {
		plots[i] = make([]*plot.Plot, k)
		for j := 0; j < k; j++ {
			p := plot.New()
			if i == k-1 {
				p.X.Label.Text = names[j]
			}
			if j == 0 {
				p.Y.Label.Text = names[i]
			}
			if i == j {
				vals := dropNaN(cols[i])
				if len(vals) == 0 {
					fixEmptyRanges(p)
					plots[i][j] = p
					continue
				}
				xs, ds := gaussianKDE(vals, points)
				line, err := plotter.NewLine(xyPairs(xs, ds))
				if err != nil {
					return nil, fmt.Errorf("scatter matrix diagonal %s: %w", names[i], err)
				}
				line.LineStyle.Color = plotutil.Color(0)
				p.Add(line)
			} else {
				pts := completePairs(cols[j], cols[i])
				if len(pts) == 0 {
					fixEmptyRanges(p)
					plots[i][j] = p
					continue
				}
				sc, err := plotter.NewScatter(pts)
				if err != nil {
					return nil, fmt.Errorf("scatter matrix %s/%s: %w", names[j], names[i], err)
				}
				sc.GlyphStyle.Radius = vg.Points(1.5)
				sc.GlyphStyle.Color = plotutil.Color(0)
				p.Add(sc)
			}
			plots[i][j] = p
		}
	}

	c := vgimg.NewWith(vgimg.UseWH(squareSide, squareSide), vgimg.UseDPI(chartDPI))
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: k, Cols: k, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode scatter matrix: %w", err)
	}
	return buf.Bytes(), nil
}

// Lines renders every selected numeric column as a line series over the row
// index, with one legend entry per column.
func Lines(names []string, cols [][]float64) ([]byte, error) {
	if len(names) == 0 {
		return nil, nil
	}
	p := plot.New()
	p.Title.Text = "Line Chart (first numeric columns)"
	p.X.Label.Text = "Row"
	p.Legend.Top = true
	for i := range names {
		xys := indexXYs(cols[i])
		if len(xys) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("line series %s: %w", names[i], err)
		}
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(names[i], l)
	}
	return encodePNG(p, wideWidth, wideHeight)
}

// Pie renders the top value frequencies of one categorical column as wedge
// polygons, with percentages relative to the shown slices in the legend.
func Pie(name string, labels []string, slices int) ([]byte, error) {
	tops := topFrequencies(labels, slices)
	if len(tops) == 0 {
		return nil, nil
	}
	total := 0
	for _, t := range tops {
		total += t.count
	}
	p := plot.New()
	p.Title.Text = "Pie Chart: " + name
	p.HideAxes()
	start := math.Pi / 2
	for i, t := range tops {
		frac := float64(t.count) / float64(total)
		end := start + 2*math.Pi*frac
		steps := int(frac*90) + 2
		pts := make(plotter.XYs, 0, steps+2)
		pts = append(pts, plotter.XY{X: 0, Y: 0})
		for s := 0; s <= steps; s++ {
			a := start + (end-start)*float64(s)/float64(steps)
			pts = append(pts, plotter.XY{X: math.Cos(a), Y: math.Sin(a)})
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return nil, fmt.Errorf("pie %s: %w", name, err)
		}
		poly.Color = plotutil.Color(i)
		p.Add(poly)
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", t.value, 100*frac), poly)
		start = end
	}
	p.X.Min, p.X.Max = -1.3, 1.3
	p.Y.Min, p.Y.Max = -1.3, 1.3
	return encodePNG(p, squareSide, squareSide)
}

type valueCount struct {
	value string
	count int
}

// topFrequencies counts label occurrences and returns the k most frequent,
// ordered by count descending then value ascending so the result is stable.
func topFrequencies(labels []string, k int) []valueCount {
	m := make(map[string]int, len(labels))
	for _, v := range labels {
		m[v]++
	}
	out := make([]valueCount, 0, len(m))
	for v, c := range m {
		out = append(out, valueCount{value: v, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count == out[j].count {
			return out[i].value < out[j].value
		}
		return out[i].count > out[j].count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func median(values []float64) float64 {
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func xyPairs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

// completePairs keeps only rows present in both columns.
func completePairs(xcol, ycol []float64) plotter.XYs {
	var pts plotter.XYs
	for i := range xcol {
		if math.IsNaN(xcol[i]) || math.IsNaN(ycol[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xcol[i], Y: ycol[i]})
	}
	return pts
}

// indexXYs maps present values to (row index, value) points.
func indexXYs(col []float64) plotter.XYs {
	var pts plotter.XYs
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

// fixEmptyRanges pins the axes of a panel with nothing to draw.
func fixEmptyRanges(p *plot.Plot) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
}
