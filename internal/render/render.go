// Package render draws the report's charts with gonum/plot and returns them
// as PNG bytes. Every builder is independent: given degenerate input it
// returns nil bytes and no error, and the caller simply emits no page.
package render

import (
	"bytes"
	"fmt"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart geometry, sized to fill a US-Letter landscape page.
const (
	wideWidth  = 10 * vg.Inch
	wideHeight = 5 * vg.Inch
	boxWidth   = 6 * vg.Inch
	boxHeight  = 4 * vg.Inch
	squareSide = 6.5 * vg.Inch
)

var (
	initOnce sync.Once
	chartDPI = 96
)

// Init applies the process-wide chart style exactly once. The pipeline calls
// it before the first builder runs; later calls are no-ops, so the style can
// never change mid-run.
func Init(dpi int) {
	initOnce.Do(func() {
		if dpi > 0 {
			chartDPI = dpi
		}
		plot.DefaultFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
		plotter.DefaultLineStyle.Width = vg.Points(1.5)
		plotter.DefaultGlyphStyle.Radius = vg.Points(2)
	})
}

// encodePNG draws p onto a fresh image canvas and returns the encoded bytes.
// The canvas lives only for the duration of the call, so rendering a wide
// dataset never holds more than one chart's worth of pixels at a time.
func encodePNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(chartDPI))
	p.Draw(draw.New(c))
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
