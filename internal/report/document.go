// Package report assembles the multi-page PDF document and orchestrates the
// full dataset-to-report pipeline.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/KaramelBytes/datascribe/internal/utils"
)

// PageKind identifies what a page carries.
type PageKind string

const (
	PageText  PageKind = "text"
	PageTable PageKind = "table"
	PageChart PageKind = "chart"
)

// PageInfo records one appended page, in order, for diagnostics and tests.
type PageInfo struct {
	Kind  PageKind
	Title string
}

// Document is the report sink: an append-only sequence of pages over a PDF.
// Pages are written in the order they are added and never revisited or
// reordered; nothing reaches disk until Flush.
type Document struct {
	pdf   *fpdf.Fpdf
	pages []PageInfo
	imgID int
}

// NewDocument creates an empty US-Letter landscape document.
func NewDocument(title, subject string) *Document {
	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetSubject(subject, true)
	pdf.SetCreator("datascribe", true)
	pdf.SetAutoPageBreak(false, 36)
	pdf.SetMargins(36, 36, 36)
	return &Document{pdf: pdf}
}

// Pages returns metadata for every appended page in order.
func (d *Document) Pages() []PageInfo {
	return append([]PageInfo(nil), d.pages...)
}

// PageCount returns the number of appended pages.
func (d *Document) PageCount() int { return len(d.pages) }

// AddTextPage appends a page with a bold heading and a wrapped body.
func (d *Document) AddTextPage(title, body string) {
	d.pdf.AddPage()
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.CellFormat(0, 24, title, "", 1, "L", false, 0, "")
	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(0, 16, body, "", "L", false)
	d.pages = append(d.pages, PageInfo{Kind: PageText, Title: title})
}

// AddTablePage appends a page with a heading and a bordered grid. The grid
// splits the usable width evenly across the header columns.
func (d *Document) AddTablePage(title string, header []string, rows [][]string) {
	d.pdf.AddPage()
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(0, 20, title, "", 1, "L", false, 0, "")
	d.pdf.Ln(6)

	pageW, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	colW := (pageW - left - right) / float64(max(len(header), 1))

	d.pdf.SetFont("Helvetica", "B", 9)
	for _, h := range header {
		d.pdf.CellFormat(colW, 16, h, "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for _, cell := range row {
			d.pdf.CellFormat(colW, 16, cell, "1", 0, "C", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pages = append(d.pages, PageInfo{Kind: PageTable, Title: title})
}

// AddChartPage appends a page holding one rendered chart, scaled to fit the
// margins with its aspect ratio preserved.
func (d *Document) AddChartPage(title string, png []byte) error {
	d.pdf.AddPage()
	d.imgID++
	name := fmt.Sprintf("chart-%03d", d.imgID)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if d.pdf.Err() {
		return fmt.Errorf("embed chart %q: %w", title, d.pdf.Error())
	}

	pageW, pageH := d.pdf.GetPageSize()
	left, top, right, bottom := d.pdf.GetMargins()
	w := pageW - left - right
	h := w * info.Height() / info.Width()
	if maxH := pageH - top - bottom; h > maxH {
		h = maxH
		w = h * info.Width() / info.Height()
	}
	x := left + (pageW-left-right-w)/2
	d.pdf.ImageOptions(name, x, top, w, h, false, opts, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("place chart %q: %w", title, d.pdf.Error())
	}
	d.pages = append(d.pages, PageInfo{Kind: PageChart, Title: title})
	return nil
}

// Flush renders the document and writes it to path atomically, so a file at
// the output path is always a complete report, never a partial one.
func (d *Document) Flush(path string) error {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
