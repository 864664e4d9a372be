package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Header fill and alternate row fill.
var (
	accent    = [3]int{24, 144, 255}
	stripe    = [3]int{245, 245, 245}
	accentHex = "1890FF"
)

const (
	rowHeight    = 7.0
	headerHeight = 8.0
	bodyFontSize = 7.0

	coreFamily = "Helvetica"
	utf8Family = "body"
)

// currencyWords replaces currency signs missing from cp1252 when the core
// font is used. Signs cp1252 carries ($, €, £, ¥) are left alone.
var currencyWords = strings.NewReplacer(
	"₹", "Rs.",
	"₽", "RUB",
	"₩", "KRW",
	"₴", "UAH",
	"₦", "NGN",
	"₱", "PHP",
	"₺", "TRY",
	"₫", "VND",
	"₪", "ILS",
	"₸", "KZT",
)

// PlanPages partitions columns into consecutive groups of at most threshold.
// A non-positive threshold keeps every column in one group.
func PlanPages(columns int, threshold int) [][2]int {
	if columns == 0 {
		return [][2]int{{0, 0}}
	}
	if threshold <= 0 || columns <= threshold {
		return [][2]int{{0, columns}}
	}
	groups := make([][2]int, 0, (columns+threshold-1)/threshold)
	for from := 0; from < columns; from += threshold {
		groups = append(groups, [2]int{from, min(from+threshold, columns)})
	}
	return groups
}

// document wraps fpdf with the shared header, table and summary scaffolding.
type document struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	now    time.Time
	meta   Job
}

// newDocument prepares an A4 landscape document. With opts.FontFile set, text
// is written in that UTF-8 TrueType font unchanged; otherwise Helvetica is
// used and text is mapped to cp1252.
func newDocument(job Job, now time.Time, opts Options) (*document, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetTitle(job.Title, true)
	pdf.SetCreator("assetdesk", true)

	d := &document{pdf: pdf, now: now, meta: job}

	if opts.FontFile != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(utf8Family, style, opts.FontFile)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load pdf font %s: %w", opts.FontFile, err)
		}
		d.family = utf8Family
		d.tr = func(s string) string { return s }
		return d, nil
	}

	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	d.family = coreFamily
	d.tr = func(s string) string { return cp1252(currencyWords.Replace(s)) }
	return d, nil
}

func (d *document) font(style string, size float64) {
	d.pdf.SetFont(d.family, style, size)
}

// heading draws the title block, optional "Page X of Y" and the active filters.
func (d *document) heading(page, pages int) {
	pdf := d.pdf
	pdf.AddPage()

	d.font("B", 14)
	pdf.SetTextColor(0, 0, 0)
	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	usable := width - left - right

	if pages > 1 {
		pdf.CellFormat(usable*0.75, 8, d.tr(d.meta.Title), "", 0, "L", false, 0, "")
		d.font("", 10)
		pdf.CellFormat(usable*0.25, 8, fmt.Sprintf("Page %d of %d", page, pages), "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(usable, 8, d.tr(d.meta.Title), "", 1, "L", false, 0, "")
	}

	d.font("", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(usable, 5, "Generated "+d.now.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")

	if len(d.meta.FilterLines) > 0 {
		d.font("B", 9)
		pdf.CellFormat(usable, 5, "Filters applied:", "", 1, "L", false, 0, "")
		d.font("", 9)
		for _, line := range d.meta.FilterLines {
			pdf.CellFormat(usable, 5, d.tr("  "+line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)
}

// table draws t with evenly distributed column widths. The header row is
// repeated whenever the rows continue on a new physical page.
func (d *document) table(t Table) {
	pdf := d.pdf
	left, _, right, bottom := pdf.GetMargins()
	width, height := pdf.GetPageSize()
	if len(t.Columns) == 0 {
		return
	}
	colWidth := (width - left - right) / float64(len(t.Columns))

	header := func() {
		d.font("B", bodyFontSize)
		pdf.SetFillColor(accent[0], accent[1], accent[2])
		pdf.SetTextColor(255, 255, 255)
		for _, title := range t.Titles() {
			pdf.CellFormat(colWidth, headerHeight, d.fit(title, colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		d.font("", bodyFontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	for i, row := range t.Rows {
		if pdf.GetY()+rowHeight > height-bottom-rowHeight {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(stripe[0], stripe[1], stripe[2])
		}
		for _, v := range row {
			pdf.CellFormat(colWidth, rowHeight, d.fit(v.String(), colWidth), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// note writes one line of small text, on a new page if the current one is full.
func (d *document) note(text string, style string) {
	pdf := d.pdf
	left, _, right, bottom := pdf.GetMargins()
	width, height := pdf.GetPageSize()
	if pdf.GetY()+6 > height-bottom {
		pdf.AddPage()
	}
	d.font(style, 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(width-left-right, 6, d.tr(text), "", 1, "L", false, 0, "")
}

// fit shortens text with ".." until it fits into a cell of width w. Runes are
// dropped from the original text; only the result is translated.
func (d *document) fit(text string, w float64) string {
	limit := w - 2
	if s := d.tr(text); d.pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(text)
	for len(runes) > 0 && d.pdf.GetStringWidth(d.tr(string(runes)+"..")) > limit {
		runes = runes[:len(runes)-1]
	}
	return d.tr(string(runes) + "..")
}

func (d *document) bytes() ([]byte, int, error) {
	var buf bytes.Buffer
	pages := d.pdf.PageNo()
	if err := d.pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), pages, nil
}

// WritePDF renders the full document. Column groups beyond threshold become
// separate pages, each repeating all rows.
func WritePDF(job Job, t Table, opts Options, now time.Time) ([]byte, int, error) {
	d, err := newDocument(job, now, opts)
	if err != nil {
		return nil, 0, err
	}
	groups := PlanPages(len(t.Columns), opts.ColumnThreshold)

	for i, g := range groups {
		d.heading(i+1, len(groups))
		d.table(t.Slice(g[0], g[1]))
	}

	summary := fmt.Sprintf("Total records: %d | Columns: %d", len(t.Rows), len(t.Columns))
	if len(groups) > 1 {
		summary += fmt.Sprintf(" | Pages: %d", len(groups))
	}
	d.pdf.Ln(3)
	d.note(summary, "B")

	return d.bytes()
}

// WriteCompactPDF renders only the first opts.CompactColumns columns in one
// table and adds a footnote when columns were left out.
func WriteCompactPDF(job Job, t Table, opts Options, now time.Time) ([]byte, int, error) {
	d, err := newDocument(job, now, opts)
	if err != nil {
		return nil, 0, err
	}
	shown := len(t.Columns)
	if limit := opts.CompactColumns; limit > 0 && shown > limit {
		shown = limit
	}

	d.heading(1, 1)
	d.table(t.Slice(0, shown))

	d.pdf.Ln(3)
	d.note(fmt.Sprintf("Total records: %d | Columns: %d", len(t.Rows), shown), "B")
	if shown < len(t.Columns) {
		d.note(fmt.Sprintf("Showing %d of %d columns. Use the full PDF export for every column.", shown, len(t.Columns)), "I")
	}

	return d.bytes()
}
