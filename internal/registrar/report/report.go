// Package report renders registration PDFs.
package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/go-pdf/fpdf"
)

// Title heads every document; DetailSubtitle heads the detail sheet.
const (
	Title          = "Registration Management System"
	DetailSubtitle = "Student Registration Details"

	coreFont    = "Helvetica"
	utf8Font    = "body"
	margin      = 10.0
	lineHeight  = 6.0
	cellPadding = 2.5
	emptyCell   = "-"
	labelSep    = ", "
	dateLayout  = "02 Jan 2006 15:04"
	shortLayout = "2006-01-02"
)

// RosterColumns are the roster table headings, shared by the PDF and the
// spreadsheet export.
var RosterColumns = []string{"Name", "Team / Place", "Category", "Stage Programs", "Non-Stage Programs", "Programs", "Date"}

// Column widths in mm, summing to the printable width of landscape A4.
var rosterWidths = []float64{38, 40, 20, 50, 50, 52, 27}

// Renderer produces PDF documents. With a font file it embeds that TTF and
// writes UTF-8 text with program labels; otherwise it uses Helvetica with
// cp1252 text and prints canonical program ids.
type Renderer struct {
	fontFile string
	loc      *time.Location
}

// New checks that fontFile, when given, exists. A nil loc means time.Local.
func New(fontFile string, loc *time.Location) (*Renderer, error) {
	if fontFile != "" {
		if _, err := os.Stat(fontFile); err != nil {
			return nil, fmt.Errorf("report font: %w", err)
		}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{fontFile: fontFile, loc: loc}, nil
}

// RosterRow formats one registration as a roster row in RosterColumns order,
// with programs shown by their labels.
func RosterRow(r domain.Registration, loc *time.Location) []string {
	return rosterRow(r, loc, joinLabels)
}

func rosterRow(r domain.Registration, loc *time.Location, programs func([]string) string) []string {
	c := catalog.Classify(r.Programs)
	return []string{
		r.FullName,
		r.TeamName + " / " + r.Place,
		strings.ToUpper(r.Category),
		programs(c.Stage),
		programs(c.NonStage),
		programs(catalog.NormalizeAll(r.Programs)),
		r.CreatedAt.In(loc).Format(shortLayout),
	}
}

// RosterHeading is the title line of a roster.
func RosterHeading(category string) string {
	return strings.ToUpper(category) + " Student Registration Report"
}

// RenderDetail renders the single-registration sheet.
func (r *Renderer) RenderDetail(reg domain.Registration) ([]byte, error) {
	d := r.newDocument("P")
	d.heading(DetailSubtitle)

	c := catalog.Classify(reg.Programs)
	t := d.table([]float64{50, 140}, []string{"Field", "Value"})
	for _, row := range [][]string{
		{"Full Name", reg.FullName},
		{"Place", reg.Place},
		{"Team", reg.TeamName},
		{"Category", strings.ToUpper(reg.Category)},
		{"Stage Programs", r.programs(c.Stage)},
		{"Non-Stage Programs", r.programs(c.NonStage)},
		{"Other Programs", r.programs(c.Invalid)},
		{"Registration Date", reg.CreatedAt.In(r.loc).Format(dateLayout)},
	} {
		t.row(row)
	}
	return d.bytes()
}

// RenderRoster renders a landscape roster table, repeating the header on
// each page.
func (r *Renderer) RenderRoster(roster domain.Roster) ([]byte, error) {
	d := r.newDocument("L")
	d.heading(RosterHeading(roster.Category))

	d.pdf.SetFont(d.family, "", 10)
	d.text(fmt.Sprintf("Total %s Students: %d", roster.Category, len(roster.Registrations)))
	d.text("Report Generated: " + roster.GeneratedAt.In(r.loc).Format(dateLayout))
	d.pdf.Ln(3)

	t := d.table(rosterWidths, RosterColumns)
	for _, reg := range roster.Registrations {
		t.row(rosterRow(reg, r.loc, r.programs))
	}
	return d.bytes()
}

// programs renders a program list for a PDF cell. Labels are Malayalam and
// only survive with a UTF-8 font; the core font gets the canonical ids.
func (r *Renderer) programs(ids []string) string {
	if r.fontFile != "" {
		return joinLabels(ids)
	}
	return joinIDs(ids)
}

func joinLabels(ids []string) string {
	if len(ids) == 0 {
		return emptyCell
	}
	return strings.Join(catalog.Labels(ids), labelSep)
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return emptyCell
	}
	return strings.Join(ids, labelSep)
}

// document wraps a page set with the font family and text translator
// chosen for it.
type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	family string
}

func (r *Renderer) newDocument(orientation string) *document {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("registrar", true)
	pdf.AliasNbPages("")

	d := &document{pdf: pdf, family: coreFont, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.fontFile != "" {
		pdf.AddUTF8Font(utf8Font, "", r.fontFile)
		pdf.AddUTF8Font(utf8Font, "B", r.fontFile)
		d.family = utf8Font
		d.tr = func(s string) string { return s }
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(d.family, "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

// heading prints the report title and subtitle, centred.
func (d *document) heading(subtitle string) {
	d.pdf.SetFont(d.family, "B", 16)
	d.pdf.CellFormat(0, 9, d.tr(Title), "", 1, "C", false, 0, "")
	d.pdf.SetFont(d.family, "B", 12)
	d.pdf.CellFormat(0, 8, d.tr(subtitle), "", 1, "C", false, 0, "")
	d.pdf.Ln(4)
}

func (d *document) text(s string) {
	d.pdf.CellFormat(0, lineHeight, d.tr(s), "", 1, "L", false, 0, "")
}

// bytes finishes the document.
func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// table writes fixed-width rows, repeating the header on every page.
type table struct {
	doc    *document
	widths []float64
	header []string
}

func (d *document) table(widths []float64, header []string) *table {
	t := &table{doc: d, widths: widths, header: header}
	t.writeHeader()
	return t
}

func (t *table) writeHeader() {
	pdf := t.doc.pdf
	pdf.SetFont(t.doc.family, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range t.header {
		pdf.CellFormat(t.widths[i], 7, t.doc.tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(t.doc.family, "", 9)
}

// row writes wrapped cells of equal height, starting a new page (with the
// header repeated) when the row would not fit.
func (t *table) row(cells []string) {
	pdf := t.doc.pdf

	lines := make([][]string, len(cells))
	height := lineHeight
	for i, c := range cells {
		lines[i] = t.doc.wrap(t.doc.tr(c), t.widths[i]-cellPadding)
		if h := float64(len(lines[i])) * lineHeight; h > height {
			height = h
		}
	}

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+height > pageH-margin*1.5 {
		pdf.AddPage()
		t.writeHeader()
	}

	x, y := pdf.GetXY()
	for i := range cells {
		pdf.Rect(x, y, t.widths[i], height, "D")
		pdf.SetXY(x, y)
		pdf.MultiCell(t.widths[i], lineHeight, strings.Join(lines[i], "\n"), "", "L", false)
		x += t.widths[i]
	}
	pdf.SetXY(margin, y+height)
}

// wrap breaks already translated text into lines no wider than width,
// splitting words that do not fit on their own.
func (d *document) wrap(s string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if d.pdf.GetStringWidth(candidate) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		for _, ch := range d.glyphs(word) {
			if line != "" && d.pdf.GetStringWidth(line+ch) > width {
				lines = append(lines, line)
				line = ""
			}
			line += ch
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// glyphs splits a word into drawable units: runes for the UTF-8 font, bytes
// for cp1252 text.
func (d *document) glyphs(word string) []string {
	if d.family == utf8Font {
		out := make([]string, 0, len(word))
		for _, r := range word {
			out = append(out, string(r))
		}
		return out
	}
	out := make([]string, len(word))
	for i := 0; i < len(word); i++ {
		out[i] = word[i : i+1]
	}
	return out
}
