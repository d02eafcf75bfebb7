// Package report renders product collections as downloadable PDF documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inventory/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrRender wraps every failure to produce a PDF document.
var ErrRender = errors.New("report rendering failed")

// DefaultTitle is used for list reports without an explicit title.
const DefaultTitle = "Product Report"

type rgb struct{ r, g, b int }

var (
	colorDarkBlue    = rgb{0, 0, 139}
	colorGrey        = rgb{128, 128, 128}
	colorBlack       = rgb{0, 0, 0}
	colorWhiteSmoke  = rgb{245, 245, 245}
	colorHeader      = rgb{0x4F, 0x46, 0xE5}
	colorRowOdd      = rgb{0xF9, 0xFA, 0xFB}
	colorRowEven     = rgb{0xFF, 0xFF, 0xFF}
	colorGrid        = rgb{0xE5, 0xE7, 0xEB}
	colorSummaryHead = rgb{0x10, 0xB9, 0x81}
	colorSummaryBody = rgb{0xF0, 0xFD, 0xF4}
	colorSummaryGrid = rgb{0xD1, 0xFA, 0xE5}
)

// listWeights are the relative column widths of the product table.
var listWeights = []float64{0.5, 2, 1.2, 0.8, 1, 0.8, 1}

// Options configures a Generator.
type Options struct {
	CurrencyPrefix string
	// PublicBaseURL enables a QR code linking to the product on detail reports.
	PublicBaseURL string
	Location      *time.Location
	Now           func() time.Time
	// Uncompressed leaves page streams readable; used by tests.
	Uncompressed bool
}

// Generator renders product reports.
type Generator struct {
	format   Formatter
	baseURL  string
	now      func() time.Time
	compress bool
}

// NewGenerator returns a generator using opts.
func NewGenerator(opts Options) *Generator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{
		format:   Formatter{CurrencyPrefix: opts.CurrencyPrefix, Location: opts.Location},
		baseURL:  strings.TrimRight(opts.PublicBaseURL, "/"),
		now:      now,
		compress: !opts.Uncompressed,
	}
}

// Now returns the generator's current time in its location.
func (g *Generator) Now() time.Time {
	return g.now().In(g.format.location())
}

// Formatter exposes the value formatting used in reports.
func (g *Generator) Formatter() Formatter {
	return g.format
}

// ProductList renders products as a table, followed by summary statistics
// when there is more than one product.
func (g *Generator) ProductList(products []models.Product, title string) ([]byte, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	now := g.Now()
	doc := g.newDocument(now, title, 36)

	doc.title(title)
	doc.subtitle("Generated on: "+now.Format(stampLayout), 14, colorGrey, "C")
	doc.pdf.Ln(20)

	content := doc.contentWidth()
	widths := make([]float64, len(listWeights))
	var total float64
	for _, w := range listWeights {
		total += w
	}
	for i, w := range listWeights {
		widths[i] = content * w / total
	}

	tbl := &table{
		doc:    doc,
		widths: widths,
		aligns: []string{"C", "C", "C", "C", "C", "C", "C"},
		pad:    6,
	}
	headerStyle := cellStyle{bold: true, size: 12, text: colorWhiteSmoke, fill: colorHeader, grid: colorGrid}
	tbl.header = func() { tbl.row(ListHeaders, headerStyle) }
	tbl.header()

	for i, row := range g.format.BuildRows(products) {
		fill := colorRowOdd
		if (i+1)%2 == 0 {
			fill = colorRowEven
		}
		tbl.row(row.Cells(), cellStyle{size: 10, text: colorBlack, fill: fill, grid: colorGrid})
	}

	if summary, ok := Summarize(products); ok {
		doc.pdf.Ln(20)
		sum := &table{doc: doc, widths: []float64{144, 108}, aligns: []string{"L", "L"}, pad: 6}
		sum.row([]string{"Summary Statistics", ""}, cellStyle{bold: true, size: 12, text: colorWhiteSmoke, fill: colorSummaryHead, grid: colorSummaryGrid})
		for _, f := range g.format.SummaryFields(summary) {
			sum.row([]string{f.Label, f.Value}, cellStyle{size: 10, text: colorBlack, fill: colorSummaryBody, grid: colorSummaryGrid})
		}
	}

	return doc.bytes()
}

// ProductDetail renders every field of a single product.
func (g *Generator) ProductDetail(p *models.Product) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no product", ErrRender)
	}
	now := g.Now()
	doc := g.newDocument(now, "Product Details", 72)

	doc.title("Product Details")
	doc.subtitle("Generated on: "+now.Format(stampLayout), 12, colorBlack, "L")
	doc.pdf.Ln(30)

	labelWidth := 144.0
	tbl := &table{
		doc:    doc,
		widths: []float64{labelWidth, doc.contentWidth() - labelWidth},
		aligns: []string{"L", "L"},
		pad:    8,
	}
	tbl.header = func() {
		tbl.row([]string{"Product Information", ""}, cellStyle{bold: true, size: 12, text: colorWhiteSmoke, fill: colorHeader, grid: colorGrid})
	}
	tbl.header()
	for _, f := range g.format.DetailFields(p) {
		tbl.row([]string{f.Label, f.Value}, cellStyle{size: 10, text: colorBlack, fill: colorRowOdd, grid: colorGrid})
	}

	if g.baseURL != "" {
		doc.qrCode(g.ProductURL(p.ID))
	}

	return doc.bytes()
}

// ProductURL is the public link encoded in detail report QR codes.
func (g *Generator) ProductURL(id uint) string {
	return g.baseURL + "/products/" + strconv.FormatUint(uint64(id), 10)
}

func (g *Generator) newDocument(now time.Time, title string, sideMargin float64) *document {
	const top, bottom = 72.0, 36.0
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(sideMargin, top, sideMargin)
	pdf.SetAutoPageBreak(false, bottom)
	pdf.SetCompression(g.compress)
	pdf.SetCreationDate(now)
	pdf.SetCreator("toko catalog", false)

	doc := &document{
		pdf:          pdf,
		enc:          charmap.Windows1252.NewEncoder(),
		side:         sideMargin,
		top:          top,
		bottomMargin: bottom,
	}
	pdf.SetTitle(doc.text(title), false)
	pdf.AddPage()
	return doc
}

// document tracks the first text encoding failure alongside the PDF writer.
type document struct {
	pdf          *fpdf.Fpdf
	enc          *encoding.Encoder
	err          error
	side         float64
	top          float64
	bottomMargin float64
}

// text converts s to the core font encoding.
func (d *document) text(s string) string {
	if d.err != nil {
		return ""
	}
	out, err := d.enc.String(s)
	if err != nil {
		d.err = fmt.Errorf("%w: text %q is not representable: %v", ErrRender, s, err)
		return ""
	}
	return out
}

func (d *document) contentWidth() float64 {
	pageW, _ := d.pdf.GetPageSize()
	return pageW - 2*d.side
}

func (d *document) bottom() float64 {
	_, pageH := d.pdf.GetPageSize()
	return pageH - d.bottomMargin
}

func (d *document) title(s string) {
	d.pdf.SetFont("Helvetica", "B", 24)
	d.pdf.SetTextColor(colorDarkBlue.r, colorDarkBlue.g, colorDarkBlue.b)
	d.pdf.CellFormat(d.contentWidth(), 30, d.text(s), "", 1, "C", false, 0, "")
	d.pdf.Ln(20)
}

func (d *document) subtitle(s string, size float64, c rgb, align string) {
	d.pdf.SetFont("Helvetica", "", size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.CellFormat(d.contentWidth(), size*1.4, d.text(s), "", 1, align, false, 0, "")
}

func (d *document) qrCode(url string) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		d.err = fmt.Errorf("%w: qr code: %v", ErrRender, err)
		return
	}
	const size = 96.0
	if d.pdf.GetY()+20+size > d.bottom() {
		d.pdf.AddPage()
	} else {
		d.pdf.Ln(20)
	}
	left := d.side
	y := d.pdf.GetY()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader("product-qr", opts, bytes.NewReader(png))
	d.pdf.ImageOptions("product-qr", left, y, size, size, false, opts, 0, "")

	d.pdf.SetXY(left+size+12, y+size/2-6)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(colorGrey.r, colorGrey.g, colorGrey.b)
	d.pdf.CellFormat(d.contentWidth()-size-12, 12, d.text("Scan to open "+url), "", 1, "L", false, 0, "")
}

func (d *document) bytes() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

type cellStyle struct {
	bold bool
	size float64
	text rgb
	fill rgb
	grid rgb
}

// table draws bordered rows whose cells wrap onto several lines. Rows that do
// not fit the page move to the next one, repeating the header.
type table struct {
	doc    *document
	widths []float64
	aligns []string
	pad    float64
	header func()
}

func (t *table) row(cells []string, style cellStyle) {
	pdf := t.doc.pdf
	fontStyle := ""
	if style.bold {
		fontStyle = "B"
	}
	pdf.SetFont("Helvetica", fontStyle, style.size)
	lineH := style.size * 1.25

	lines := make([][][]byte, len(cells))
	for i, cell := range cells {
		lines[i] = pdf.SplitLines([]byte(t.doc.text(cell)), t.widths[i]-2*t.pad)
		if len(lines[i]) == 0 {
			lines[i] = [][]byte{nil}
		}
	}

	for {
		n := 0
		for _, l := range lines {
			if len(l) > n {
				n = len(l)
			}
		}
		room := t.room(lineH)
		if room < 1 || (n > room && n <= t.fullRoom(lineH)) {
			t.newPage(style, fontStyle)
			room = t.room(lineH)
			if room < 1 {
				room = 1
			}
		}
		take := n
		if take > room {
			take = room
		}

		t.segment(lines, take, lineH, style)

		done := true
		for i := range lines {
			if len(lines[i]) > take {
				lines[i] = lines[i][take:]
				done = false
			} else {
				lines[i] = nil
			}
		}
		if done {
			return
		}
		t.newPage(style, fontStyle)
	}
}

// segment draws up to take lines of every cell as one bordered band.
func (t *table) segment(lines [][][]byte, take int, lineH float64, style cellStyle) {
	pdf := t.doc.pdf
	left := t.doc.side
	y := pdf.GetY()
	h := float64(take)*lineH + 2*t.pad

	pdf.SetFillColor(style.fill.r, style.fill.g, style.fill.b)
	pdf.SetDrawColor(style.grid.r, style.grid.g, style.grid.b)
	pdf.SetTextColor(style.text.r, style.text.g, style.text.b)
	pdf.SetLineWidth(1)

	x := left
	for i, w := range t.widths {
		pdf.Rect(x, y, w, h, "FD")
		for j := 0; j < take && j < len(lines[i]); j++ {
			pdf.SetXY(x+t.pad, y+t.pad+float64(j)*lineH)
			pdf.CellFormat(w-2*t.pad, lineH, string(lines[i][j]), "", 0, t.aligns[i], false, 0, "")
		}
		x += w
	}
	pdf.SetXY(left, y+h)
}

// room is the number of lines that still fit below the cursor.
func (t *table) room(lineH float64) int {
	return int((t.doc.bottom() - t.doc.pdf.GetY() - 2*t.pad) / lineH)
}

// fullRoom is the number of lines that fit on a fresh page below the header.
func (t *table) fullRoom(lineH float64) int {
	avail := t.doc.bottom() - t.doc.top - 2*t.pad
	if t.header != nil {
		avail -= 12*1.25 + 2*t.pad
	}
	return int(avail / lineH)
}

func (t *table) newPage(style cellStyle, fontStyle string) {
	t.doc.pdf.AddPage()
	if t.header != nil {
		t.header()
	}
	t.doc.pdf.SetFont("Helvetica", fontStyle, style.size)
}
