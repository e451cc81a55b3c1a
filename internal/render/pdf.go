// Package render produces the invoice document artifact: one A4 PDF per
// invoice, named by the invoice number. The layout follows the paper form of
// the invoice: header, contractor block, client block, item table, totals
// block and an optional reverse charge note.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Options selects the variable parts of a rendered invoice.
type Options struct {
	// Language selects labels, date format and decimal separator.
	Language Language

	// IncludeVAT switches the item table to the VAT column set and the
	// totals block to net/VAT/gross.
	IncludeVAT bool

	// IncludeNote appends the fixed reverse charge note.
	IncludeNote bool
}

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0

	lineHeight = 6.0

	// bottomLimit is where the item table breaks to a new page.
	bottomLimit = pageHeight - margin - 2*lineHeight
)

// Renderer produces PDF invoice documents.
type Renderer struct {
	log zerolog.Logger
}

// NewRenderer creates a document renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		log: logger.WithComponent("render"),
	}
}

// Render produces the PDF bytes for the given invoice. The invoice's numeric
// values are rendered to exactly two decimal places in the selected locale.
func (r *Renderer) Render(inv models.Invoice, opts Options) ([]byte, error) {
	const op = "Render"

	if inv.Number == "" {
		return nil, newRenderError(op, "", ErrEmptyInvoiceNumber)
	}
	loc, ok := locales[opts.Language]
	if !ok {
		return nil, newRenderError(op, inv.Number, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, opts.Language))
	}

	d := &document{
		pdf:  gofpdf.New("P", "mm", "A4", ""),
		loc:  loc,
		lang: opts.Language,
		opts: opts,
	}
	// Core fonts are cp1252; Slovene glyphs need the cp1250 translator.
	d.tr = d.pdf.UnicodeTranslatorFromDescriptor("cp1250")
	d.pdf.SetMargins(margin, margin, margin)
	d.pdf.SetAutoPageBreak(false, margin)
	d.pdf.AddPage()

	d.header(inv)
	d.partyBlock(loc.from, inv.Contractor, true)
	d.partyBlock(loc.billTo, inv.Client, false)
	d.itemTable(inv)
	d.totalsBlock(inv)
	if opts.IncludeNote {
		d.note()
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, newRenderError(op, inv.Number, err)
	}

	r.log.Info().
		Str("invoice_number", inv.Number).
		Str("language", string(opts.Language)).
		Bool("include_vat", opts.IncludeVAT).
		Bool("include_note", opts.IncludeNote).
		Int("bytes", buf.Len()).
		Msg("Invoice document rendered")

	return buf.Bytes(), nil
}

// RenderFile renders the invoice and writes it to dir as <number>.pdf. The
// document is written to a temporary file and renamed into place so a failed
// render never leaves a partial artifact that looks valid.
func (r *Renderer) RenderFile(inv models.Invoice, opts Options, dir string) (string, error) {
	const op = "RenderFile"

	data, err := r.Render(inv, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, inv.Number+".pdf")
	tmp, err := os.CreateTemp(dir, inv.Number+".tmp-*")
	if err != nil {
		return "", newRenderError(op, inv.Number, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", newRenderError(op, inv.Number, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", newRenderError(op, inv.Number, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", newRenderError(op, inv.Number, err)
	}

	r.log.Info().
		Str("invoice_number", inv.Number).
		Str("path", path).
		Msg("Invoice document written")

	return path, nil
}

// document threads layout state through the drawing helpers.
type document struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	loc  locale
	lang Language
	opts Options
}

func (d *document) header(inv models.Invoice) {
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.Cell(0, 10, d.tr(fmt.Sprintf("%s: %s", d.loc.invoiceTitle, inv.Number)))
	d.pdf.Ln(12)

	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.Cell(0, lineHeight, d.tr(fmt.Sprintf("%s: %s", d.loc.issueDate, inv.IssueDate.Format(d.loc.dateFormat))))
	d.pdf.Ln(lineHeight)
	d.pdf.Cell(0, lineHeight, d.tr(fmt.Sprintf("%s: %s", d.loc.dueDate, inv.DueDate.Format(d.loc.dateFormat))))
	d.pdf.Ln(12)
}

// partyBlock draws one party's identity fields. Bank details are only shown
// for the contractor; optional fields are skipped when empty.
func (d *document) partyBlock(title string, p models.Party, withBank bool) {
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.Cell(0, lineHeight, d.tr(title))
	d.pdf.Ln(lineHeight + 1)

	d.pdf.SetFont("Helvetica", "", 11)
	d.line(p.CompanyName)
	d.line(p.Address)
	if p.RegistrationNumber != "" {
		d.line(fmt.Sprintf("%s: %s", d.loc.registration, p.RegistrationNumber))
	}
	if p.VATNumber != "" {
		d.line(fmt.Sprintf("%s: %s", d.loc.vatNumber, p.VATNumber))
	}
	if withBank {
		if p.BankAccount != "" {
			d.line(fmt.Sprintf("%s: %s", d.loc.bankAccount, p.BankAccount))
		}
		if p.SWIFT != "" {
			d.line(fmt.Sprintf("%s: %s", d.loc.swift, p.SWIFT))
		}
	}
	d.pdf.Ln(6)
}

func (d *document) line(text string) {
	d.pdf.Cell(0, lineHeight, d.tr(text))
	d.pdf.Ln(lineHeight)
}

// column is one item table column: header label, width and a value accessor.
type column struct {
	label string
	width float64
	value func(it models.InvoiceItem) string
}

// TableColumns returns the localized item table header labels for the given
// options, in drawing order. The VAT option switches between the plain and
// the VAT-extended column set.
func TableColumns(lang Language, includeVAT bool) []string {
	loc := locales[lang]
	if includeVAT {
		return []string{loc.colDescription, loc.colUnitPrice, loc.colQuantity,
			loc.colVATRate, loc.colVATAmount, loc.colTotal}
	}
	return []string{loc.colDescription, loc.colUnitPrice, loc.colQuantity, loc.colTotal}
}

func (d *document) columns() []column {
	if d.opts.IncludeVAT {
		return []column{
			{d.loc.colDescription, 55, func(it models.InvoiceItem) string { return it.Description }},
			{d.loc.colUnitPrice, 27, func(it models.InvoiceItem) string { return FormatAmount(it.UnitPrice, d.lang) }},
			{d.loc.colQuantity, 16, func(it models.InvoiceItem) string { return strconv.Itoa(it.Quantity) }},
			{d.loc.colVATRate, 20, func(it models.InvoiceItem) string { return FormatAmount(it.VATRate, d.lang) }},
			{d.loc.colVATAmount, 25, func(it models.InvoiceItem) string { return FormatAmount(it.VATAmount(), d.lang) }},
			{d.loc.colTotal, 27, func(it models.InvoiceItem) string { return FormatAmount(it.Gross(), d.lang) }},
		}
	}
	return []column{
		{d.loc.colDescription, 90, func(it models.InvoiceItem) string { return it.Description }},
		{d.loc.colUnitPrice, 30, func(it models.InvoiceItem) string { return FormatAmount(it.UnitPrice, d.lang) }},
		{d.loc.colQuantity, 20, func(it models.InvoiceItem) string { return strconv.Itoa(it.Quantity) }},
		{d.loc.colTotal, 30, func(it models.InvoiceItem) string { return FormatAmount(it.Net(), d.lang) }},
	}
}

func (d *document) tableHeader(cols []column) {
	d.pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		align := "R"
		if c.label == d.loc.colDescription {
			align = "L"
		}
		d.pdf.CellFormat(c.width, lineHeight+1, d.tr(c.label), "", 0, align, false, 0, "")
	}
	d.pdf.Ln(lineHeight + 1)
	d.rule()
	d.pdf.SetFont("Helvetica", "", 10)
}

func (d *document) rule() {
	y := d.pdf.GetY()
	d.pdf.Line(margin, y, pageWidth-margin, y)
	d.pdf.Ln(2)
}

// itemTable lists every line item. When the table reaches the bottom margin
// it continues on a new page with the header row repeated; the header and
// party blocks stay on the first page.
func (d *document) itemTable(inv models.Invoice) {
	cols := d.columns()
	d.tableHeader(cols)

	for _, it := range inv.Items {
		if d.pdf.GetY() > bottomLimit {
			d.pdf.AddPage()
			d.tableHeader(cols)
		}
		for i, c := range cols {
			align := "R"
			if i == 0 {
				align = "L"
			}
			d.pdf.CellFormat(c.width, lineHeight, d.tr(c.value(it)), "", 0, align, false, 0, "")
		}
		d.pdf.Ln(lineHeight)
	}

	d.rule()
	d.pdf.Ln(4)
}

func (d *document) totalsBlock(inv models.Invoice) {
	if d.pdf.GetY() > bottomLimit-3*lineHeight {
		d.pdf.AddPage()
	}

	if d.opts.IncludeVAT {
		d.pdf.SetFont("Helvetica", "", 11)
		d.totalLine(d.loc.totalNet, inv.TotalNet())
		d.totalLine(d.loc.totalVAT, inv.TotalVAT())
		d.pdf.SetFont("Helvetica", "B", 13)
		d.totalLine(d.loc.totalGross, inv.TotalGross())
		return
	}

	d.pdf.SetFont("Helvetica", "B", 13)
	d.totalLine(d.loc.total, inv.TotalNet())
}

func (d *document) totalLine(label string, amount decimal.Decimal) {
	text := fmt.Sprintf("%s: %s EUR", label, FormatAmount(amount, d.lang))
	d.pdf.CellFormat(pageWidth-2*margin, lineHeight+2, d.tr(text), "", 1, "R", false, 0, "")
}

func (d *document) note() {
	d.pdf.Ln(12)
	if d.pdf.GetY() > bottomLimit {
		d.pdf.AddPage()
	}
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(pageWidth-2*margin, lineHeight, d.tr(d.loc.reverseCharge), "", "L", false)
}
