// Package pdfdoc renders invoices to PDF and reads the text layer of uploaded PDFs.
package pdfdoc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 15.0
	contentW    = 180.0
	lineHeight  = 5.0
	fontFamily  = "Helvetica"
	logoMaxW    = 40.0
	logoMaxH    = 20.0
	colDescW    = 80.0
	colQtyW     = 20.0
	colPriceW   = 30.0
	colVATW     = 20.0
	colSumW     = 30.0
	totalsLabel = 140.0
)

// FPDFRenderer lays invoices out on A4 with the core Helvetica font.
type FPDFRenderer struct{}

var _ gateways.InvoiceRenderer = (*FPDFRenderer)(nil)

func NewFPDFRenderer() *FPDFRenderer {
	return &FPDFRenderer{}
}

func (r *FPDFRenderer) RenderInvoice(doc gateways.InvoiceDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Faktura "+doc.Invoice.InvoiceNumber, true)
	pdf.SetCreator("EasyLedger", true)
	pdf.AddPage()

	// Core fonts are cp1252; æøå need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	p := &page{pdf: pdf, tr: tr}
	p.header(doc)
	p.customer(doc.Invoice.Customer)
	p.lines(doc.Invoice.Lines)
	p.totals(doc.Summary)
	p.notes(doc.Invoice.Notes)
	p.payment(doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", doc.Invoice.InvoiceNumber, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice %s: %w", doc.Invoice.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (p *page) text(w float64, s, align string) {
	p.pdf.CellFormat(w, lineHeight, p.tr(s), "", 0, align, false, 0, "")
}

func (p *page) row(s string) {
	p.pdf.CellFormat(0, lineHeight, p.tr(s), "", 1, "L", false, 0, "")
}

func (p *page) header(doc gateways.InvoiceDocument) {
	s := doc.Settings
	top := p.pdf.GetY()

	if p.logo(s.Logo) {
		p.pdf.SetY(top + logoMaxH + 2)
	}

	p.font("B", 14)
	if s.CompanyName != "" {
		p.row(s.CompanyName)
	}
	p.font("", 10)
	if s.Address != "" {
		p.row(s.Address)
	}
	if s.PostalCode != "" && s.City != "" {
		p.row(s.PostalCode + " " + s.City)
	}
	if s.OrgNumber != "" {
		p.row("Org.nr: " + s.OrgNumber)
	}
	bottomLeft := p.pdf.GetY()

	p.pdf.SetXY(pageMargin+contentW/2, top)
	p.font("B", 22)
	p.pdf.CellFormat(contentW/2, 10, "FAKTURA", "", 2, "R", false, 0, "")
	p.font("", 10)
	inv := doc.Invoice
	for _, s := range []string{
		"Fakturanr: " + inv.InvoiceNumber,
		"Dato: " + utils.FormatDateShortNO(inv.IssueDate),
		"Forfall: " + utils.FormatDateShortNO(inv.DueDate),
	} {
		p.pdf.CellFormat(contentW/2, lineHeight, p.tr(s), "", 2, "R", false, 0, "")
	}

	p.pdf.SetXY(pageMargin, max(bottomLeft, p.pdf.GetY())+8)
}

// logo draws a data-URI PNG or JPEG logo. Anything else is skipped.
func (p *page) logo(uri string) bool {
	var imgType string
	switch {
	case strings.HasPrefix(uri, "data:image/png;base64,"):
		imgType = "PNG"
	case strings.HasPrefix(uri, "data:image/jpeg;base64,"):
		imgType = "JPG"
	default:
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(uri[strings.Index(uri, ",")+1:])
	if err != nil {
		return false
	}
	opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	info := p.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if !p.pdf.Ok() || info == nil {
		p.pdf.ClearError()
		return false
	}
	w, h := info.Width(), info.Height()
	if w <= 0 || h <= 0 {
		return false
	}
	scale := min(logoMaxW/w, logoMaxH/h)
	p.pdf.ImageOptions("logo", pageMargin, p.pdf.GetY(), w*scale, h*scale, false, opts, 0, "")
	return true
}

func (p *page) customer(c *domain.Customer) {
	p.font("B", 10)
	p.row("Faktureres til:")
	p.font("", 10)
	if c != nil {
		p.row(c.Name)
		if c.Address != "" {
			p.row(c.Address)
		}
		if c.PostalCode != "" && c.City != "" {
			p.row(c.PostalCode + " " + c.City)
		}
		if c.OrgNumber != "" {
			p.row("Org.nr: " + c.OrgNumber)
		}
	}
	p.pdf.Ln(8)
}

func (p *page) lines(lines []domain.InvoiceLine) {
	p.font("B", 10)
	p.pdf.SetFillColor(240, 240, 240)
	for _, h := range []struct {
		w     float64
		label string
		align string
	}{
		{colDescW, "Beskrivelse", "L"},
		{colQtyW, "Antall", "R"},
		{colPriceW, "Pris", "R"},
		{colVATW, "MVA", "R"},
		{colSumW, "Sum", "R"},
	} {
		p.pdf.CellFormat(h.w, 7, p.tr(h.label), "B", 0, h.align, true, 0, "")
	}
	p.pdf.Ln(-1)

	p.font("", 10)
	for _, l := range lines {
		p.text(colDescW, l.Description, "L")
		p.text(colQtyW, l.Quantity.String(), "R")
		p.text(colPriceW, utils.FormatWithPrecision(l.UnitPrice, utils.MoneyPrecision), "R")
		p.text(colVATW, l.VATRate.String()+"%", "R")
		p.text(colSumW, utils.FormatWithPrecision(invoicing.LineTotal(l), utils.MoneyPrecision), "R")
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(4)
}

func (p *page) totals(sum invoicing.Summary) {
	for _, t := range []struct {
		label, value string
		bold         bool
	}{
		{"Sum ekskl. MVA:", utils.FormatNOK(sum.Subtotal), false},
		{"MVA:", utils.FormatNOK(sum.VAT), false},
		{"Totalt:", utils.FormatNOK(sum.Total), true},
	} {
		style := ""
		if t.bold {
			style = "B"
		}
		p.font(style, 10)
		p.text(totalsLabel, t.label, "R")
		p.text(contentW-totalsLabel, t.value, "R")
		p.pdf.Ln(-1)
	}
	if sum.Paid.IsPositive() {
		p.font("", 10)
		p.text(totalsLabel, "Betalt:", "R")
		p.text(contentW-totalsLabel, utils.FormatNOK(sum.Paid), "R")
		p.pdf.Ln(-1)
		p.text(totalsLabel, "Gjenstående:", "R")
		p.text(contentW-totalsLabel, utils.FormatNOK(sum.Remaining), "R")
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(8)
}

func (p *page) notes(notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	p.font("B", 10)
	p.row("Merknad:")
	p.font("", 10)
	p.pdf.MultiCell(0, lineHeight, p.tr(notes), "", "L", false)
	p.pdf.Ln(6)
}

func (p *page) payment(doc gateways.InvoiceDocument) {
	p.font("B", 10)
	p.row("Betalingsinformasjon:")
	p.font("", 10)
	if doc.Settings.BankAccount != "" {
		p.row("Kontonummer: " + doc.Settings.BankAccount)
	}
	p.row("Merk betaling med fakturanummer " + doc.Invoice.InvoiceNumber)
	p.row("Forfall: " + utils.FormatDateShortNO(doc.Invoice.DueDate))
}
