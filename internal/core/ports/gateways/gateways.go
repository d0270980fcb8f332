// Package gateways declares the outbound collaborators services depend on:
// document extraction, PDF rendering, email delivery and spreadsheet export.
package gateways

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
)

// DocumentExtractor reads structured invoice data out of a supplier document.
type DocumentExtractor interface {
	ExtractFromImage(ctx context.Context, contentType string, data []byte) (*domain.ExtractedInvoiceData, error)
	ExtractFromText(ctx context.Context, text string) (*domain.ExtractedInvoiceData, error)
}

// PDFTextExtractor pulls the plain text layer out of a PDF.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// InvoiceDocument is everything needed to lay out an invoice.
type InvoiceDocument struct {
	Invoice  domain.Invoice
	Settings domain.Settings
	Summary  invoicing.Summary
}

// InvoiceRenderer produces the printable invoice.
type InvoiceRenderer interface {
	RenderInvoice(doc InvoiceDocument) ([]byte, error)
}

type EmailAttachment struct {
	FileName string
	Content  []byte
}

type OutgoingEmail struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []EmailAttachment
}

// Mailer delivers transactional email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email OutgoingEmail) (string, error)
}

// LedgerExport is the data set of one spreadsheet export.
type LedgerExport struct {
	Period   domain.Period
	Settings domain.Settings
	Invoices []domain.Invoice
	Expenses []domain.Expense
	Now      time.Time
}

// LedgerExporter writes a ledger export as a workbook.
type LedgerExporter interface {
	WriteLedger(w io.Writer, export LedgerExport) error
}
