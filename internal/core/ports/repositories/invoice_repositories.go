package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// PaymentDecider is evaluated inside the payment transaction with the locked invoice,
// its payments already including the new one. It returns the status to store, or an
// error to abort the registration.
type PaymentDecider func(invoice domain.Invoice) (domain.InvoiceStatus, error)

// InvoiceReader defines read operations for invoices. Returned invoices carry lines,
// payments and the customer.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, filter domain.InvoiceFilter) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// CreateInvoice reserves the next invoice number from the owner's settings and inserts
	// the invoice and its lines in one transaction. defaults seed a missing settings row.
	CreateInvoice(ctx context.Context, invoice domain.Invoice, defaults domain.Settings) (*domain.Invoice, error)

	// ReplaceDraftInvoice overwrites the header and replaces all lines atomically.
	// Returns apperrors.ErrConflict when the stored invoice is no longer a draft.
	ReplaceDraftInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus changes from -> to, failing with ErrConflict if the stored status moved on.
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, from, to domain.InvoiceStatus, at time.Time) error
	// MarkInvoiceSent records delivery and returns the resulting status.
	MarkInvoiceSent(ctx context.Context, userID, invoiceID, sentTo string, sentAt time.Time) (domain.InvoiceStatus, error)
	DeleteInvoice(ctx context.Context, userID, invoiceID string) error

	// RegisterPayment appends a payment under a row lock on the invoice and stores the
	// status returned by decide.
	RegisterPayment(ctx context.Context, userID string, payment domain.Payment, decide PaymentDecider) (*domain.Invoice, error)

	// MarkOverdue flips every SENT invoice due before asOf to OVERDUE, for all owners.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
