package services

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices.
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, userID string, req dto.InvoiceRequest) (*domain.Invoice, error)
	// UpdateInvoice replaces header and lines of a draft.
	UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, userID, invoiceID string) error
	RegisterPayment(ctx context.Context, userID, invoiceID string, req dto.RegisterPaymentRequest) (*domain.Invoice, error)
}

// InvoiceDeliverySvc renders and sends invoices.
type InvoiceDeliverySvc interface {
	// RenderInvoicePDF returns the PDF and the invoice it was rendered from.
	RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, *domain.Invoice, error)
	// SendInvoice emails the PDF to the customer and records the delivery.
	SendInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
}

// InvoiceMaintenanceSvc holds batch operations run outside a user request.
type InvoiceMaintenanceSvc interface {
	MarkOverdueInvoices(ctx context.Context) (int64, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceDeliverySvc
	InvoiceMaintenanceSvc
}
