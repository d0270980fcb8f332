package dto

import (
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one line of an invoice create/update body.
// A missing vatRate falls back to the owner's default rate.
type InvoiceLineRequest struct {
	Description string           `json:"description" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"gt=0"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"gte=0"`
	VATRate     *decimal.Decimal `json:"vatRate" binding:"omitempty,gte=0,lte=100"`
}

// InvoiceRequest creates an invoice or replaces a draft wholesale.
// Missing dates default to today and today plus the owner's payment terms.
type InvoiceRequest struct {
	CustomerID string               `json:"customerID" binding:"required"`
	IssueDate  *time.Time           `json:"issueDate"`
	DueDate    *time.Time           `json:"dueDate"`
	Notes      string               `json:"notes"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest requests a manual status change.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
}

// RegisterPaymentRequest records money received; date defaults to now.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gt=0"`
	Date   *time.Time      `json:"date"`
	Note   string          `json:"note"`
}

// ListInvoicesParams filters the invoice listing.
type ListInvoicesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
	ListParams
}

type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	LineVAT     decimal.Decimal `json:"lineVat"`
}

type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note"`
}

// InvoiceResponse is an invoice with its derived totals, rounded for display.
type InvoiceResponse struct {
	InvoiceID       string                `json:"invoiceID"`
	InvoiceNumber   string                `json:"invoiceNumber"`
	CustomerID      string                `json:"customerID"`
	Customer        *CustomerResponse     `json:"customer,omitempty"`
	IssueDate       time.Time             `json:"issueDate"`
	DueDate         time.Time             `json:"dueDate"`
	Status          domain.InvoiceStatus  `json:"status"`
	EffectiveStatus domain.InvoiceStatus  `json:"effectiveStatus"`
	Notes           string                `json:"notes"`
	SentAt          *time.Time            `json:"sentAt,omitempty"`
	SentTo          string                `json:"sentTo,omitempty"`
	Lines           []InvoiceLineResponse `json:"lines"`
	Payments        []PaymentResponse     `json:"payments"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	VATTotal        decimal.Decimal       `json:"vatTotal"`
	Total           decimal.Decimal       `json:"total"`
	Paid            decimal.Decimal       `json:"paid"`
	Remaining       decimal.Decimal       `json:"remaining"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain invoice, deriving OVERDUE against now.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	summary := invoicing.Summarize(*inv)

	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			LineID:      l.LineID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
			LineTotal:   money(invoicing.LineTotal(l)),
			LineVAT:     money(invoicing.LineVAT(l)),
		}
	}
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResponse{PaymentID: p.PaymentID, Amount: money(p.Amount), Date: p.Date, Note: p.Note}
	}

	res := InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		Status:          inv.Status,
		EffectiveStatus: inv.EffectiveStatus(now),
		Notes:           inv.Notes,
		SentAt:          inv.SentAt,
		SentTo:          inv.SentTo,
		Lines:           lines,
		Payments:        payments,
		Subtotal:        money(summary.Subtotal),
		VATTotal:        money(summary.VAT),
		Total:           money(summary.Total),
		Paid:            money(summary.Paid),
		Remaining:       money(summary.Remaining),
		CreatedAt:       inv.CreatedAt,
		LastUpdatedAt:   inv.LastUpdatedAt,
	}
	if inv.Customer != nil {
		c := ToCustomerResponse(inv.Customer)
		res.Customer = &c
	}
	return res
}

type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

func ToListInvoicesResponse(invoices []domain.Invoice, now time.Time) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], now)
	}
	return ListInvoicesResponse{Invoices: res}
}
