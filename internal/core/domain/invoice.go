package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// invoiceTransitions lists the manual status changes an owner may request.
// Payments move SENT, OVERDUE and DRAFT invoices to PAID on their own path.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent, InvoiceCancelled},
	InvoiceSent:    {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue: {InvoicePaid, InvoiceSent, InvoiceCancelled},
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// IsEditable reports whether header and lines may still change.
func (s InvoiceStatus) IsEditable() bool {
	return s == InvoiceDraft
}

// IsTerminal reports whether no further transition is possible.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceCancelled
}

// AcceptsPayments reports whether a payment may be registered in this state.
func (s InvoiceStatus) AcceptsPayments() bool {
	return s != InvoiceCancelled
}

// CanTransitionTo reports whether a manual change from s to next is allowed.
// Setting the current status again is a no-op and always allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InvoiceLine is one priced row of an invoice. VATRate is a percentage.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	SortOrder   int             `json:"sortOrder"`
}

// Payment is money received against an invoice.
type Payment struct {
	PaymentID string          `json:"paymentID"`
	InvoiceID string          `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Invoice is a numbered request for payment sent to a customer.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`
	UserID        string        `json:"userID"`
	CustomerID    string        `json:"customerID"`
	InvoiceNumber string        `json:"invoiceNumber"`
	IssueDate     time.Time     `json:"issueDate"`
	DueDate       time.Time     `json:"dueDate"`
	Status        InvoiceStatus `json:"status"`
	Notes         string        `json:"notes"`
	SentAt        *time.Time    `json:"sentAt,omitempty"`
	SentTo        string        `json:"sentTo,omitempty"`
	Lines         []InvoiceLine `json:"lines"`
	Payments      []Payment     `json:"payments"`
	Customer      *Customer     `json:"customer,omitempty"`
	AuditFields
}

// EffectiveStatus reports OVERDUE for a sent invoice whose due date has passed,
// whether or not the stored status has been swept yet.
func (i Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceSent && i.IsPastDue(now) {
		return InvoiceOverdue
	}
	return i.Status
}

// IsPastDue reports whether the due date lies before the calendar day of now.
func (i Invoice) IsPastDue(now time.Time) bool {
	return StartOfDay(i.DueDate).Before(StartOfDay(now.In(i.DueDate.Location())))
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status        *InvoiceStatus
	IssuedFrom    *time.Time
	IssuedTo      *time.Time
	Limit, Offset int
}
