package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus tracks whether a registered cost has been settled.
type ExpenseStatus string

const (
	ExpenseRegistered ExpenseStatus = "REGISTERED"
	ExpensePaid       ExpenseStatus = "PAID"
)

func (s ExpenseStatus) IsValid() bool {
	return s == ExpenseRegistered || s == ExpensePaid
}

// Expense is a cost incurred by the business. Amount excludes VAT.
type Expense struct {
	ExpenseID   string              `json:"expenseID"`
	UserID      string              `json:"userID"`
	SupplierID  *string             `json:"supplierID,omitempty"`
	CategoryID  *string             `json:"categoryID,omitempty"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	VATAmount   decimal.Decimal     `json:"vatAmount"`
	Date        time.Time           `json:"date"`
	Status      ExpenseStatus       `json:"status"`
	Supplier    *Supplier           `json:"supplier,omitempty"`
	Category    *Category           `json:"category,omitempty"`
	Attachments []ExpenseAttachment `json:"attachments,omitempty"`
	AuditFields
}

// GrossAmount is amount plus VAT.
func (e Expense) GrossAmount() decimal.Decimal {
	return e.Amount.Add(e.VATAmount)
}

// ExpenseAttachment is a receipt file stored alongside an expense.
type ExpenseAttachment struct {
	AttachmentID string    `json:"attachmentID"`
	ExpenseID    string    `json:"expenseID"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	Data         []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Status        *ExpenseStatus
	From          *time.Time
	To            *time.Time
	Limit, Offset int
}
