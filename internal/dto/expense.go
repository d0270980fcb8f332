package dto

import (
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseRequest is the create/update body for expenses.
type ExpenseRequest struct {
	SupplierID  *string              `json:"supplierID"`
	CategoryID  *string              `json:"categoryID"`
	Description string               `json:"description" binding:"required"`
	Amount      decimal.Decimal      `json:"amount" binding:"gt=0"`
	VATAmount   *decimal.Decimal     `json:"vatAmount" binding:"omitempty,gte=0"`
	Date        time.Time            `json:"date" binding:"required"`
	Status      domain.ExpenseStatus `json:"status" binding:"required,oneof=REGISTERED PAID"`
}

// CreateExpenseFromExtractionRequest turns reviewed extraction output into an expense.
type CreateExpenseFromExtractionRequest struct {
	Data       domain.ExtractedInvoiceData `json:"data" binding:"required"`
	CategoryID *string                     `json:"categoryID"`
}

// ListExpensesParams filters the expense listing.
type ListExpensesParams struct {
	Status string     `form:"status" binding:"omitempty,oneof=REGISTERED PAID"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	ListParams
}

type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToAttachmentResponse(a *domain.ExpenseAttachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		Size:         a.Size,
		CreatedAt:    a.CreatedAt,
	}
}

type ExpenseResponse struct {
	ExpenseID     string               `json:"expenseID"`
	SupplierID    *string              `json:"supplierID,omitempty"`
	SupplierName  string               `json:"supplierName,omitempty"`
	CategoryID    *string              `json:"categoryID,omitempty"`
	CategoryName  string               `json:"categoryName,omitempty"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount"`
	VATAmount     decimal.Decimal      `json:"vatAmount"`
	GrossAmount   decimal.Decimal      `json:"grossAmount"`
	Date          time.Time            `json:"date"`
	Status        domain.ExpenseStatus `json:"status"`
	Attachments   []AttachmentResponse `json:"attachments"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	res := ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		SupplierID:    e.SupplierID,
		CategoryID:    e.CategoryID,
		Description:   e.Description,
		Amount:        money(e.Amount),
		VATAmount:     money(e.VATAmount),
		GrossAmount:   money(e.GrossAmount()),
		Date:          e.Date,
		Status:        e.Status,
		Attachments:   make([]AttachmentResponse, len(e.Attachments)),
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
	if e.Supplier != nil {
		res.SupplierName = e.Supplier.Name
	}
	if e.Category != nil {
		res.CategoryName = e.Category.Name
	}
	for i := range e.Attachments {
		res.Attachments[i] = ToAttachmentResponse(&e.Attachments[i])
	}
	return res
}

type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res}
}

// UploadInvoiceResponse is the body of a successful document analysis.
type UploadInvoiceResponse struct {
	Success bool                         `json:"success"`
	Data    *domain.ExtractedInvoiceData `json:"data"`
}
