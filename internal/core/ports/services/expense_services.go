package services

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/dto"
)

// ExpenseSvcFacade manages the caller's expenses and their receipt attachments.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.ExpenseRequest) (*domain.Expense, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error

	AddAttachment(ctx context.Context, userID, expenseID, fileName, contentType string, data []byte) (*domain.ExpenseAttachment, error)
	GetAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error)
	DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error
}

// ReceiptSvcFacade turns uploaded supplier documents into expenses.
type ReceiptSvcFacade interface {
	// AnalyzeDocument validates the upload and extracts invoice data from it.
	AnalyzeDocument(ctx context.Context, userID, contentType string, data []byte) (*domain.ExtractedInvoiceData, error)
	// CreateExpenseFromExtraction files reviewed extraction output as a REGISTERED expense.
	CreateExpenseFromExtraction(ctx context.Context, userID string, req dto.CreateExpenseFromExtractionRequest) (*domain.Expense, error)
}
