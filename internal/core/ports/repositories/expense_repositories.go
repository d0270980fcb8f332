package repositories

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// ExpenseReader defines read operations for expenses. Returned expenses carry supplier,
// category and attachment metadata (without file bytes).
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseAttachmentStore keeps receipt files next to their expense.
type ExpenseAttachmentStore interface {
	SaveAttachment(ctx context.Context, userID string, attachment domain.ExpenseAttachment) error
	// FindAttachment returns the attachment including its bytes.
	FindAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error)
	DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseAttachmentStore
}
