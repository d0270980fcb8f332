package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseSelect = `
	SELECT e.expense_id, e.user_id, e.supplier_id, e.category_id, e.description, e.amount, e.vat_amount,
		e.expense_date, e.status, e.created_at, e.last_updated_at,
		s.name, c.name, c.type
	FROM expenses e
	LEFT JOIN suppliers s ON s.supplier_id = e.supplier_id
	LEFT JOIN categories c ON c.category_id = e.category_id`

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var supplierName, categoryName, categoryType *string
	err := row.Scan(
		&e.ExpenseID, &e.UserID, &e.SupplierID, &e.CategoryID, &e.Description, &e.Amount, &e.VATAmount,
		&e.Date, &e.Status, &e.CreatedAt, &e.LastUpdatedAt,
		&supplierName, &categoryName, &categoryType,
	)
	if err != nil {
		return nil, err
	}
	if e.SupplierID != nil && supplierName != nil {
		e.Supplier = &domain.Supplier{SupplierID: *e.SupplierID, UserID: e.UserID, Contact: domain.Contact{Name: *supplierName}}
	}
	if e.CategoryID != nil && categoryName != nil {
		e.Category = &domain.Category{CategoryID: *e.CategoryID, UserID: e.UserID, Name: *categoryName}
		if categoryType != nil {
			e.Category.Type = domain.CategoryType(*categoryType)
		}
	}
	e.Attachments = []domain.ExpenseAttachment{}
	return &e, nil
}

// attachAttachmentMeta loads attachment metadata without file contents.
func (r *PgxExpenseRepository) attachAttachmentMeta(ctx context.Context, expenses []*domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	ids := make([]string, len(expenses))
	byID := make(map[string]*domain.Expense, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ExpenseID
		byID[e.ExpenseID] = e
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT attachment_id, expense_id, file_name, content_type, size_bytes, created_at
		FROM expense_attachments WHERE expense_id = ANY($1)
		ORDER BY created_at;`, ids)
	if err != nil {
		return mapPgError(err, "load attachments")
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.ExpenseAttachment
		if err := rows.Scan(&a.AttachmentID, &a.ExpenseID, &a.FileName, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		byID[a.ExpenseID].Attachments = append(byID[a.ExpenseID].Attachments, a)
	}
	return rows.Err()
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := scanExpense(r.Pool.QueryRow(ctx, expenseSelect+` WHERE e.expense_id = $1 AND e.user_id = $2;`, expenseID, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find expense %s", expenseID))
	}
	if err := r.attachAttachmentMeta(ctx, []*domain.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	conds := []string{"e.user_id = $1"}
	args := []any{userID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("e.expense_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("e.expense_date <= $%d", len(args)))
	}
	page, args := pageClause(args, filter.Limit, filter.Offset)
	query := expenseSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY e.expense_date DESC, e.created_at DESC" + page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list expenses")
	}
	var ptrs []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		ptrs = append(ptrs, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading expenses: %w", err)
	}

	if err := r.attachAttachmentMeta(ctx, ptrs); err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, len(ptrs))
	for i, p := range ptrs {
		expenses[i] = *p
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, e domain.Expense) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expenses (expense_id, user_id, supplier_id, category_id, description, amount, vat_amount,
			expense_date, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		e.ExpenseID, e.UserID, e.SupplierID, e.CategoryID, e.Description, e.Amount, e.VATAmount,
		e.Date, e.Status, e.CreatedAt, e.LastUpdatedAt)
	if err != nil {
		return mapPgError(err, "save expense")
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, e domain.Expense) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET supplier_id = $3, category_id = $4, description = $5, amount = $6, vat_amount = $7,
			expense_date = $8, status = $9, last_updated_at = $10
		WHERE expense_id = $1 AND user_id = $2;`,
		e.ExpenseID, e.UserID, e.SupplierID, e.CategoryID, e.Description, e.Amount, e.VATAmount,
		e.Date, e.Status, e.LastUpdatedAt)
	return requireAffected(tag, err, "update expense")
}

// DeleteExpense removes the expense; attachments cascade.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2;`, expenseID, userID)
	return requireAffected(tag, err, "delete expense")
}

// SaveAttachment stores the file only if the parent expense belongs to userID.
func (r *PgxExpenseRepository) SaveAttachment(ctx context.Context, userID string, a domain.ExpenseAttachment) error {
	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO expense_attachments (attachment_id, expense_id, file_name, content_type, size_bytes, data, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (SELECT 1 FROM expenses WHERE expense_id = $2 AND user_id = $8);`,
		a.AttachmentID, a.ExpenseID, a.FileName, a.ContentType, a.Size, a.Data, a.CreatedAt, userID)
	return requireAffected(tag, err, "save attachment")
}

func (r *PgxExpenseRepository) FindAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error) {
	var a domain.ExpenseAttachment
	err := r.Pool.QueryRow(ctx, `
		SELECT a.attachment_id, a.expense_id, a.file_name, a.content_type, a.size_bytes, a.data, a.created_at
		FROM expense_attachments a
		JOIN expenses e ON e.expense_id = a.expense_id
		WHERE a.attachment_id = $1 AND a.expense_id = $2 AND e.user_id = $3;`,
		attachmentID, expenseID, userID,
	).Scan(&a.AttachmentID, &a.ExpenseID, &a.FileName, &a.ContentType, &a.Size, &a.Data, &a.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "find attachment")
	}
	return &a, nil
}

func (r *PgxExpenseRepository) DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM expense_attachments a
		USING expenses e
		WHERE a.expense_id = e.expense_id AND a.attachment_id = $1 AND a.expense_id = $2 AND e.user_id = $3;`,
		attachmentID, expenseID, userID)
	return requireAffected(tag, err, "delete attachment")
}
