package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a repository for invoices together with their lines and payments.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
	SELECT i.invoice_id, i.user_id, i.customer_id, i.invoice_number, i.issue_date, i.due_date, i.status,
		i.notes, i.sent_at, i.sent_to, i.created_at, i.last_updated_at,
		c.customer_id, c.user_id, c.name, c.org_number, c.email, c.phone, c.address, c.postal_code, c.city,
		c.created_at, c.last_updated_at
	FROM invoices i
	JOIN customers c ON c.customer_id = i.customer_id`

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var cust domain.Customer
	dest := []any{
		&inv.InvoiceID, &inv.UserID, &inv.CustomerID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.Notes, &inv.SentAt, &inv.SentTo, &inv.CreatedAt, &inv.LastUpdatedAt,
		&cust.CustomerID, &cust.UserID,
	}
	dest = append(dest, contactDest(&cust.Contact, &cust.AuditFields)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	inv.Customer = &cust
	inv.Lines = []domain.InvoiceLine{}
	inv.Payments = []domain.Payment{}
	return &inv, nil
}

// attachChildren loads lines and payments for the given invoices in two queries.
func attachChildren(ctx context.Context, q querier, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	byID := make(map[string]*domain.Invoice, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
		byID[inv.InvoiceID] = inv
	}

	rows, err := q.Query(ctx, `
		SELECT line_id, invoice_id, description, quantity, unit_price, vat_rate, sort_order
		FROM invoice_lines WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, sort_order, line_id;`, ids)
	if err != nil {
		return mapPgError(err, "load invoice lines")
	}
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.LineID, &l.InvoiceID, &l.Description, &l.Quantity, &l.UnitPrice, &l.VATRate, &l.SortOrder); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice line: %w", err)
		}
		byID[l.InvoiceID].Lines = append(byID[l.InvoiceID].Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed reading invoice lines: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT payment_id, invoice_id, amount, payment_date, note, created_at
		FROM payments WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, payment_date, created_at;`, ids)
	if err != nil {
		return mapPgError(err, "load payments")
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.PaymentID, &p.InvoiceID, &p.Amount, &p.Date, &p.Note, &p.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		byID[p.InvoiceID].Payments = append(byID[p.InvoiceID].Payments, p)
	}
	return rows.Err()
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, q querier, userID, invoiceID string, lock bool) (*domain.Invoice, error) {
	query := invoiceSelect + ` WHERE i.invoice_id = $1 AND i.user_id = $2`
	if lock {
		query += ` FOR UPDATE OF i`
	}
	inv, err := scanInvoice(q.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find invoice %s", invoiceID))
	}
	if err := attachChildren(ctx, q, []*domain.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, r.Pool, userID, invoiceID, false)
}

// ListInvoices filters on the stored status, except that SENT and OVERDUE follow the
// derived status: a SENT invoice past its due date is listed as OVERDUE.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	conds := []string{"i.user_id = $1"}
	args := []any{userID}
	if filter.Status != nil {
		switch *filter.Status {
		case domain.InvoiceOverdue:
			conds = append(conds, "(i.status = 'OVERDUE' OR (i.status = 'SENT' AND i.due_date < CURRENT_DATE))")
		case domain.InvoiceSent:
			conds = append(conds, "i.status = 'SENT' AND i.due_date >= CURRENT_DATE")
		default:
			args = append(args, *filter.Status)
			conds = append(conds, fmt.Sprintf("i.status = $%d", len(args)))
		}
	}
	if filter.IssuedFrom != nil {
		args = append(args, *filter.IssuedFrom)
		conds = append(conds, fmt.Sprintf("i.issue_date >= $%d", len(args)))
	}
	if filter.IssuedTo != nil {
		args = append(args, *filter.IssuedTo)
		conds = append(conds, fmt.Sprintf("i.issue_date <= $%d", len(args)))
	}
	page, args := pageClause(args, filter.Limit, filter.Offset)
	query := invoiceSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY i.issue_date DESC, i.created_at DESC" + page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list invoices")
	}
	var ptrs []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		ptrs = append(ptrs, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading invoices: %w", err)
	}

	if err := attachChildren(ctx, r.Pool, ptrs); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, len(ptrs))
	for i, p := range ptrs {
		invoices[i] = *p
	}
	return invoices, nil
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO invoice_lines (line_id, invoice_id, description, quantity, unit_price, vat_rate, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			l.LineID, l.InvoiceID, l.Description, l.Quantity, l.UnitPrice, l.VATRate, l.SortOrder)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return mapPgError(err, "insert invoice line")
		}
	}
	return br.Close()
}

// CreateInvoice reserves the next invoice number from the owner's settings and stores
// the invoice with its lines, all in one transaction. Concurrent creates serialize on the
// settings row, so numbers are never handed out twice.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, defaults domain.Settings) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	defaults.UserID = invoice.UserID
	if err := insertSettingsIfMissing(ctx, tx, defaults); err != nil {
		return nil, err
	}

	var prefix string
	var number int64
	err = tx.QueryRow(ctx, `
		UPDATE settings
		SET invoice_next_number = invoice_next_number + 1, last_updated_at = $2
		WHERE user_id = $1
		RETURNING invoice_prefix, invoice_next_number - 1;`,
		invoice.UserID, invoice.CreatedAt,
	).Scan(&prefix, &number)
	if err != nil {
		return nil, mapPgError(err, "reserve invoice number")
	}
	invoice.InvoiceNumber = domain.FormatInvoiceNumber(prefix, number)

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (invoice_id, user_id, customer_id, invoice_number, issue_date, due_date, status,
			notes, sent_at, sent_to, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		invoice.InvoiceID,
		invoice.UserID,
		invoice.CustomerID,
		invoice.InvoiceNumber,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.Notes,
		invoice.SentAt,
		invoice.SentTo,
		invoice.CreatedAt,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "save invoice")
	}
	if err := insertLines(ctx, tx, invoice.Lines); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ReplaceDraftInvoice rewrites header and lines of a draft. Non-drafts yield ErrConflict.
func (r *PgxInvoiceRepository) ReplaceDraftInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.InvoiceStatus
	err = tx.QueryRow(ctx, `SELECT status FROM invoices WHERE invoice_id = $1 AND user_id = $2 FOR UPDATE;`,
		invoice.InvoiceID, invoice.UserID).Scan(&status)
	if err != nil {
		return mapPgError(err, "lock invoice")
	}
	if !status.IsEditable() {
		return fmt.Errorf("%w: invoice is %s; only drafts can be edited", apperrors.ErrConflict, status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE invoices SET customer_id = $3, issue_date = $4, due_date = $5, notes = $6, last_updated_at = $7
		WHERE invoice_id = $1 AND user_id = $2;`,
		invoice.InvoiceID, invoice.UserID, invoice.CustomerID, invoice.IssueDate, invoice.DueDate, invoice.Notes, invoice.LastUpdatedAt)
	if err != nil {
		return mapPgError(err, "update invoice")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return mapPgError(err, "delete invoice lines")
	}
	if err := insertLines(ctx, tx, invoice.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus moves the invoice from one status to another. The write only
// lands while the stored status still equals from; a concurrent change yields ErrConflict.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, from, to domain.InvoiceStatus, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices SET status = $4, last_updated_at = $5
		WHERE invoice_id = $1 AND user_id = $2 AND status = $3;`,
		invoiceID, userID, from, to, at)
	if err != nil {
		return mapPgError(err, "update invoice status")
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedWrite(ctx, userID, invoiceID, fmt.Sprintf("invoice is no longer %s", from))
	}
	return nil
}

// MarkInvoiceSent records delivery. The status is decided in the UPDATE itself: a draft
// becomes SENT and any other status is kept, so a payment committed meanwhile is never
// overwritten. Cancelled invoices are left alone and yield ErrConflict.
func (r *PgxInvoiceRepository) MarkInvoiceSent(ctx context.Context, userID, invoiceID, sentTo string, sentAt time.Time) (domain.InvoiceStatus, error) {
	var status domain.InvoiceStatus
	err := r.Pool.QueryRow(ctx, `
		UPDATE invoices
		SET status = CASE WHEN status = 'DRAFT' THEN 'SENT' ELSE status END,
			sent_to = $3, sent_at = $4, last_updated_at = $4
		WHERE invoice_id = $1 AND user_id = $2 AND status <> 'CANCELLED'
		RETURNING status;`,
		invoiceID, userID, sentTo, sentAt,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", r.explainMissedWrite(ctx, userID, invoiceID, "invoice was cancelled")
	}
	if err != nil {
		return "", mapPgError(err, "mark invoice sent")
	}
	return status, nil
}

// explainMissedWrite tells a guarded UPDATE that matched nothing apart: a row the caller
// owns means its status moved on (ErrConflict), otherwise the invoice is not theirs.
func (r *PgxInvoiceRepository) explainMissedWrite(ctx context.Context, userID, invoiceID, reason string) error {
	var current domain.InvoiceStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM invoices WHERE invoice_id = $1 AND user_id = $2;`,
		invoiceID, userID).Scan(&current)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("find invoice %s", invoiceID))
	}
	return fmt.Errorf("%w: %s (now %s)", apperrors.ErrConflict, reason, current)
}

// DeleteInvoice removes the invoice; lines and payments cascade.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND user_id = $2;`, invoiceID, userID)
	return requireAffected(tag, err, "delete invoice")
}

// RegisterPayment locks the invoice row, appends the payment and persists the status chosen by decide.
func (r *PgxInvoiceRepository) RegisterPayment(ctx context.Context, userID string, payment domain.Payment, decide portsrepo.PaymentDecider) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	invoice, err := r.findInvoice(ctx, tx, userID, payment.InvoiceID, true)
	if err != nil {
		return nil, err
	}
	invoice.Payments = append(invoice.Payments, payment)
	status, err := decide(*invoice)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (payment_id, invoice_id, amount, payment_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		payment.PaymentID, payment.InvoiceID, payment.Amount, payment.Date, payment.Note, payment.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "save payment")
	}

	_, err = tx.Exec(ctx, `UPDATE invoices SET status = $2, last_updated_at = $3 WHERE invoice_id = $1;`,
		payment.InvoiceID, status, payment.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "update invoice after payment")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	invoice.Status = status
	invoice.LastUpdatedAt = payment.CreatedAt
	return invoice, nil
}

// MarkOverdue persists OVERDUE for every SENT invoice due before asOf, across all owners.
func (r *PgxInvoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices SET status = 'OVERDUE', last_updated_at = NOW()
		WHERE status = 'SENT' AND due_date < $1::date;`, asOf)
	if err != nil {
		return 0, mapPgError(err, "mark overdue invoices")
	}
	return tag.RowsAffected(), nil
}
