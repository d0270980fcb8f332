package pgsql

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

const settingsColumns = `user_id, company_name, org_number, address, postal_code, city, logo, bank_account,
	vat_rate, invoice_prefix, invoice_next_number, email_from, payment_due_days, created_at, last_updated_at`

func scanSettings(row rowScanner) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(
		&s.UserID,
		&s.CompanyName,
		&s.OrgNumber,
		&s.Address,
		&s.PostalCode,
		&s.City,
		&s.Logo,
		&s.BankAccount,
		&s.VATRate,
		&s.InvoicePrefix,
		&s.InvoiceNextNumber,
		&s.EmailFrom,
		&s.PaymentDueDays,
		&s.CreatedAt,
		&s.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func settingsArgs(s domain.Settings) []any {
	return []any{
		s.UserID,
		s.CompanyName,
		s.OrgNumber,
		s.Address,
		s.PostalCode,
		s.City,
		s.Logo,
		s.BankAccount,
		s.VATRate,
		s.InvoicePrefix,
		s.InvoiceNextNumber,
		s.EmailFrom,
		s.PaymentDueDays,
		s.CreatedAt,
		s.LastUpdatedAt,
	}
}

// insertSettingsIfMissing seeds the owner's settings row and leaves an existing one untouched.
func insertSettingsIfMissing(ctx context.Context, q querier, s domain.Settings) error {
	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO NOTHING;
	`
	if _, err := q.Exec(ctx, query, settingsArgs(s)...); err != nil {
		return mapPgError(err, "seed settings")
	}
	return nil
}

func (r *PgxSettingsRepository) GetOrCreateSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error) {
	if err := insertSettingsIfMissing(ctx, r.Pool, defaults); err != nil {
		return nil, err
	}
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE user_id = $1;`
	settings, err := scanSettings(r.Pool.QueryRow(ctx, query, defaults.UserID))
	if err != nil {
		return nil, mapPgError(err, "load settings")
	}
	return settings, nil
}

// UpsertSettings saves the owner's settings. The invoice counter only moves forward,
// so a stale copy can never hand out numbers that were already issued.
func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			org_number = EXCLUDED.org_number,
			address = EXCLUDED.address,
			postal_code = EXCLUDED.postal_code,
			city = EXCLUDED.city,
			logo = EXCLUDED.logo,
			bank_account = EXCLUDED.bank_account,
			vat_rate = EXCLUDED.vat_rate,
			invoice_prefix = EXCLUDED.invoice_prefix,
			invoice_next_number = GREATEST(settings.invoice_next_number, EXCLUDED.invoice_next_number),
			email_from = EXCLUDED.email_from,
			payment_due_days = EXCLUDED.payment_due_days,
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING ` + settingsColumns + `;
	`
	saved, err := scanSettings(r.Pool.QueryRow(ctx, query, settingsArgs(s)...))
	if err != nil {
		return nil, mapPgError(err, "save settings")
	}
	return saved, nil
}
