package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, name, role, auth_provider, COALESCE(provider_user_id, ''),
	password_hash, email_verified, created_at, last_updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.AuthProvider,
		&u.ProviderUserID,
		&u.PasswordHash,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveUser inserts the user and the default settings row in one transaction.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, defaults domain.Settings) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO users (user_id, email, name, role, auth_provider, provider_user_id,
			password_hash, email_verified, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.Role,
		user.AuthProvider,
		user.ProviderUserID,
		user.PasswordHash,
		user.EmailVerified,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err, "save user")
	}

	defaults.UserID = user.UserID
	if err := insertSettingsIfMissing(ctx, tx, defaults); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users SET
			email = $2, name = $3, role = $4, auth_provider = $5, provider_user_id = NULLIF($6, ''),
			password_hash = $7, email_verified = $8, last_updated_at = $9
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.Role,
		user.AuthProvider,
		user.ProviderUserID,
		user.PasswordHash,
		user.EmailVerified,
		user.LastUpdatedAt,
	)
	return requireAffected(tag, err, "update user")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find user by ID %s", userID))
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapPgError(err, "find user by email")
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, provider, providerUserID))
	if err != nil {
		return nil, mapPgError(err, "find user by provider")
	}
	return user, nil
}
