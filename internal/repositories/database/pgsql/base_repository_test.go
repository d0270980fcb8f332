package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperrors.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, apperrors.ErrConflict},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "invoices_check"}, apperrors.ErrValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tc.err, "do thing"), tc.want)
		})
	}

	assert.NoError(t, mapPgError(nil, "noop"))

	other := errors.New("connection reset")
	err := mapPgError(other, "list invoices")
	assert.ErrorIs(t, err, other)
	assert.EqualError(t, err, "failed to list invoices: connection reset")
}

func TestRequireAffected(t *testing.T) {
	assert.ErrorIs(t, requireAffected(pgconn.NewCommandTag("UPDATE 0"), nil, "update"), apperrors.ErrNotFound)
	assert.NoError(t, requireAffected(pgconn.NewCommandTag("DELETE 1"), nil, "delete"))
	assert.ErrorIs(t, requireAffected(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"}, "delete"), apperrors.ErrConflict)
}

func TestPageClause(t *testing.T) {
	clause, args := pageClause([]any{"user-1"}, 0, 0)
	assert.Equal(t, "", clause)
	assert.Len(t, args, 1)

	clause, args = pageClause([]any{"user-1"}, 50, 100)
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"user-1", 50, 100}, args)

	clause, args = pageClause([]any{"user-1", "SENT"}, 0, 10)
	assert.Equal(t, " OFFSET $3", clause)
	assert.Equal(t, []any{"user-1", "SENT", 10}, args)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Elvia%", containsPattern("Elvia"))
	assert.Equal(t, `%100\% rabatt\_AS%`, containsPattern("100% rabatt_AS"))
}
