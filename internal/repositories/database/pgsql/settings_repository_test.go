package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpsertSettings_CounterOnlyMovesForward(t *testing.T) {
	pool := newMockPool(t)
	repo := &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
	unavailable := errors.New("connection reset")
	pool.ExpectQuery(sqlFragment(`invoice_next_number = GREATEST(settings.invoice_next_number, EXCLUDED.invoice_next_number)`)).
		WillReturnError(unavailable)

	_, err := repo.UpsertSettings(context.Background(), domain.NewDefaultSettings("user-1", repoNow))

	assert.ErrorIs(t, err, unavailable)
	assert.NoError(t, pool.ExpectationsWereMet())
}
