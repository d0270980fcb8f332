package pgsql

import (
	"context"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestAttachments_ScopedThroughExpenseOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("save", func(t *testing.T) {
		pool := newMockPool(t)
		repo := &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
		pool.ExpectExec(sqlFragment(`WHERE EXISTS (SELECT 1 FROM expenses WHERE expense_id = $2 AND user_id = $8)`)).
			WithArgs("att-1", "exp-1", "kvittering.pdf", "application/pdf", int64(4), []byte("%PDF"), repoNow, "intruder").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err := repo.SaveAttachment(ctx, "intruder", domain.ExpenseAttachment{
			AttachmentID: "att-1", ExpenseID: "exp-1", FileName: "kvittering.pdf",
			ContentType: "application/pdf", Size: 4, Data: []byte("%PDF"), CreatedAt: repoNow,
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("find", func(t *testing.T) {
		pool := newMockPool(t)
		repo := &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
		pool.ExpectQuery(sqlFragment(`JOIN expenses e ON e.expense_id = a.expense_id
			WHERE a.attachment_id = $1 AND a.expense_id = $2 AND e.user_id = $3`)).
			WithArgs("att-1", "exp-1", "intruder").
			WillReturnRows(pgxmock.NewRows([]string{"attachment_id"}))

		_, err := repo.FindAttachment(ctx, "intruder", "exp-1", "att-1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		pool := newMockPool(t)
		repo := &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
		pool.ExpectExec(sqlFragment(`USING expenses e`) + `[\s\S]*` + sqlFragment(`AND e.user_id = $3`)).
			WithArgs("att-1", "exp-1", "intruder").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeleteAttachment(ctx, "intruder", "exp-1", "att-1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}
