package pgsql

import (
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		SupplierRepo: newPgxSupplierRepository(dbPool),
		CategoryRepo: newPgxCategoryRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
	}
}
