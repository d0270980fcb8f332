package repositories

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// Every lookup is scoped by userID; rows owned by someone else surface as apperrors.ErrNotFound.

// CustomerRepositoryFacade persists customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, userID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, userID string, limit, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	// DeleteCustomer returns apperrors.ErrConflict while invoices still reference the customer.
	DeleteCustomer(ctx context.Context, userID, customerID string) error
}

// SupplierRepositoryFacade persists suppliers.
type SupplierRepositoryFacade interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, userID, supplierID string) (*domain.Supplier, error)
	// FindSupplierByNameContains does a case-insensitive substring match and returns the
	// alphabetically first hit, or apperrors.ErrNotFound.
	FindSupplierByNameContains(ctx context.Context, userID, name string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, userID string, limit, offset int) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	// DeleteSupplier detaches the supplier from its expenses before removing it.
	DeleteSupplier(ctx context.Context, userID, supplierID string) error
}

// CategoryRepositoryFacade persists categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// SettingsRepositoryFacade persists the per-user settings row.
type SettingsRepositoryFacade interface {
	// GetOrCreateSettings returns the stored row, inserting defaults first when none exists.
	GetOrCreateSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error)
	UpsertSettings(ctx context.Context, settings domain.Settings) (*domain.Settings, error)
}
