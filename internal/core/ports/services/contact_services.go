package services

import (
	"context"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/dto"
)

// CustomerSvcFacade manages the caller's customers.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, userID string, params dto.ListParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, userID, customerID string, req dto.ContactRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, userID, customerID string) error
}

// SupplierSvcFacade manages the caller's suppliers.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, userID, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, userID string, params dto.ListParams) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, userID, supplierID string, req dto.ContactRequest) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, userID, supplierID string) error
	// FindOrCreateSupplierByName returns the first supplier whose name contains name
	// (case-insensitive), creating one with exactly that name when none matches.
	FindOrCreateSupplierByName(ctx context.Context, userID, name string) (*domain.Supplier, error)
}

// CategorySvcFacade manages the caller's categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CategoryRequest) (*domain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// SettingsSvcFacade manages the caller's company profile and invoicing settings.
type SettingsSvcFacade interface {
	// GetSettings returns the settings, creating defaults on first access.
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}
