package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_CreateTrimsAndScopes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	svc := services.NewCustomerService(repo)
	repo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.UserID == testUserID && c.Name == "Kunde AS" && c.Email == "post@kunde.no"
	})).Return(nil).Once()

	customer, err := svc.CreateCustomer(ctx, testUserID, dto.ContactRequest{Name: " Kunde AS ", Email: " post@kunde.no"})

	require.NoError(t, err)
	assert.NotEmpty(t, customer.CustomerID)
	repo.AssertExpectations(t)
}

func TestCustomerService_Validation(t *testing.T) {
	svc := services.NewCustomerService(new(MockCustomerRepository))

	_, err := svc.CreateCustomer(context.Background(), testUserID, dto.ContactRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateCustomer(context.Background(), "", dto.ContactRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCustomerService_DeleteReferenced(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	repo.On("DeleteCustomer", ctx, testUserID, "cust-1").Return(apperrors.ErrConflict).Once()

	err := services.NewCustomerService(repo).DeleteCustomer(ctx, testUserID, "cust-1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCustomerService_GetForeignIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	repo.On("FindCustomerByID", ctx, "intruder", "cust-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := services.NewCustomerService(repo).GetCustomer(ctx, "intruder", "cust-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSupplierService_FindOrCreateByName(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses match", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		existing := &domain.Supplier{SupplierID: "sup-1", Contact: domain.Contact{Name: "Elvia AS"}}
		repo.On("FindSupplierByNameContains", ctx, testUserID, "Elvia").Return(existing, nil).Once()

		got, err := services.NewSupplierService(repo).FindOrCreateSupplierByName(ctx, testUserID, " Elvia ")

		require.NoError(t, err)
		assert.Equal(t, existing, got)
		repo.AssertNotCalled(t, "SaveSupplier", mock.Anything, mock.Anything)
	})

	t.Run("creates when missing", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		repo.On("FindSupplierByNameContains", ctx, testUserID, "Telenor").Return(nil, apperrors.ErrNotFound).Once()
		repo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool { return s.Name == "Telenor" })).Return(nil).Once()

		got, err := services.NewSupplierService(repo).FindOrCreateSupplierByName(ctx, testUserID, "Telenor")

		require.NoError(t, err)
		assert.Equal(t, "Telenor", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := services.NewSupplierService(new(MockSupplierRepository)).FindOrCreateSupplierByName(ctx, testUserID, " ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Salg" && c.Type == domain.CategoryIncome
	})).Return(nil).Once()
	svc := services.NewCategoryService(repo)

	_, err := svc.CreateCategory(ctx, testUserID, dto.CategoryRequest{Name: "Salg", Type: domain.CategoryIncome})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, testUserID, dto.CategoryRequest{Name: "Salg", Type: "OTHER"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSettingsService(t *testing.T) {
	ctx := context.Background()

	t.Run("get seeds defaults", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		defaults := domain.NewDefaultSettings(testUserID, fixedNow)
		repo.On("GetOrCreateSettings", ctx, defaults).Return(&defaults, nil).Once()
		svc := services.NewSettingsService(repo)
		services.SetClock(svc, fixedClock)

		got, err := svc.GetSettings(ctx, testUserID)

		require.NoError(t, err)
		assert.Equal(t, "FAK", got.InvoicePrefix)
		repo.AssertExpectations(t)
	})

	t.Run("update validates", func(t *testing.T) {
		svc := services.NewSettingsService(new(MockSettingsRepository))
		base := dto.UpdateSettingsRequest{VATRate: dec("25"), InvoicePrefix: "INV", InvoiceNextNumber: 1, PaymentDueDays: 30}

		bad := []func(r *dto.UpdateSettingsRequest){
			func(r *dto.UpdateSettingsRequest) { r.InvoicePrefix = " " },
			func(r *dto.UpdateSettingsRequest) { r.InvoiceNextNumber = 0 },
			func(r *dto.UpdateSettingsRequest) { r.VATRate = dec("100.5") },
			func(r *dto.UpdateSettingsRequest) { r.PaymentDueDays = 0 },
		}
		for i, mutate := range bad {
			req := base
			mutate(&req)
			_, err := svc.UpdateSettings(ctx, testUserID, req)
			assert.ErrorIs(t, err, apperrors.ErrValidation, "case %d", i)
		}
	})

	t.Run("update upserts", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetOrCreateSettings", ctx, mock.Anything).Return(&domain.Settings{UserID: testUserID, InvoiceNextNumber: 1000}, nil).Once()
		repo.On("UpsertSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
			return s.UserID == testUserID && s.CompanyName == "Acme AS" && s.InvoicePrefix == "INV"
		})).Return(&domain.Settings{UserID: testUserID, CompanyName: "Acme AS"}, nil).Once()

		got, err := services.NewSettingsService(repo).UpdateSettings(ctx, testUserID, dto.UpdateSettingsRequest{
			CompanyName: " Acme AS ", VATRate: dec("25"), InvoicePrefix: "INV", InvoiceNextNumber: 5000, PaymentDueDays: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme AS", got.CompanyName)
		repo.AssertExpectations(t)
	})

	t.Run("counter cannot move backwards", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetOrCreateSettings", ctx, mock.Anything).Return(&domain.Settings{UserID: testUserID, InvoiceNextNumber: 1042}, nil).Once()
		svc := services.NewSettingsService(repo)

		_, err := svc.UpdateSettings(ctx, testUserID, dto.UpdateSettingsRequest{
			VATRate: dec("25"), InvoicePrefix: "FAK", InvoiceNextNumber: 1000, PaymentDueDays: 14,
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "cannot be lower than 1042")
		repo.AssertNotCalled(t, "UpsertSettings", mock.Anything, mock.Anything)
	})
}
