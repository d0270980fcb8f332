package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- Users ---

type MockUserRepository struct{ mock.Mock }

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, defaults domain.Settings) error {
	return m.Called(ctx, user, defaults).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Contacts ---

type MockCustomerRepository struct{ mock.Mock }

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, userID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, userID string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	return m.Called(ctx, userID, customerID).Error(0)
}

type MockSupplierRepository struct{ mock.Mock }

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, userID, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, userID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierByNameContains(ctx context.Context, userID, name string) (*domain.Supplier, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, userID string, limit, offset int) ([]domain.Supplier, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, userID, supplierID string) error {
	return m.Called(ctx, userID, supplierID).Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetOrCreateSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

// --- Invoices ---

type MockInvoiceRepository struct{ mock.Mock }

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, userID string, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, defaults domain.Settings) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ReplaceDraftInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, from, to domain.InvoiceStatus, at time.Time) error {
	return m.Called(ctx, userID, invoiceID, from, to, at).Error(0)
}

func (m *MockInvoiceRepository) MarkInvoiceSent(ctx context.Context, userID, invoiceID, sentTo string, sentAt time.Time) (domain.InvoiceStatus, error) {
	args := m.Called(ctx, userID, invoiceID, sentTo, sentAt)
	return args.Get(0).(domain.InvoiceStatus), args.Error(1)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	return m.Called(ctx, userID, invoiceID).Error(0)
}

// RegisterPayment behaves like the locked read-modify-write of the real repository:
// the stored invoice (first return value) gets the payment appended and the decider applied.
func (m *MockInvoiceRepository) RegisterPayment(ctx context.Context, userID string, payment domain.Payment, decide portsrepo.PaymentDecider) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *args.Get(0).(*domain.Invoice)
	stored.Payments = append(append([]domain.Payment{}, stored.Payments...), payment)
	status, err := decide(stored)
	if err != nil {
		return nil, err
	}
	stored.Status = status
	return &stored, nil
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Expenses ---

type MockExpenseRepository struct{ mock.Mock }

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return m.Called(ctx, userID, expenseID).Error(0)
}

func (m *MockExpenseRepository) SaveAttachment(ctx context.Context, userID string, attachment domain.ExpenseAttachment) error {
	return m.Called(ctx, userID, attachment).Error(0)
}

func (m *MockExpenseRepository) FindAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error) {
	args := m.Called(ctx, userID, expenseID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseAttachment), args.Error(1)
}

func (m *MockExpenseRepository) DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error {
	return m.Called(ctx, userID, expenseID, attachmentID).Error(0)
}

// --- Gateways ---

type MockExtractor struct{ mock.Mock }

var _ gateways.DocumentExtractor = (*MockExtractor)(nil)

func (m *MockExtractor) ExtractFromImage(ctx context.Context, contentType string, data []byte) (*domain.ExtractedInvoiceData, error) {
	args := m.Called(ctx, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInvoiceData), args.Error(1)
}

func (m *MockExtractor) ExtractFromText(ctx context.Context, text string) (*domain.ExtractedInvoiceData, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInvoiceData), args.Error(1)
}

type MockPDFText struct{ mock.Mock }

var _ gateways.PDFTextExtractor = (*MockPDFText)(nil)

func (m *MockPDFText) ExtractText(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

type MockRenderer struct{ mock.Mock }

var _ gateways.InvoiceRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) RenderInvoice(doc gateways.InvoiceDocument) ([]byte, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockMailer struct{ mock.Mock }

var _ gateways.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, email gateways.OutgoingEmail) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type MockExporter struct{ mock.Mock }

var _ gateways.LedgerExporter = (*MockExporter)(nil)

func (m *MockExporter) WriteLedger(w io.Writer, export gateways.LedgerExport) error {
	return m.Called(w, export).Error(0)
}
