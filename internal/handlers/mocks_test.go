package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string, emailVerified bool) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID, email, name, emailVerified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Customer, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, userID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, userID string, params dto.ListParams) ([]domain.Customer, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, userID, customerID string, req dto.ContactRequest) (*domain.Customer, error) {
	args := m.Called(ctx, userID, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	return m.Called(ctx, userID, customerID).Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoiceResult(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, invoiceID))
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, userID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, req))
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, invoiceID, req))
}
func (m *MockInvoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, invoiceID, status))
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	return m.Called(ctx, userID, invoiceID).Error(0)
}
func (m *MockInvoiceService) RegisterPayment(ctx context.Context, userID, invoiceID string, req dto.RegisterPaymentRequest) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, invoiceID, req))
}
func (m *MockInvoiceService) RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, *domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*domain.Invoice), args.Error(2)
}
func (m *MockInvoiceService) SendInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	return m.invoiceResult(m.Called(ctx, userID, invoiceID))
}
func (m *MockInvoiceService) MarkOverdueInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) expenseResult(args mock.Arguments) (*domain.Expense, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, userID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, userID, req))
}
func (m *MockExpenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, userID, expenseID, req))
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return m.Called(ctx, userID, expenseID).Error(0)
}
func (m *MockExpenseService) AddAttachment(ctx context.Context, userID, expenseID, fileName, contentType string, data []byte) (*domain.ExpenseAttachment, error) {
	args := m.Called(ctx, userID, expenseID, fileName, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseAttachment), args.Error(1)
}
func (m *MockExpenseService) GetAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error) {
	args := m.Called(ctx, userID, expenseID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseAttachment), args.Error(1)
}
func (m *MockExpenseService) DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error {
	return m.Called(ctx, userID, expenseID, attachmentID).Error(0)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) AnalyzeDocument(ctx context.Context, userID, contentType string, data []byte) (*domain.ExtractedInvoiceData, error) {
	args := m.Called(ctx, userID, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInvoiceData), args.Error(1)
}
func (m *MockReceiptService) CreateExpenseFromExtraction(ctx context.Context, userID string, req dto.CreateExpenseFromExtractionRequest) (*domain.Expense, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ResolvePeriod(params dto.PeriodParams) domain.Period {
	return m.Called(params).Get(0).(domain.Period)
}
func (m *MockReportingService) GetDashboardStats(ctx context.Context, userID string, params dto.PeriodParams) (*domain.DashboardStats, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockReportingService) ExportLedger(ctx context.Context, userID string, params dto.PeriodParams, w io.Writer) error {
	return m.Called(ctx, userID, params, w).Error(0)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)
