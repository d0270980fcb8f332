package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	expenseRepo  *MockExpenseRepository
	supplierRepo *MockSupplierRepository
	categoryRepo *MockCategoryRepository
	service      portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.expenseRepo = new(MockExpenseRepository)
	suite.supplierRepo = new(MockSupplierRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.service = services.NewExpenseService(suite.expenseRepo, suite.supplierRepo, suite.categoryRepo, 1024)
	services.SetClock(suite.service, fixedClock)
}

func strPtr(s string) *string { return &s }

func (suite *ExpenseServiceTestSuite) validRequest() dto.ExpenseRequest {
	vat := dec("25")
	return dto.ExpenseRequest{
		SupplierID:  strPtr("sup-1"),
		CategoryID:  strPtr("cat-1"),
		Description: " Kontorrekvisita ",
		Amount:      dec("100"),
		VATAmount:   &vat,
		Date:        time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		Status:      domain.ExpenseRegistered,
	}
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	supplier := &domain.Supplier{SupplierID: "sup-1", UserID: testUserID, Contact: domain.Contact{Name: "Staples"}}
	category := &domain.Category{CategoryID: "cat-1", UserID: testUserID, Name: "Kontor", Type: domain.CategoryExpense}
	suite.supplierRepo.On("FindSupplierByID", suite.ctx, testUserID, "sup-1").Return(supplier, nil).Once()
	suite.categoryRepo.On("FindCategoryByID", suite.ctx, testUserID, "cat-1").Return(category, nil).Once()
	suite.expenseRepo.On("SaveExpense", suite.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.UserID == testUserID && e.Description == "Kontorrekvisita" && e.GrossAmount().Equal(dec("125"))
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(suite.ctx, testUserID, suite.validRequest())

	suite.Require().NoError(err)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal("Staples", expense.Supplier.Name)
	suite.Equal("Kontor", expense.Category.Name)
	suite.Equal(fixedNow, expense.CreatedAt)
	suite.expenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ForeignSupplier() {
	suite.supplierRepo.On("FindSupplierByID", suite.ctx, testUserID, "sup-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExpense(suite.ctx, testUserID, suite.validRequest())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.expenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Validation() {
	negative := dec("-1")
	cases := map[string]func(r *dto.ExpenseRequest){
		"zero amount":    func(r *dto.ExpenseRequest) { r.Amount = dec("0") },
		"negative vat":   func(r *dto.ExpenseRequest) { r.VATAmount = &negative },
		"blank text":     func(r *dto.ExpenseRequest) { r.Description = " " },
		"unknown status": func(r *dto.ExpenseRequest) { r.Status = "OPEN" },
		"missing date":   func(r *dto.ExpenseRequest) { r.Date = time.Time{} },
	}
	for name, mutate := range cases {
		req := suite.validRequest()
		mutate(&req)
		_, err := suite.service.CreateExpense(suite.ctx, testUserID, req)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_KeepsAttachments() {
	existing := &domain.Expense{
		ExpenseID:   "exp-1",
		UserID:      testUserID,
		Attachments: []domain.ExpenseAttachment{{AttachmentID: "att-1"}},
		AuditFields: domain.AuditFields{CreatedAt: fixedNow.Add(-time.Hour)},
	}
	req := suite.validRequest()
	req.SupplierID = nil
	req.CategoryID = strPtr("")
	suite.expenseRepo.On("FindExpenseByID", suite.ctx, testUserID, "exp-1").Return(existing, nil).Once()
	suite.expenseRepo.On("UpdateExpense", suite.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ExpenseID == "exp-1" && e.SupplierID == nil && e.CategoryID == nil && len(e.Attachments) == 1
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(suite.ctx, testUserID, "exp-1", req)

	suite.Require().NoError(err)
	suite.Equal(existing.CreatedAt, updated.CreatedAt)
	suite.Equal(fixedNow, updated.LastUpdatedAt)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_InvertedRange() {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := suite.service.ListExpenses(suite.ctx, testUserID, dto.ListExpensesParams{From: &from, To: &to})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestAddAttachment() {
	suite.expenseRepo.On("FindExpenseByID", suite.ctx, testUserID, "exp-1").Return(&domain.Expense{ExpenseID: "exp-1"}, nil)

	suite.Run("stores normalized upload", func() {
		data := []byte("jpegdata")
		suite.expenseRepo.On("SaveAttachment", suite.ctx, testUserID, mock.MatchedBy(func(a domain.ExpenseAttachment) bool {
			return a.ExpenseID == "exp-1" && a.ContentType == "image/jpeg" && a.FileName == "kvittering.jpg" && bytes.Equal(a.Data, data)
		})).Return(nil).Once()

		att, err := suite.service.AddAttachment(suite.ctx, testUserID, "exp-1", "../../kvittering.jpg", "image/jpg", data)

		suite.Require().NoError(err)
		suite.Equal(int64(len(data)), att.Size)
	})
	suite.Run("rejects wrong type", func() {
		_, err := suite.service.AddAttachment(suite.ctx, testUserID, "exp-1", "a.txt", "text/plain", []byte("x"))
		suite.ErrorIs(err, apperrors.ErrValidation)
	})
	suite.Run("rejects oversized file", func() {
		_, err := suite.service.AddAttachment(suite.ctx, testUserID, "exp-1", "a.pdf", "application/pdf", make([]byte, 2048))
		suite.ErrorIs(err, apperrors.ErrValidation)
	})
	suite.Run("rejects empty file", func() {
		_, err := suite.service.AddAttachment(suite.ctx, testUserID, "exp-1", "a.pdf", "application/pdf", nil)
		suite.ErrorIs(err, apperrors.ErrValidation)
	})
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
