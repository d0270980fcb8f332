package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	supplierRepo   portsrepo.SupplierRepositoryFacade
	categoryRepo   portsrepo.CategoryRepositoryFacade
	maxUploadBytes int64
}

func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	supplierRepo portsrepo.SupplierRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	maxUploadBytes int64,
) portssvc.ExpenseSvcFacade {
	if maxUploadBytes <= 0 {
		maxUploadBytes = domain.MaxUploadBytes
	}
	return &expenseService{
		BaseService:    newBaseService(),
		expenseRepo:    expenseRepo,
		supplierRepo:   supplierRepo,
		categoryRepo:   categoryRepo,
		maxUploadBytes: maxUploadBytes,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// resolveRefs checks that referenced supplier and category belong to the user.
func (s *expenseService) resolveRefs(ctx context.Context, userID string, e *domain.Expense) error {
	if e.SupplierID != nil && *e.SupplierID != "" {
		supplier, err := s.supplierRepo.FindSupplierByID(ctx, userID, *e.SupplierID)
		if err != nil {
			return refError("supplier", *e.SupplierID, err)
		}
		e.Supplier = supplier
	} else {
		e.SupplierID = nil
	}
	if e.CategoryID != nil && *e.CategoryID != "" {
		category, err := s.categoryRepo.FindCategoryByID(ctx, userID, *e.CategoryID)
		if err != nil {
			return refError("category", *e.CategoryID, err)
		}
		e.Category = category
	} else {
		e.CategoryID = nil
	}
	return nil
}

func refError(kind, id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return validationError(fmt.Sprintf("unknown %s %s", kind, id))
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}

func (s *expenseService) fromRequest(req dto.ExpenseRequest) (domain.Expense, error) {
	e := domain.Expense{
		SupplierID:  req.SupplierID,
		CategoryID:  req.CategoryID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		VATAmount:   decimal.Zero,
		Date:        req.Date,
		Status:      req.Status,
	}
	if req.VATAmount != nil {
		e.VATAmount = *req.VATAmount
	}
	if e.Status == "" {
		e.Status = domain.ExpenseRegistered
	}
	switch {
	case e.Description == "":
		return e, validationError("description is required")
	case !e.Amount.IsPositive():
		return e, validationError("amount must be greater than 0")
	case e.VATAmount.IsNegative():
		return e, validationError("vatAmount cannot be negative")
	case !e.Status.IsValid():
		return e, validationError("invalid status")
	case e.Date.IsZero():
		return e, validationError("date is required")
	}
	return e, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	expense, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	expense.ExpenseID = uuid.NewString()
	expense.UserID = userID
	expense.Attachments = []domain.ExpenseAttachment{}
	expense.Touch(s.Now())
	return s.save(ctx, expense)
}

func (s *expenseService) save(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	if err := s.resolveRefs(ctx, expense.UserID, &expense); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) ([]domain.Expense, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	filter := domain.ExpenseFilter{From: params.From, To: params.To, Limit: params.Limit, Offset: params.Offset}
	if params.Status != "" {
		status := domain.ExpenseStatus(params.Status)
		if !status.IsValid() {
			return nil, validationError("invalid status filter")
		}
		filter.Status = &status
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, validationError("to cannot be before from")
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	existing, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	updated, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ExpenseID = existing.ExpenseID
	updated.UserID = userID
	updated.Attachments = existing.Attachments
	updated.CreatedAt = existing.CreatedAt
	updated.LastUpdatedAt = s.Now()

	if err := s.resolveRefs(ctx, userID, &updated); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.UpdateExpense(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return &updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) AddAttachment(ctx context.Context, userID, expenseID, fileName, contentType string, data []byte) (*domain.ExpenseAttachment, error) {
	if _, err := s.GetExpense(ctx, userID, expenseID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, validationError("No file provided")
	}
	_, normalized, err := domain.ClassifyUpload(contentType, int64(len(data)), s.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	attachment := domain.ExpenseAttachment{
		AttachmentID: uuid.NewString(),
		ExpenseID:    expenseID,
		FileName:     name,
		ContentType:  normalized,
		Size:         int64(len(data)),
		Data:         data,
		CreatedAt:    s.Now(),
	}
	if err := s.expenseRepo.SaveAttachment(ctx, userID, attachment); err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	s.LogInfo(ctx, "Attachment stored", slog.String("expense_id", expenseID), slog.Int64("size", attachment.Size))
	return &attachment, nil
}

func (s *expenseService) GetAttachment(ctx context.Context, userID, expenseID, attachmentID string) (*domain.ExpenseAttachment, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	attachment, err := s.expenseRepo.FindAttachment(ctx, userID, expenseID, attachmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment %s: %w", attachmentID, err)
	}
	return attachment, nil
}

func (s *expenseService) DeleteAttachment(ctx context.Context, userID, expenseID, attachmentID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteAttachment(ctx, userID, expenseID, attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentID, err)
	}
	return nil
}
