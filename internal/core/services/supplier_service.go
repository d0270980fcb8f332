package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/google/uuid"
)

type supplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
}

func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvcFacade {
	return &supplierService{BaseService: newBaseService(), supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Supplier, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	contact := req.ToContact()
	if contact.Name == "" {
		return nil, validationError("name is required")
	}
	return s.save(ctx, userID, contact)
}

func (s *supplierService) save(ctx context.Context, userID string, contact domain.Contact) (*domain.Supplier, error) {
	supplier := domain.Supplier{SupplierID: uuid.NewString(), UserID: userID, Contact: contact}
	supplier.Touch(s.Now())

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier")
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	s.LogInfo(ctx, "Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, userID, supplierID string) (*domain.Supplier, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, userID string, params dto.ListParams) ([]domain.Supplier, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, userID, supplierID string, req dto.ContactRequest) (*domain.Supplier, error) {
	existing, err := s.GetSupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, err
	}
	contact := req.ToContact()
	if contact.Name == "" {
		return nil, validationError("name is required")
	}
	existing.Contact = contact
	existing.LastUpdatedAt = s.Now()

	if err := s.supplierRepo.UpdateSupplier(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update supplier %s: %w", supplierID, err)
	}
	return existing, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, userID, supplierID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.supplierRepo.DeleteSupplier(ctx, userID, supplierID); err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	return nil
}

func (s *supplierService) FindOrCreateSupplierByName(ctx context.Context, userID, name string) (*domain.Supplier, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("supplier name is required")
	}

	supplier, err := s.supplierRepo.FindSupplierByNameContains(ctx, userID, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up supplier by name: %w", err)
	}
	return s.save(ctx, userID, domain.Contact{Name: name})
}
