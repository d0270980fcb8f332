package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/google/uuid"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{BaseService: newBaseService(), customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Customer, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	contact := req.ToContact()
	if contact.Name == "" {
		return nil, validationError("name is required")
	}

	customer := domain.Customer{CustomerID: uuid.NewString(), UserID: userID, Contact: contact}
	customer.Touch(s.Now())

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, userID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, userID string, params dto.ListParams) ([]domain.Customer, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.ListCustomers(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID, customerID string, req dto.ContactRequest) (*domain.Customer, error) {
	existing, err := s.GetCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	contact := req.ToContact()
	if contact.Name == "" {
		return nil, validationError("name is required")
	}
	existing.Contact = contact
	existing.LastUpdatedAt = s.Now()

	if err := s.customerRepo.UpdateCustomer(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return existing, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.customerRepo.DeleteCustomer(ctx, userID, customerID); err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}
