package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/shopspring/decimal"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(), settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

var hundred = decimal.NewFromInt(100)

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.GetOrCreateSettings(ctx, domain.NewDefaultSettings(userID, s.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	settings := req.ToSettings(userID)
	switch {
	case settings.InvoicePrefix == "":
		return nil, validationError("invoicePrefix is required")
	case settings.InvoiceNextNumber <= 0:
		return nil, validationError("invoiceNextNumber must be a positive integer")
	case settings.VATRate.IsNegative() || settings.VATRate.GreaterThan(hundred):
		return nil, validationError("vatRate must be between 0 and 100")
	case settings.PaymentDueDays <= 0:
		return nil, validationError("paymentDueDays must be positive")
	}
	now := s.Now()
	current, err := s.settingsRepo.GetOrCreateSettings(ctx, domain.NewDefaultSettings(userID, now))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	// Numbers below the counter may already be taken.
	if settings.InvoiceNextNumber < current.InvoiceNextNumber {
		return nil, validationError(fmt.Sprintf("invoiceNextNumber cannot be lower than %d", current.InvoiceNextNumber))
	}
	settings.CreatedAt = current.CreatedAt
	settings.LastUpdatedAt = now

	saved, err := s.settingsRepo.UpsertSettings(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.LogInfo(ctx, "Settings updated")
	return saved, nil
}
