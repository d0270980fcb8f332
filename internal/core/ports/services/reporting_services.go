package services

import (
	"context"
	"io"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/dto"
)

// ReportingSvcFacade aggregates invoices and expenses over a period.
type ReportingSvcFacade interface {
	// ResolvePeriod fills missing bounds: from defaults to January 1st of the current year, to defaults to now.
	ResolvePeriod(params dto.PeriodParams) domain.Period
	GetDashboardStats(ctx context.Context, userID string, params dto.PeriodParams) (*domain.DashboardStats, error)
	ExportLedger(ctx context.Context, userID string, params dto.PeriodParams, w io.Writer) error
}
