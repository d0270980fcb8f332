package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	settingsSvc portssvc.SettingsSvcFacade
	exporter    gateways.LedgerExporter
}

func NewReportingService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	settingsSvc portssvc.SettingsSvcFacade,
	exporter gateways.LedgerExporter,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService: newBaseService(),
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		settingsSvc: settingsSvc,
		exporter:    exporter,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ResolvePeriod defaults to the current calendar year up to today. To is inclusive of its whole day.
func (s *reportingService) ResolvePeriod(params dto.PeriodParams) domain.Period {
	now := s.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := now
	if params.From != nil {
		from = domain.StartOfDay(*params.From)
	}
	if params.To != nil {
		to = domain.StartOfDay(*params.To).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return domain.Period{From: from, To: to}
}

func (s *reportingService) load(ctx context.Context, userID string, period domain.Period) ([]domain.Invoice, []domain.Expense, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, nil, err
	}
	if period.To.Before(period.From) {
		return nil, nil, validationError("to cannot be before from")
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, domain.InvoiceFilter{IssuedFrom: &period.From, IssuedTo: &period.To})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoices for period: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, domain.ExpenseFilter{From: &period.From, To: &period.To})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses for period: %w", err)
	}
	return invoices, expenses, nil
}

// computeStats aggregates a period. Outstanding counts the remaining amount of SENT and OVERDUE invoices.
func computeStats(period domain.Period, invoices []domain.Invoice, expenses []domain.Expense, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		Period:           period,
		TotalInvoiced:    decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalExpenses:    decimal.Zero,
		InvoiceCount:     len(invoices),
		ExpenseCount:     len(expenses),
	}
	for _, inv := range invoices {
		status := inv.EffectiveStatus(now)
		summary := invoicing.Summarize(inv)
		stats.TotalInvoiced = stats.TotalInvoiced.Add(summary.Total)
		if status == domain.InvoiceSent || status == domain.InvoiceOverdue {
			stats.TotalOutstanding = stats.TotalOutstanding.Add(summary.Remaining)
		}
	}
	for _, e := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.GrossAmount())
	}
	stats.Profit = stats.TotalInvoiced.Sub(stats.TotalExpenses)
	return stats
}

func (s *reportingService) GetDashboardStats(ctx context.Context, userID string, params dto.PeriodParams) (*domain.DashboardStats, error) {
	period := s.ResolvePeriod(params)
	invoices, expenses, err := s.load(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	stats := computeStats(period, invoices, expenses, s.Now())
	return &stats, nil
}

func (s *reportingService) ExportLedger(ctx context.Context, userID string, params dto.PeriodParams, w io.Writer) error {
	period := s.ResolvePeriod(params)
	invoices, expenses, err := s.load(ctx, userID, period)
	if err != nil {
		return err
	}
	settings, err := s.settingsSvc.GetSettings(ctx, userID)
	if err != nil {
		return err
	}
	export := gateways.LedgerExport{Period: period, Settings: *settings, Invoices: invoices, Expenses: expenses, Now: s.Now()}
	if err := s.exporter.WriteLedger(w, export); err != nil {
		s.LogError(ctx, err, "Failed to write ledger export")
		return fmt.Errorf("failed to write ledger export: %w", err)
	}
	s.LogInfo(ctx, "Ledger exported", slog.Int("invoices", len(invoices)), slog.Int("expenses", len(expenses)))
	return nil
}
