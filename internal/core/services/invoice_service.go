package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	settingsSvc  portssvc.SettingsSvcFacade
	renderer     gateways.InvoiceRenderer
	mailer       gateways.Mailer
}

// NewInvoiceService creates the invoice service. renderer and mailer may be nil,
// in which case PDF and email operations fail with an external service error.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	settingsSvc portssvc.SettingsSvcFacade,
	renderer gateways.InvoiceRenderer,
	mailer gateways.Mailer,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:  newBaseService(),
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		settingsSvc:  settingsSvc,
		renderer:     renderer,
		mailer:       mailer,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	filter := domain.InvoiceFilter{Limit: params.Limit, Offset: params.Offset}
	if params.Status != "" {
		status := domain.InvoiceStatus(params.Status)
		if !status.IsValid() {
			return nil, validationError("invalid status filter")
		}
		filter.Status = &status
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// buildLines validates request lines and converts them, applying the default VAT rate.
func buildLines(invoiceID string, reqLines []dto.InvoiceLineRequest, defaultVAT decimal.Decimal) ([]domain.InvoiceLine, error) {
	if len(reqLines) == 0 {
		return nil, validationError("an invoice needs at least one line")
	}
	lines := make([]domain.InvoiceLine, 0, len(reqLines))
	for i, l := range reqLines {
		desc := strings.TrimSpace(l.Description)
		if desc == "" {
			return nil, validationError(fmt.Sprintf("line %d: description is required", i+1))
		}
		if !l.Quantity.IsPositive() {
			return nil, validationError(fmt.Sprintf("line %d: quantity must be greater than 0", i+1))
		}
		if l.UnitPrice.IsNegative() {
			return nil, validationError(fmt.Sprintf("line %d: unitPrice cannot be negative", i+1))
		}
		rate := defaultVAT
		if l.VATRate != nil {
			rate = *l.VATRate
		}
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return nil, validationError(fmt.Sprintf("line %d: vatRate must be between 0 and 100", i+1))
		}
		lines = append(lines, domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: desc,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     rate,
			SortOrder:   i,
		})
	}
	return lines, nil
}

// resolveDates applies today and the payment terms to missing dates.
func resolveDates(req dto.InvoiceRequest, now time.Time, dueDays int) (time.Time, time.Time, error) {
	issue := domain.StartOfDay(now)
	if req.IssueDate != nil {
		issue = domain.StartOfDay(*req.IssueDate)
	}
	due := issue.AddDate(0, 0, dueDays)
	if req.DueDate != nil {
		due = domain.StartOfDay(*req.DueDate)
	}
	if due.Before(issue) {
		return time.Time{}, time.Time{}, validationError("dueDate cannot be before issueDate")
	}
	return issue, due, nil
}

// prepare loads the owner's settings and customer and turns the request into an invoice draft.
func (s *invoiceService) prepare(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, *domain.Settings, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, userID, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("customer %s: %w", req.CustomerID, apperrors.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load customer: %w", err)
	}
	lines, err := buildLines(invoiceID, req.Lines, settings.VATRate)
	if err != nil {
		return nil, nil, err
	}
	issue, due, err := resolveDates(req, s.Now(), settings.PaymentDueDays)
	if err != nil {
		return nil, nil, err
	}
	return &domain.Invoice{
		InvoiceID:  invoiceID,
		UserID:     userID,
		CustomerID: customer.CustomerID,
		IssueDate:  issue,
		DueDate:    due,
		Status:     domain.InvoiceDraft,
		Notes:      strings.TrimSpace(req.Notes),
		Lines:      lines,
		Payments:   []domain.Payment{},
		Customer:   customer,
	}, settings, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	invoice, settings, err := s.prepare(ctx, userID, uuid.NewString(), req)
	if err != nil {
		return nil, err
	}
	invoice.Touch(s.Now())

	created, err := s.invoiceRepo.CreateInvoice(ctx, *invoice, *settings)
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	created.Customer = invoice.Customer
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", created.InvoiceID), slog.String("invoice_number", created.InvoiceNumber))
	return created, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	existing, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !existing.Status.IsEditable() {
		return nil, fmt.Errorf("%w: invoice %s is %s; only drafts can be edited", apperrors.ErrConflict, existing.InvoiceNumber, existing.Status)
	}

	updated, _, err := s.prepare(ctx, userID, invoiceID, req)
	if err != nil {
		return nil, err
	}
	updated.InvoiceNumber = existing.InvoiceNumber
	updated.CreatedAt = existing.CreatedAt
	updated.LastUpdatedAt = s.Now()

	if err := s.invoiceRepo.ReplaceDraftInvoice(ctx, *updated); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	return s.GetInvoice(ctx, userID, invoiceID)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.IsValid() {
		return nil, validationError("invalid status")
	}
	existing, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !existing.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot change invoice status from %s to %s", apperrors.ErrConflict, existing.Status, status)
	}
	if existing.Status == status {
		return existing, nil
	}

	now := s.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, userID, invoiceID, existing.Status, status, now); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	s.LogInfo(ctx, "Invoice status changed", slog.String("invoice_id", invoiceID), slog.String("from", string(existing.Status)), slog.String("to", string(status)))
	existing.Status = status
	existing.LastUpdatedAt = now
	return existing, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// decidePaymentStatus moves an invoice to PAID once payments cover its total.
func decidePaymentStatus(invoice domain.Invoice) (domain.InvoiceStatus, error) {
	if !invoice.Status.AcceptsPayments() {
		return "", validationError(fmt.Sprintf("invoice %s is cancelled and cannot receive payments", invoice.InvoiceNumber))
	}
	summary := invoicing.Summarize(invoice)
	if invoicing.IsFullyPaid(summary.Total, summary.Paid) {
		return domain.InvoicePaid, nil
	}
	return invoice.Status, nil
}

func (s *invoiceService) RegisterPayment(ctx context.Context, userID, invoiceID string, req dto.RegisterPaymentRequest) (*domain.Invoice, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, validationError("amount must be greater than 0")
	}
	now := s.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Date:      date,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: now,
	}

	invoice, err := s.invoiceRepo.RegisterPayment(ctx, userID, payment, decidePaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to register payment: %w", err)
	}
	s.LogInfo(ctx, "Payment registered",
		slog.String("invoice_id", invoiceID),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", string(invoice.Status)))
	return invoice, nil
}

func (s *invoiceService) document(ctx context.Context, userID, invoiceID string) (*gateways.InvoiceDocument, error) {
	invoice, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &gateways.InvoiceDocument{Invoice: *invoice, Settings: *settings, Summary: invoicing.Summarize(*invoice)}, nil
}

func (s *invoiceService) render(doc *gateways.InvoiceDocument) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("%w: PDF rendering is not configured", apperrors.ErrExternalService)
	}
	pdf, err := s.renderer.RenderInvoice(*doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return pdf, nil
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, *domain.Invoice, error) {
	doc, err := s.document(ctx, userID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.render(doc)
	if err != nil {
		return nil, nil, err
	}
	return pdf, &doc.Invoice, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	doc, err := s.document(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice := &doc.Invoice
	if invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: cancelled invoices cannot be sent", apperrors.ErrConflict)
	}
	if invoice.Customer == nil || strings.TrimSpace(invoice.Customer.Email) == "" {
		return nil, validationError("Kunde mangler e-postadresse")
	}
	if doc.Settings.EmailFrom == "" {
		return nil, validationError("E-post avsender ikke konfigurert")
	}
	if s.mailer == nil {
		return nil, fmt.Errorf("%w: email delivery is not configured", apperrors.ErrExternalService)
	}

	pdf, err := s.render(doc)
	if err != nil {
		return nil, err
	}
	email, err := composeInvoiceEmail(doc, pdf)
	if err != nil {
		return nil, err
	}
	messageID, err := s.mailer.Send(ctx, email)
	if err != nil {
		s.LogError(ctx, err, "Failed to send invoice email", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to send invoice email: %w", err)
	}

	now := s.Now()
	status, err := s.invoiceRepo.MarkInvoiceSent(ctx, userID, invoiceID, email.To, now)
	if err != nil {
		return nil, fmt.Errorf("invoice emailed but delivery could not be recorded: %w", err)
	}
	s.LogInfo(ctx, "Invoice sent", slog.String("invoice_id", invoiceID), slog.String("message_id", messageID))

	invoice.Status = status
	invoice.SentAt = &now
	invoice.SentTo = email.To
	invoice.LastUpdatedAt = now
	return invoice, nil
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context) (int64, error) {
	n, err := s.invoiceRepo.MarkOverdue(ctx, domain.StartOfDay(s.Now()))
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	s.LogInfo(ctx, "Overdue sweep finished", slog.Int64("updated", n))
	return n, nil
}
