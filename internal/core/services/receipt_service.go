package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/shopspring/decimal"
)

const extractedDateLayout = "2006-01-02"

type receiptService struct {
	BaseService
	extractor      gateways.DocumentExtractor
	pdfText        gateways.PDFTextExtractor
	supplierSvc    portssvc.SupplierSvcFacade
	expenseSvc     portssvc.ExpenseSvcFacade
	maxUploadBytes int64
}

// NewReceiptService wires document analysis. extractor may be nil when no API key is configured.
func NewReceiptService(
	extractor gateways.DocumentExtractor,
	pdfText gateways.PDFTextExtractor,
	supplierSvc portssvc.SupplierSvcFacade,
	expenseSvc portssvc.ExpenseSvcFacade,
	maxUploadBytes int64,
) portssvc.ReceiptSvcFacade {
	if maxUploadBytes <= 0 {
		maxUploadBytes = domain.MaxUploadBytes
	}
	return &receiptService{
		BaseService:    newBaseService(),
		extractor:      extractor,
		pdfText:        pdfText,
		supplierSvc:    supplierSvc,
		expenseSvc:     expenseSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

func (s *receiptService) AnalyzeDocument(ctx context.Context, userID, contentType string, data []byte) (*domain.ExtractedInvoiceData, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, validationError("No file provided")
	}
	kind, normalized, err := domain.ClassifyUpload(contentType, int64(len(data)), s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: document analysis is not configured", apperrors.ErrExternalService)
	}

	var extracted *domain.ExtractedInvoiceData
	switch kind {
	case domain.UploadPDF:
		text, err := s.pdfText.ExtractText(data)
		if err != nil {
			return nil, validationError("Could not read text from PDF")
		}
		if strings.TrimSpace(text) == "" {
			return nil, validationError("PDF contains no readable text")
		}
		extracted, err = s.extractor.ExtractFromText(ctx, text)
		if err != nil {
			s.LogError(ctx, err, "Text extraction failed")
			return nil, err
		}
	default:
		extracted, err = s.extractor.ExtractFromImage(ctx, normalized, data)
		if err != nil {
			s.LogError(ctx, err, "Image extraction failed")
			return nil, err
		}
	}
	s.LogInfo(ctx, "Document analyzed", slog.String("content_type", normalized), slog.String("confidence", string(extracted.Confidence)))
	return extracted, nil
}

func (s *receiptService) CreateExpenseFromExtraction(ctx context.Context, userID string, req dto.CreateExpenseFromExtractionRequest) (*domain.Expense, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	data := req.Data

	var supplierID *string
	if data.SupplierName != nil && strings.TrimSpace(*data.SupplierName) != "" {
		supplier, err := s.supplierSvc.FindOrCreateSupplierByName(ctx, userID, *data.SupplierName)
		if err != nil {
			return nil, err
		}
		supplierID = &supplier.SupplierID
	}

	date := s.Now()
	if data.Date != "" {
		parsed, err := time.Parse(extractedDateLayout, data.Date)
		if err != nil {
			return nil, validationError("date must be formatted as YYYY-MM-DD")
		}
		date = parsed
	}

	vat := decimal.Zero
	if data.VATAmount != nil {
		vat = *data.VATAmount
	}

	description := strings.TrimSpace(data.Description)
	if description == "" {
		description = "Faktura"
		if data.SupplierName != nil && strings.TrimSpace(*data.SupplierName) != "" {
			description = "Faktura fra " + strings.TrimSpace(*data.SupplierName)
		}
	}
	if data.InvoiceNumber != nil && *data.InvoiceNumber != "" && !strings.Contains(description, *data.InvoiceNumber) {
		description = fmt.Sprintf("%s (%s)", description, *data.InvoiceNumber)
	}

	return s.expenseSvc.CreateExpense(ctx, userID, dto.ExpenseRequest{
		SupplierID:  supplierID,
		CategoryID:  req.CategoryID,
		Description: description,
		Amount:      data.Amount,
		VATAmount:   &vat,
		Date:        date,
		Status:      domain.ExpenseRegistered,
	})
}
