package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Confidence is how sure the extractor is about its reading of a document.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const MaxUploadBytes int64 = 10 << 20

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ExtractedInvoiceData is the structured reading of a supplier invoice or receipt.
// Amount includes VAT as printed on the document.
type ExtractedInvoiceData struct {
	SupplierName  *string          `json:"supplierName"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	VATAmount     *decimal.Decimal `json:"vatAmount"`
	Date          string           `json:"date"`
	InvoiceNumber *string          `json:"invoiceNumber"`
	Confidence    Confidence       `json:"confidence"`
}

// UploadKind tells an extractor which input path to take.
type UploadKind int

const (
	UploadImage UploadKind = iota
	UploadPDF
)

// ClassifyUpload validates a document's declared content type and size.
// The returned content type is normalized (image/jpg becomes image/jpeg).
func ClassifyUpload(contentType string, size int64, maxBytes int64) (UploadKind, string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if !allowedUploadTypes[ct] {
		return 0, "", apperrors.NewBadRequestError("Invalid file type. Allowed: JPEG, PNG, WebP, PDF")
	}
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if size > maxBytes {
		return 0, "", apperrors.NewBadRequestError(fmt.Sprintf("File size exceeds %dMB limit", maxBytes>>20))
	}
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	if ct == "application/pdf" {
		return UploadPDF, ct, nil
	}
	return UploadImage, ct, nil
}
