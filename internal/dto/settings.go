package dto

import (
	"strings"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest replaces the owner's settings.
type UpdateSettingsRequest struct {
	CompanyName       string          `json:"companyName"`
	OrgNumber         string          `json:"orgNumber"`
	Address           string          `json:"address"`
	PostalCode        string          `json:"postalCode"`
	City              string          `json:"city"`
	Logo              string          `json:"logo"`
	BankAccount       string          `json:"bankAccount"`
	VATRate           decimal.Decimal `json:"vatRate" binding:"gte=0,lte=100"`
	InvoicePrefix     string          `json:"invoicePrefix" binding:"required,max=20"`
	InvoiceNextNumber int64           `json:"invoiceNextNumber" binding:"required,gt=0"`
	EmailFrom         string          `json:"emailFrom" binding:"omitempty,email"`
	PaymentDueDays    int             `json:"paymentDueDays" binding:"required,gt=0"`
}

// ToSettings applies the request onto the owner's settings row.
func (r UpdateSettingsRequest) ToSettings(userID string) domain.Settings {
	return domain.Settings{
		UserID:            userID,
		CompanyName:       strings.TrimSpace(r.CompanyName),
		OrgNumber:         strings.TrimSpace(r.OrgNumber),
		Address:           strings.TrimSpace(r.Address),
		PostalCode:        strings.TrimSpace(r.PostalCode),
		City:              strings.TrimSpace(r.City),
		Logo:              strings.TrimSpace(r.Logo),
		BankAccount:       strings.TrimSpace(r.BankAccount),
		VATRate:           r.VATRate,
		InvoicePrefix:     strings.TrimSpace(r.InvoicePrefix),
		InvoiceNextNumber: r.InvoiceNextNumber,
		EmailFrom:         strings.TrimSpace(r.EmailFrom),
		PaymentDueDays:    r.PaymentDueDays,
	}
}

type SettingsResponse struct {
	CompanyName       string          `json:"companyName"`
	OrgNumber         string          `json:"orgNumber"`
	Address           string          `json:"address"`
	PostalCode        string          `json:"postalCode"`
	City              string          `json:"city"`
	Logo              string          `json:"logo"`
	BankAccount       string          `json:"bankAccount"`
	VATRate           decimal.Decimal `json:"vatRate"`
	InvoicePrefix     string          `json:"invoicePrefix"`
	InvoiceNextNumber int64           `json:"invoiceNextNumber"`
	EmailFrom         string          `json:"emailFrom"`
	PaymentDueDays    int             `json:"paymentDueDays"`
}

func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		CompanyName:       s.CompanyName,
		OrgNumber:         s.OrgNumber,
		Address:           s.Address,
		PostalCode:        s.PostalCode,
		City:              s.City,
		Logo:              s.Logo,
		BankAccount:       s.BankAccount,
		VATRate:           s.VATRate,
		InvoicePrefix:     s.InvoicePrefix,
		InvoiceNextNumber: s.InvoiceNextNumber,
		EmailFrom:         s.EmailFrom,
		PaymentDueDays:    s.PaymentDueDays,
	}
}
