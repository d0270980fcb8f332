package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultVATRate           = 25
	DefaultInvoicePrefix     = "FAK"
	DefaultInvoiceNextNumber = 1000
	DefaultPaymentDueDays    = 14
)

// Settings is the per-user company profile and invoicing configuration.
type Settings struct {
	UserID            string          `json:"userID"`
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
	AuditFields
}

// NewDefaultSettings returns the settings a new user starts with.
func NewDefaultSettings(userID string, now time.Time) Settings {
	s := Settings{
		UserID:            userID,
		VATRate:           decimal.NewFromInt(DefaultVATRate),
		InvoicePrefix:     DefaultInvoicePrefix,
		InvoiceNextNumber: DefaultInvoiceNextNumber,
		PaymentDueDays:    DefaultPaymentDueDays,
	}
	s.Touch(now)
	return s
}

// FormatInvoiceNumber renders a reserved counter value as e.g. "FAK-1000".
func FormatInvoiceNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}
