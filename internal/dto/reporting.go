package dto

import (
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodParams selects a reporting window; both ends are optional.
type PeriodParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

type DashboardResponse struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalInvoiced    decimal.Decimal `json:"totalInvoiced"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Profit           decimal.Decimal `json:"profit"`
	InvoiceCount     int             `json:"invoiceCount"`
	ExpenseCount     int             `json:"expenseCount"`
}

func ToDashboardResponse(s *domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		From:             s.From,
		To:               s.To,
		TotalInvoiced:    money(s.TotalInvoiced),
		TotalOutstanding: money(s.TotalOutstanding),
		TotalExpenses:    money(s.TotalExpenses),
		Profit:           money(s.Profit),
		InvoiceCount:     s.InvoiceCount,
		ExpenseCount:     s.ExpenseCount,
	}
}
