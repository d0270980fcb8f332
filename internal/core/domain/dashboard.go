package domain

import "github.com/shopspring/decimal"

// DashboardStats summarises a period of business activity.
type DashboardStats struct {
	Period
	TotalInvoiced    decimal.Decimal `json:"totalInvoiced"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Profit           decimal.Decimal `json:"profit"`
	InvoiceCount     int             `json:"invoiceCount"`
	ExpenseCount     int             `json:"expenseCount"`
}
