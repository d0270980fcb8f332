package invoicing

import (
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals are the exact, unrounded sums of an invoice's lines.
type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// Summary adds payment progress to Totals.
type Summary struct {
	Totals
	Paid      decimal.Decimal
	Remaining decimal.Decimal
}

// LineTotal is quantity times unit price.
func LineTotal(line domain.InvoiceLine) decimal.Decimal {
	return line.Quantity.Mul(line.UnitPrice)
}

// LineVAT is the line total times the percentage rate. Shift keeps the division by 100 exact.
func LineVAT(line domain.InvoiceLine) decimal.Decimal {
	return LineTotal(line).Mul(line.VATRate).Shift(-2)
}

// CalculateTotals sums net and VAT over all lines. An empty slice yields zeros.
func CalculateTotals(lines []domain.InvoiceLine) Totals {
	subtotal := decimal.Zero
	vat := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line))
		vat = vat.Add(LineVAT(line))
	}
	return Totals{Subtotal: subtotal, VAT: vat, Total: subtotal.Add(vat)}
}

// TotalPaid sums all registered payment amounts.
func TotalPaid(payments []domain.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// Summarize computes totals and paid/remaining for an invoice.
// Remaining is negative when the invoice has been overpaid.
func Summarize(invoice domain.Invoice) Summary {
	totals := CalculateTotals(invoice.Lines)
	paid := TotalPaid(invoice.Payments)
	return Summary{
		Totals:    totals,
		Paid:      paid,
		Remaining: totals.Total.Sub(paid),
	}
}

// IsFullyPaid reports whether paid covers total. Overpayment counts as paid.
func IsFullyPaid(total, paid decimal.Decimal) bool {
	return paid.GreaterThanOrEqual(total)
}
