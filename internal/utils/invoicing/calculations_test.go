package invoicing_test

import (
	"testing"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(qty, price, rate string) domain.InvoiceLine {
	return domain.InvoiceLine{
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
		VATRate:   decimal.RequireFromString(rate),
	}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []domain.InvoiceLine
		wantSubtotal string
		wantVAT      string
		wantTotal    string
	}{
		{
			name:         "no lines",
			lines:        nil,
			wantSubtotal: "0",
			wantVAT:      "0",
			wantTotal:    "0",
		},
		{
			name:         "single line at 25 percent",
			lines:        []domain.InvoiceLine{line("2", "100", "25")},
			wantSubtotal: "200",
			wantVAT:      "50",
			wantTotal:    "250",
		},
		{
			name:         "mixed rates",
			lines:        []domain.InvoiceLine{line("1", "1000", "25"), line("3", "50", "15"), line("1", "200", "0")},
			wantSubtotal: "1350",
			wantVAT:      "272.5",
			wantTotal:    "1622.5",
		},
		{
			name:         "fractional quantities stay exact",
			lines:        []domain.InvoiceLine{line("0.333", "0.1", "12")},
			wantSubtotal: "0.0333",
			wantVAT:      "0.003996",
			wantTotal:    "0.037296",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoicing.CalculateTotals(tt.lines)
			assert.True(t, decimal.RequireFromString(tt.wantSubtotal).Equal(got.Subtotal), "subtotal: got %s", got.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.wantVAT).Equal(got.VAT), "vat: got %s", got.VAT)
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(got.Total), "total: got %s", got.Total)
		})
	}
}

func TestSummarize(t *testing.T) {
	inv := domain.Invoice{
		Lines: []domain.InvoiceLine{line("2", "100", "25")},
		Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(100)},
			{Amount: decimal.NewFromInt(50)},
		},
	}

	got := invoicing.Summarize(inv)

	assert.True(t, decimal.NewFromInt(250).Equal(got.Total))
	assert.True(t, decimal.NewFromInt(150).Equal(got.Paid))
	assert.True(t, decimal.NewFromInt(100).Equal(got.Remaining))
	assert.False(t, invoicing.IsFullyPaid(got.Total, got.Paid))
}

func TestIsFullyPaid(t *testing.T) {
	total := decimal.NewFromInt(250)
	assert.True(t, invoicing.IsFullyPaid(total, decimal.NewFromInt(250)))
	assert.True(t, invoicing.IsFullyPaid(total, decimal.NewFromInt(300)))
	assert.False(t, invoicing.IsFullyPaid(total, decimal.RequireFromString("249.99")))
}
