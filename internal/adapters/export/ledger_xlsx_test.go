package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLedger(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	issue := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	export := gateways.LedgerExport{
		Now: now,
		Invoices: []domain.Invoice{{
			InvoiceNumber: "FAK-1000",
			IssueDate:     issue,
			DueDate:       issue.AddDate(0, 0, 14),
			Status:        domain.InvoiceSent,
			Customer:      &domain.Customer{Contact: domain.Contact{Name: "Kunde AS"}},
			Lines: []domain.InvoiceLine{
				{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500), VATRate: decimal.NewFromInt(25)},
			},
			Payments: []domain.Payment{{Amount: decimal.NewFromInt(250)}},
		}},
		Expenses: []domain.Expense{{
			Date:        issue,
			Description: "Kontorrekvisita",
			Amount:      decimal.RequireFromString("199.5"),
			VATAmount:   decimal.RequireFromString("49.875"),
			Status:      domain.ExpensePaid,
			Supplier:    &domain.Supplier{Contact: domain.Contact{Name: "Clas Ohlson"}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().WriteLedger(&buf, export))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{InvoiceSheet, ExpenseSheet}, f.GetSheetList())

	invRows, err := f.GetRows(InvoiceSheet)
	require.NoError(t, err)
	require.Len(t, invRows, 2)
	assert.Equal(t, invoiceHeaders, invRows[0])
	assert.Equal(t, []string{"FAK-1000", "Kunde AS", "01.02.2024", "15.02.2024", "OVERDUE", "1000", "250", "1250", "250"}, invRows[1])

	expRows, err := f.GetRows(ExpenseSheet)
	require.NoError(t, err)
	require.Len(t, expRows, 2)
	assert.Equal(t, []string{"01.02.2024", "Kontorrekvisita", "Clas Ohlson", "", "199.5", "49.88", "PAID"}, expRows[1])
}

func TestWriteLedger_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().WriteLedger(&buf, gateways.LedgerExport{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExpenseSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
