// Package export writes ledger workbooks with excelize.
package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/SscSPs/easyledger/internal/utils/invoicing"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	InvoiceSheet = "Fakturaer"
	ExpenseSheet = "Utgifter"
	dateLayout   = "02.01.2006"
)

var (
	invoiceHeaders = []string{"Fakturanr", "Kunde", "Fakturadato", "Forfall", "Status", "Sum ekskl. MVA", "MVA", "Totalt", "Betalt"}
	expenseHeaders = []string{"Dato", "Beskrivelse", "Leverandør", "Kategori", "Beløp", "MVA", "Status"}
)

// XLSXExporter implements gateways.LedgerExporter.
type XLSXExporter struct{}

var _ gateways.LedgerExporter = (*XLSXExporter)(nil)

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) WriteLedger(w io.Writer, export gateways.LedgerExport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if _, err := f.NewSheet(ExpenseSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := writeHeader(f, InvoiceSheet, invoiceHeaders, bold); err != nil {
		return err
	}
	if err := writeHeader(f, ExpenseSheet, expenseHeaders, bold); err != nil {
		return err
	}

	for i, inv := range export.Invoices {
		sum := invoicing.Summarize(inv)
		customer := ""
		if inv.Customer != nil {
			customer = inv.Customer.Name
		}
		if err := writeRow(f, InvoiceSheet, i+2, []any{
			inv.InvoiceNumber,
			customer,
			inv.IssueDate.Format(dateLayout),
			inv.DueDate.Format(dateLayout),
			string(inv.EffectiveStatus(export.Now)),
			money(sum.Subtotal),
			money(sum.VAT),
			money(sum.Total),
			money(sum.Paid),
		}); err != nil {
			return err
		}
	}

	for i, exp := range export.Expenses {
		supplier, category := "", ""
		if exp.Supplier != nil {
			supplier = exp.Supplier.Name
		}
		if exp.Category != nil {
			category = exp.Category.Name
		}
		if err := writeRow(f, ExpenseSheet, i+2, []any{
			exp.Date.Format(dateLayout),
			exp.Description,
			supplier,
			category,
			money(exp.Amount),
			money(exp.VATAmount),
			string(exp.Status),
		}); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(InvoiceSheet, "A", "B", 24)
	_ = f.SetColWidth(ExpenseSheet, "B", "D", 28)
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(utils.MoneyPrecision).InexactFloat64()
}
