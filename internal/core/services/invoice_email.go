package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/SscSPs/easyledger/internal/utils"
)

var invoiceEmailTmpl = template.Must(template.New("invoice-email").Parse(`<h1>Faktura {{.Number}}</h1>
<p>Hei {{.CustomerName}},</p>
<p>Vedlagt finner du faktura {{.Number}} på {{.Amount}}.</p>
<p>Forfallsdato: {{.DueDate}}</p>
<p>Vennlig hilsen,<br>{{.CompanyName}}</p>
`))

// composeInvoiceEmail builds the customer-facing message with the PDF attached.
func composeInvoiceEmail(doc *gateways.InvoiceDocument, pdf []byte) (gateways.OutgoingEmail, error) {
	inv := doc.Invoice
	company := doc.Settings.CompanyName
	if company == "" {
		company = doc.Settings.EmailFrom
	}

	var body bytes.Buffer
	err := invoiceEmailTmpl.Execute(&body, map[string]string{
		"Number":       inv.InvoiceNumber,
		"CustomerName": inv.Customer.Name,
		"Amount":       utils.FormatNOK(doc.Summary.Total),
		"DueDate":      utils.FormatDateLongNO(inv.DueDate),
		"CompanyName":  company,
	})
	if err != nil {
		return gateways.OutgoingEmail{}, fmt.Errorf("failed to render invoice email: %w", err)
	}

	return gateways.OutgoingEmail{
		From:    fmt.Sprintf("%s <%s>", company, doc.Settings.EmailFrom),
		To:      inv.Customer.Email,
		Subject: fmt.Sprintf("Faktura %s fra %s", inv.InvoiceNumber, company),
		HTML:    body.String(),
		Attachments: []gateways.EmailAttachment{
			{FileName: InvoicePDFFileName(inv.InvoiceNumber), Content: pdf},
		},
	}, nil
}

// InvoicePDFFileName is the attachment and download name of an invoice PDF.
func InvoicePDFFileName(invoiceNumber string) string {
	return fmt.Sprintf("faktura-%s.pdf", invoiceNumber)
}
