package services

import (
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/platform/config"
)

// Gateways bundles the outbound adapters services depend on. Nil members disable the matching feature.
type Gateways struct {
	Extractor gateways.DocumentExtractor
	PDFText   gateways.PDFTextExtractor
	Renderer  gateways.InvoiceRenderer
	Mailer    gateways.Mailer
	Exporter  gateways.LedgerExporter
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)

	// Settings first: invoices and reporting read company defaults through it
	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, container.Settings, gw.Renderer, gw.Mailer)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.SupplierRepo, repos.CategoryRepo, cfg.MaxUploadBytes)
	container.Receipt = NewReceiptService(gw.Extractor, gw.PDFText, container.Supplier, container.Expense, cfg.MaxUploadBytes)
	container.Reporting = NewReportingService(repos.InvoiceRepo, repos.ExpenseRepo, container.Settings, gw.Exporter)

	return container
}
