package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Customer    CustomerSvcFacade
	Supplier    SupplierSvcFacade
	Category    CategorySvcFacade
	Settings    SettingsSvcFacade
	Invoice     InvoiceSvcFacade
	Expense     ExpenseSvcFacade
	Receipt     ReceiptSvcFacade
	Reporting   ReportingSvcFacade
}
