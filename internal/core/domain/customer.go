package domain

// Customer is a party that receives invoices.
type Customer struct {
	CustomerID string `json:"customerID"`
	UserID     string `json:"userID"`
	Contact
	AuditFields
}

// Supplier is a party that issues expenses.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	UserID     string `json:"userID"`
	Contact
	AuditFields
}
