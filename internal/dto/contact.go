package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// ContactRequest is the create/update body for customers and suppliers.
type ContactRequest struct {
	Name       string `json:"name" binding:"required"`
	OrgNumber  string `json:"orgNumber"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// ToContact trims the request into a domain contact card.
func (r ContactRequest) ToContact() domain.Contact {
	return domain.Contact{
		Name:       strings.TrimSpace(r.Name),
		OrgNumber:  strings.TrimSpace(r.OrgNumber),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
		Address:    strings.TrimSpace(r.Address),
		PostalCode: strings.TrimSpace(r.PostalCode),
		City:       strings.TrimSpace(r.City),
	}
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	domain.Contact
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Contact:       c.Contact,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: res}
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID string `json:"supplierID"`
	domain.Contact
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:    s.SupplierID,
		Contact:       s.Contact,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// ListSuppliersResponse wraps the list of suppliers.
type ListSuppliersResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}

func ToListSuppliersResponse(suppliers []domain.Supplier) ListSuppliersResponse {
	res := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		res[i] = ToSupplierResponse(&suppliers[i])
	}
	return ListSuppliersResponse{Suppliers: res}
}
