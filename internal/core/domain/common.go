package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Touch sets both timestamps for a freshly created entity.
func (a *AuditFields) Touch(now time.Time) {
	a.CreatedAt = now
	a.LastUpdatedAt = now
}

// Contact is the shared address card of customers and suppliers.
type Contact struct {
	Name       string `json:"name"`
	OrgNumber  string `json:"orgNumber"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// Period is an inclusive date range used for reporting filters.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
