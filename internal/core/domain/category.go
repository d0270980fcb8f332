package domain

// CategoryType separates income classification from expense classification.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

func (t CategoryType) IsValid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category labels expenses (and, reserved for later, income).
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	AuditFields
}
