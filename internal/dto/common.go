package dto

import "github.com/shopspring/decimal"

// ListParams defines limit/offset query parameters shared by list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// money rounds an exact amount for presentation.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
