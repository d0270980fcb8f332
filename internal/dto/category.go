package dto

import (
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// CategoryRequest is the create/update body for categories.
type CategoryRequest struct {
	Name string              `json:"name" binding:"required"`
	Type domain.CategoryType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// ListCategoriesParams filters the category listing by type.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

type CategoryResponse struct {
	CategoryID    string              `json:"categoryID"`
	Name          string              `json:"name"`
	Type          domain.CategoryType `json:"type"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Type:          c.Type,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: res}
}
