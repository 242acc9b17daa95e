package dto

import (
	"github.com/grana-app/grana-backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
// The same shape is accepted for updates, matching the CRUD surface.
type CreateCategoryRequest struct {
	Name    string              `json:"name" binding:"required"`
	Type    domain.CategoryType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	IsFixed bool                `json:"isFixed"`
	Color   string              `json:"color"`
	Icon    string              `json:"icon"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	IsFixed    bool                `json:"isFixed"`
	Color      string              `json:"color"`
	Icon       string              `json:"icon"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		Type:       cat.Type,
		IsFixed:    cat.IsFixed,
		Color:      cat.Color,
		Icon:       cat.Icon,
	}
}

// ToCategoryResponses converts a slice of categories.
func ToCategoryResponses(cats []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToCategoryResponse(&cats[i])
	}
	return res
}
