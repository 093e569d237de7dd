package dto

import "github.com/splitsum/splitsum_app/internal/core/domain"

// --- Payer / category DTOs ---

// CreatePayerRequest defines data for saving a payer name.
type CreatePayerRequest struct {
	Name string `json:"name" binding:"required"`
}

// PayerResponse defines data returned for a payer.
type PayerResponse struct {
	PayerID string `json:"payerID"`
	Name    string `json:"name"`
}

// ToPayerResponse converts domain.Payer to DTO.
func ToPayerResponse(p *domain.Payer) PayerResponse {
	return PayerResponse{PayerID: p.PayerID, Name: p.Name}
}

// ListPayersResponse wraps a user's saved payers.
type ListPayersResponse struct {
	Payers []PayerResponse `json:"payers"`
}

// ToListPayersResponse converts a slice of domain.Payer to DTO.
func ToListPayersResponse(payers []domain.Payer) ListPayersResponse {
	out := make([]PayerResponse, len(payers))
	for i := range payers {
		out[i] = ToPayerResponse(&payers[i])
	}
	return ListPayersResponse{Payers: out}
}

// CreateCategoryRequest defines data for saving a category label.
type CreateCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	ListID *string `json:"listID"`
}

// CategoryResponse defines data returned for a category.
type CategoryResponse struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	ListID     *string `json:"listID,omitempty"`
}

// ToCategoryResponse converts domain.Category to DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, ListID: c.ListID}
}

// ListCategoriesResponse wraps a user's categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.Category to DTO.
func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: out}
}
