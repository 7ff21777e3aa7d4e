// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finwise/backend/internal/application/usecase/investment"
	"github.com/finwise/backend/internal/domain/entity"
)

// CreateInvestmentCategoryRequest represents the create category request body.
type CreateInvestmentCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateInvestmentCategoryRequest represents the patch category request body.
// Absent fields are left unchanged.
type UpdateInvestmentCategoryRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

// SetAllocationRequest represents the allocation write request body.
type SetAllocationRequest struct {
	Amount           float64  `json:"amount"`
	TargetPercentage *float64 `json:"target_percentage"`
}

// AllocationResponse represents an allocation in API responses.
type AllocationResponse struct {
	Amount           float64  `json:"amount"`
	Percentage       float64  `json:"percentage"`
	TargetPercentage *float64 `json:"target_percentage,omitempty"`
}

// InvestmentCategoryResponse represents a category and its allocation, if any.
type InvestmentCategoryResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Color       string              `json:"color"`
	IsActive    bool                `json:"is_active"`
	Allocation  *AllocationResponse `json:"allocation,omitempty"`
}

// InvestmentCategoryListResponse represents the user's categories and the
// allocated total.
type InvestmentCategoryListResponse struct {
	Categories     []InvestmentCategoryResponse `json:"categories"`
	TotalAllocated float64                      `json:"total_allocated"`
}

// AllocationLimitsResponse represents the allocation capacity figures.
type AllocationLimitsResponse struct {
	TotalRealInvestments float64 `json:"total_real_investments"`
	TotalAllocated       float64 `json:"total_allocated"`
	AvailableToAllocate  float64 `json:"available_to_allocate"`
	AllocationPercentage float64 `json:"allocation_percentage"`
}

// ToInvestmentCategoryResponse converts a category entity to its response DTO.
func ToInvestmentCategoryResponse(category *entity.InvestmentCategory, allocation *entity.InvestmentAllocation) InvestmentCategoryResponse {
	response := InvestmentCategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Type:        string(category.Type),
		Description: category.Description,
		Color:       category.Color,
		IsActive:    category.IsActive,
	}

	if allocation != nil {
		amount, _ := allocation.Amount.Float64()
		percentage, _ := allocation.Percentage.Float64()
		allocationResponse := &AllocationResponse{
			Amount:     amount,
			Percentage: percentage,
		}
		if allocation.TargetPercentage != nil {
			target, _ := allocation.TargetPercentage.Float64()
			allocationResponse.TargetPercentage = &target
		}
		response.Allocation = allocationResponse
	}

	return response
}

// ToInvestmentCategoryListResponse converts the list output to its response DTO.
func ToInvestmentCategoryListResponse(output *investment.ListCategoriesOutput) InvestmentCategoryListResponse {
	categories := make([]InvestmentCategoryResponse, len(output.Categories))
	for i, pair := range output.Categories {
		categories[i] = ToInvestmentCategoryResponse(pair.Category, pair.Allocation)
	}

	totalAllocated, _ := output.TotalAllocated.Float64()
	return InvestmentCategoryListResponse{
		Categories:     categories,
		TotalAllocated: totalAllocated,
	}
}

// ToAllocationLimitsResponse converts the limits output to its response DTO.
func ToAllocationLimitsResponse(output *investment.GetLimitsOutput) AllocationLimitsResponse {
	totalReal, _ := output.TotalRealInvestments.Float64()
	totalAllocated, _ := output.TotalAllocated.Float64()
	available, _ := output.AvailableToAllocate.Float64()
	percentage, _ := output.AllocationPercentage.Float64()

	return AllocationLimitsResponse{
		TotalRealInvestments: totalReal,
		TotalAllocated:       totalAllocated,
		AvailableToAllocate:  available,
		AllocationPercentage: percentage,
	}
}
