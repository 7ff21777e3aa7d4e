// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// CategoryWithAllocation pairs a category with its allocation, if any.
type CategoryWithAllocation struct {
	Category   *entity.InvestmentCategory
	Allocation *entity.InvestmentAllocation
}

// ListCategoriesOutput represents the user's categories, their allocations
// and the allocated total.
type ListCategoriesOutput struct {
	Categories     []CategoryWithAllocation
	TotalAllocated decimal.Decimal
}

// ListCategoriesUseCase lists the user's active categories with allocations.
type ListCategoriesUseCase struct {
	categoryRepo   adapter.InvestmentCategoryRepository
	allocationRepo adapter.AllocationRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.InvestmentCategoryRepository,
	allocationRepo adapter.AllocationRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo:   categoryRepo,
		allocationRepo: allocationRepo,
	}
}

// Execute returns the active categories joined with their allocations.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investment categories: %w", err)
	}

	allocations, err := uc.allocationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	byCategory := make(map[uuid.UUID]*entity.InvestmentAllocation, len(allocations))
	totalAllocated := decimal.Zero
	for _, allocation := range allocations {
		byCategory[allocation.CategoryID] = allocation
		totalAllocated = totalAllocated.Add(allocation.Amount)
	}

	result := make([]CategoryWithAllocation, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryWithAllocation{
			Category:   category,
			Allocation: byCategory[category.ID],
		})
	}

	return &ListCategoriesOutput{
		Categories:     result,
		TotalAllocated: totalAllocated,
	}, nil
}
