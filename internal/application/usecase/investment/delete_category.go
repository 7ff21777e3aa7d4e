// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// DeleteCategoryUseCase removes a category together with its allocation and
// recomputes the remaining allocation percentages.
type DeleteCategoryUseCase struct {
	categoryRepo   adapter.InvestmentCategoryRepository
	allocationRepo adapter.AllocationRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.InvestmentCategoryRepository,
	allocationRepo adapter.AllocationRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:   categoryRepo,
		allocationRepo: allocationRepo,
	}
}

// Execute deletes the category after checking ownership. The category's
// allocation goes with it, so the owner's remaining percentages are
// recomputed in the same pass as an explicit allocation delete.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil || category == nil || category.UserID != userID {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvestmentCategoryNotFound,
			"investment category not found",
			domainerror.ErrInvestmentCategoryNotFound,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete investment category: %w", err)
	}

	return uc.allocationRepo.InTransaction(ctx, func(repo adapter.AllocationRepository, ledger adapter.TransactionRepository) error {
		totalReal, err := totalRealInvestments(ctx, ledger, userID)
		if err != nil {
			return fmt.Errorf("failed to sum real investments: %w", err)
		}
		return recalculatePercentages(ctx, repo, userID, totalReal)
	})
}
