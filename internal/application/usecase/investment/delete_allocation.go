// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
)

// DeleteAllocationUseCase removes one allocation and recomputes the remaining
// percentages for the owner.
type DeleteAllocationUseCase struct {
	allocationRepo adapter.AllocationRepository
}

// NewDeleteAllocationUseCase creates a new DeleteAllocationUseCase instance.
func NewDeleteAllocationUseCase(allocationRepo adapter.AllocationRepository) *DeleteAllocationUseCase {
	return &DeleteAllocationUseCase{
		allocationRepo: allocationRepo,
	}
}

// Execute deletes the allocation keyed by (user, category) and runs the full
// percentage recompute pass over the owner's remaining allocations.
func (uc *DeleteAllocationUseCase) Execute(ctx context.Context, userID, categoryID uuid.UUID) error {
	return uc.allocationRepo.InTransaction(ctx, func(repo adapter.AllocationRepository, ledger adapter.TransactionRepository) error {
		if err := repo.Delete(ctx, userID, categoryID); err != nil {
			return err
		}

		totalReal, err := totalRealInvestments(ctx, ledger, userID)
		if err != nil {
			return fmt.Errorf("failed to sum real investments: %w", err)
		}

		return recalculatePercentages(ctx, repo, userID, totalReal)
	})
}
