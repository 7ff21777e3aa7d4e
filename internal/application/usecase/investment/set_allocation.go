// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// SetAllocationInput represents the input for writing an allocation.
type SetAllocationInput struct {
	UserID           uuid.UUID
	CategoryID       uuid.UUID
	Amount           decimal.Decimal
	TargetPercentage *decimal.Decimal // Optional user goal
}

// SetAllocationUseCase upserts the allocation for one investment category,
// enforcing that the sum of all of the owner's allocation amounts never
// exceeds the total of their real INVESTMENT transactions.
type SetAllocationUseCase struct {
	categoryRepo   adapter.InvestmentCategoryRepository
	allocationRepo adapter.AllocationRepository
}

// NewSetAllocationUseCase creates a new SetAllocationUseCase instance.
func NewSetAllocationUseCase(
	categoryRepo adapter.InvestmentCategoryRepository,
	allocationRepo adapter.AllocationRepository,
) *SetAllocationUseCase {
	return &SetAllocationUseCase{
		categoryRepo:   categoryRepo,
		allocationRepo: allocationRepo,
	}
}

// Execute validates the capacity invariant and writes the allocation. The
// invested total, the limit check, the upsert and the percentage recompute
// all run inside one serialized store transaction, so concurrent writers for
// the same owner cannot slip past the invariant between the read and the
// write.
func (uc *SetAllocationUseCase) Execute(ctx context.Context, input SetAllocationInput) error {
	if input.Amount.IsNegative() {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidAllocationAmount,
			"allocation amount must not be negative",
			domainerror.ErrInvalidAllocationAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category == nil || category.UserID != input.UserID || !category.IsActive {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvestmentCategoryNotFound,
			"investment category not found",
			domainerror.ErrInvestmentCategoryNotFound,
		)
	}

	return uc.allocationRepo.InTransaction(ctx, func(repo adapter.AllocationRepository, ledger adapter.TransactionRepository) error {
		totalReal, err := totalRealInvestments(ctx, ledger, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to sum real investments: %w", err)
		}
		if totalReal.IsZero() {
			return domainerror.NewInvestmentError(
				domainerror.ErrCodeNoInvestmentsToAllocate,
				"no investments to allocate; add investment transactions first",
				domainerror.ErrNoInvestmentsToAllocate,
			)
		}

		currentAllocated, err := repo.SumByUser(ctx, input.UserID, &input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to sum allocated amounts: %w", err)
		}

		maxAllowed := totalReal.Sub(currentAllocated)
		if input.Amount.GreaterThan(maxAllowed) {
			return &domainerror.AllocationLimitError{
				MaxAllowed:    maxAllowed,
				TotalInvested: totalReal,
				Message: fmt.Sprintf(
					"amount exceeds the available total; maximum allowed: %s (total invested: %s)",
					FormatBRL(maxAllowed),
					FormatBRL(totalReal),
				),
			}
		}

		percentage := input.Amount.Mul(oneHundred).Div(totalReal)
		allocation := entity.NewInvestmentAllocation(
			input.UserID,
			input.CategoryID,
			input.Amount,
			percentage,
			input.TargetPercentage,
		)
		if err := repo.Upsert(ctx, allocation); err != nil {
			return fmt.Errorf("failed to upsert allocation: %w", err)
		}

		return recalculatePercentages(ctx, repo, input.UserID, totalReal)
	})
}
