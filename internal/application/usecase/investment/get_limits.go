// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
)

// GetLimitsInput represents the input for reading allocation limits.
// ExcludeCategoryID lets an edit flow ask how much more can go into that one
// category, by leaving its current amount out of the allocated total.
type GetLimitsInput struct {
	UserID            uuid.UUID
	ExcludeCategoryID *uuid.UUID
}

// GetLimitsOutput represents the allocation capacity figures for a user.
type GetLimitsOutput struct {
	TotalRealInvestments decimal.Decimal
	TotalAllocated       decimal.Decimal
	AvailableToAllocate  decimal.Decimal
	AllocationPercentage decimal.Decimal
}

// GetLimitsUseCase reports how much of the user's real investments is
// allocated and how much remains available.
type GetLimitsUseCase struct {
	allocationRepo  adapter.AllocationRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetLimitsUseCase creates a new GetLimitsUseCase instance.
func NewGetLimitsUseCase(
	allocationRepo adapter.AllocationRepository,
	transactionRepo adapter.TransactionRepository,
) *GetLimitsUseCase {
	return &GetLimitsUseCase{
		allocationRepo:  allocationRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute computes the capacity figures. A zero investment total yields a
// zero allocation percentage, never a division error.
func (uc *GetLimitsUseCase) Execute(ctx context.Context, input GetLimitsInput) (*GetLimitsOutput, error) {
	totalReal, err := totalRealInvestments(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum real investments: %w", err)
	}

	totalAllocated, err := uc.allocationRepo.SumByUser(ctx, input.UserID, input.ExcludeCategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocated amounts: %w", err)
	}

	allocationPercentage := decimal.Zero
	if !totalReal.IsZero() {
		allocationPercentage = totalAllocated.Mul(oneHundred).Div(totalReal)
	}

	return &GetLimitsOutput{
		TotalRealInvestments: totalReal,
		TotalAllocated:       totalAllocated,
		AvailableToAllocate:  totalReal.Sub(totalAllocated),
		AllocationPercentage: allocationPercentage,
	}, nil
}
