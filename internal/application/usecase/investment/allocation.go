// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// totalRealInvestments sums every INVESTMENT transaction the user ever made,
// unbounded by month. Allocations are always measured against this total.
func totalRealInvestments(ctx context.Context, transactionRepo adapter.TransactionRepository, userID uuid.UUID) (decimal.Decimal, error) {
	return transactionRepo.SumAmount(ctx, userID, entity.TransactionTypeInvestment, adapter.DateRange{})
}

// recalculatePercentages rewrites the stored percentage of every allocation
// the user owns against the given total. The pass is full, not incremental,
// so percentages stay mutually consistent after the total shifts. A zero
// total leaves the stored percentages untouched.
func recalculatePercentages(ctx context.Context, allocationRepo adapter.AllocationRepository, userID uuid.UUID, totalReal decimal.Decimal) error {
	if totalReal.IsZero() {
		return nil
	}

	allocations, err := allocationRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, allocation := range allocations {
		percentage := allocation.Amount.Mul(oneHundred).Div(totalReal)
		if err := allocationRepo.UpdatePercentage(ctx, allocation.ID, percentage); err != nil {
			return err
		}
	}
	return nil
}
