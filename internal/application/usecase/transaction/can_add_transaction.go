package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// CanAddTransactionOutput tells a client whether another transaction may be
// created this month and how much quota remains.
type CanAddTransactionOutput struct {
	Allowed   bool
	Remaining int64 // -1 means unlimited
}

// CanAddTransactionUseCase reports the caller's remaining monthly quota. The
// frontend uses it to disable the add button before the server would reject.
type CanAddTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	planService     adapter.PlanService
}

// NewCanAddTransactionUseCase creates a new CanAddTransactionUseCase instance.
func NewCanAddTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	planService adapter.PlanService,
) *CanAddTransactionUseCase {
	return &CanAddTransactionUseCase{
		transactionRepo: transactionRepo,
		planService:     planService,
	}
}

// Execute checks the quota for the month containing now.
func (uc *CanAddTransactionUseCase) Execute(ctx context.Context, userID uuid.UUID, now time.Time) (*CanAddTransactionOutput, error) {
	tier, err := uc.planService.ResolveTier(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan tier: %w", err)
	}
	if tier == entity.PlanTierPremium {
		return &CanAddTransactionOutput{Allowed: true, Remaining: -1}, nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	count, err := uc.transactionRepo.CountByUserAndRange(ctx, userID, adapter.DateRange{
		Start: &monthStart,
		End:   &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	remaining := basicPlanMonthlyTransactionLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return &CanAddTransactionOutput{
		Allowed:   remaining > 0,
		Remaining: remaining,
	}, nil
}
