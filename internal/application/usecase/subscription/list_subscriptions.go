package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// ListSubscriptionsOutput represents the user's subscriptions and the monthly
// total of the active ones.
type ListSubscriptionsOutput struct {
	Subscriptions      []*entity.RecurringSubscription
	ActiveMonthlyTotal decimal.Decimal
}

// ListSubscriptionsUseCase lists all of a user's subscriptions, newest first.
type ListSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewListSubscriptionsUseCase creates a new ListSubscriptionsUseCase instance.
func NewListSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute returns every subscription the user has, plus the sum of active
// monthly amounts.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListSubscriptionsOutput, error) {
	subscriptions, err := uc.subscriptionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	activeTotal := decimal.Zero
	for _, subscription := range subscriptions {
		if subscription.IsActive {
			activeTotal = activeTotal.Add(subscription.Amount)
		}
	}

	return &ListSubscriptionsOutput{
		Subscriptions:      subscriptions,
		ActiveMonthlyTotal: activeTotal,
	}, nil
}
