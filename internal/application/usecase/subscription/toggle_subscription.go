package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// ToggleSubscriptionUseCase flips a subscription between active and paused.
// Paused subscriptions keep their history but stop contributing to the
// monthly expense totals.
type ToggleSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewToggleSubscriptionUseCase creates a new ToggleSubscriptionUseCase instance.
func NewToggleSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *ToggleSubscriptionUseCase {
	return &ToggleSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute inverts the IsActive flag after checking ownership.
func (uc *ToggleSubscriptionUseCase) Execute(ctx context.Context, userID, subscriptionID uuid.UUID) (*entity.RecurringSubscription, error) {
	subscription, err := findOwnedSubscription(ctx, uc.subscriptionRepo, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	subscription.IsActive = !subscription.IsActive
	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	return subscription, nil
}
