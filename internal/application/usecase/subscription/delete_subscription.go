package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
)

// DeleteSubscriptionUseCase removes a subscription permanently.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDeleteSubscriptionUseCase creates a new DeleteSubscriptionUseCase instance.
func NewDeleteSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute deletes the subscription after checking ownership.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	if _, err := findOwnedSubscription(ctx, uc.subscriptionRepo, userID, subscriptionID); err != nil {
		return err
	}

	if err := uc.subscriptionRepo.Delete(ctx, subscriptionID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}
