package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// UpdateSubscriptionInput represents the input for updating a subscription.
// Nil fields are left unchanged.
type UpdateSubscriptionInput struct {
	UserID         uuid.UUID
	SubscriptionID uuid.UUID
	Name           *string
	Amount         *decimal.Decimal
	PaymentMethod  *entity.TransactionPaymentMethod
}

// UpdateSubscriptionUseCase patches an existing subscription.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewUpdateSubscriptionUseCase creates a new UpdateSubscriptionUseCase instance.
func NewUpdateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute applies the non-nil fields after checking ownership.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, input UpdateSubscriptionInput) (*entity.RecurringSubscription, error) {
	subscription, err := findOwnedSubscription(ctx, uc.subscriptionRepo, input.UserID, input.SubscriptionID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidSubscriptionAmount,
				"subscription name must not be empty",
				domainerror.ErrInvalidSubscriptionAmount,
			)
		}
		subscription.Name = *input.Name
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidSubscriptionAmount,
				"subscription amount must be positive",
				domainerror.ErrInvalidSubscriptionAmount,
			)
		}
		subscription.Amount = *input.Amount
	}
	if input.PaymentMethod != nil && entity.IsValidPaymentMethod(*input.PaymentMethod) {
		subscription.PaymentMethod = *input.PaymentMethod
	}
	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNameTaken) {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionNameTaken,
				fmt.Sprintf("a subscription named %q already exists", subscription.Name),
				domainerror.ErrSubscriptionNameTaken,
			)
		}
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	return subscription, nil
}

func findOwnedSubscription(
	ctx context.Context,
	repo adapter.SubscriptionRepository,
	userID, subscriptionID uuid.UUID,
) (*entity.RecurringSubscription, error) {
	subscription, err := repo.FindByID(ctx, subscriptionID)
	if err != nil || subscription == nil || subscription.UserID != userID {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNotFound,
			"subscription not found",
			domainerror.ErrSubscriptionNotFound,
		)
	}
	return subscription, nil
}
