// Package subscription contains recurring subscription use cases.
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

// basicPlanSubscriptionLimit caps how many subscriptions a basic-plan user can
// hold, active or paused.
const basicPlanSubscriptionLimit = 3

// CreateSubscriptionInput represents the input for creating a subscription.
type CreateSubscriptionInput struct {
	UserID        uuid.UUID
	Name          string
	Amount        decimal.Decimal
	PaymentMethod entity.TransactionPaymentMethod
	StartDate     time.Time
}

// CreateSubscriptionUseCase creates a recurring subscription, enforcing the
// basic-plan count limit and name uniqueness per owner.
type CreateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	planService      adapter.PlanService
}

// NewCreateSubscriptionUseCase creates a new CreateSubscriptionUseCase instance.
func NewCreateSubscriptionUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	planService adapter.PlanService,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planService:      planService,
	}
}

// Execute validates the input, checks the plan limit and persists the
// subscription. New subscriptions start active.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*entity.RecurringSubscription, error) {
	if input.Name == "" || !input.Amount.IsPositive() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionAmount,
			"subscription requires a name and a positive amount",
			domainerror.ErrInvalidSubscriptionAmount,
		)
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		input.PaymentMethod = entity.PaymentMethodOther
	}

	tier, err := uc.planService.ResolveTier(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan tier: %w", err)
	}
	if tier != entity.PlanTierPremium {
		count, err := uc.subscriptionRepo.CountByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to count subscriptions: %w", err)
		}
		if count >= basicPlanSubscriptionLimit {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionLimitReached,
				fmt.Sprintf("the basic plan allows up to %d subscriptions", basicPlanSubscriptionLimit),
				domainerror.ErrSubscriptionLimitReached,
			)
		}
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	subscription := entity.NewRecurringSubscription(
		input.UserID,
		input.Name,
		input.Amount,
		input.PaymentMethod,
		startDate,
	)
	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNameTaken) {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionNameTaken,
				fmt.Sprintf("a subscription named %q already exists", input.Name),
				domainerror.ErrSubscriptionNameTaken,
			)
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return subscription, nil
}
