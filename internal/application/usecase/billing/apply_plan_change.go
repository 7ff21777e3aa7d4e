// Package billing contains the plan change use case driven by the payment
// provider's webhook.
package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// ApplyPlanChangeInput represents a verified plan change event.
type ApplyPlanChangeInput struct {
	Email string
	Plan  entity.PlanTier
}

// ApplyPlanChangeUseCase moves a user between plan tiers. Webhook events are
// keyed by the billing email, not by user ID.
type ApplyPlanChangeUseCase struct {
	userRepo    adapter.UserRepository
	planService adapter.PlanService
}

// NewApplyPlanChangeUseCase creates a new ApplyPlanChangeUseCase instance.
func NewApplyPlanChangeUseCase(
	userRepo adapter.UserRepository,
	planService adapter.PlanService,
) *ApplyPlanChangeUseCase {
	return &ApplyPlanChangeUseCase{
		userRepo:    userRepo,
		planService: planService,
	}
}

// Execute updates the user's plan and drops the cached tier so the change
// takes effect on the next request. Applying the tier the user already has is
// a no-op, which makes webhook redeliveries harmless.
func (uc *ApplyPlanChangeUseCase) Execute(ctx context.Context, input ApplyPlanChangeInput) error {
	if input.Plan != entity.PlanTierBasic && input.Plan != entity.PlanTierPremium {
		return fmt.Errorf("unknown plan tier %q", input.Plan)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			fmt.Sprintf("no account for billing email %s", email),
			domainerror.ErrUserNotFound,
		)
	}
	if user.Plan == input.Plan {
		return nil
	}

	if err := uc.userRepo.UpdatePlan(ctx, user.ID, input.Plan); err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if err := uc.planService.Invalidate(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to invalidate cached plan tier: %w", err)
	}

	return nil
}
