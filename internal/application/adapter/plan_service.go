// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/domain/entity"
)

// PlanService resolves the billing plan tier for a user. Implementations may
// cache the tier; Invalidate must be called when a plan changes.
type PlanService interface {
	// ResolveTier returns the user's current plan tier.
	ResolveTier(ctx context.Context, userID uuid.UUID) (entity.PlanTier, error)

	// Invalidate drops any cached tier for the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
