// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/domain/entity"
)

// SubscriptionRepository defines the interface for recurring subscription persistence.
type SubscriptionRepository interface {
	// Create creates a new subscription. Returns
	// domainerror.ErrSubscriptionNameTaken when the owner already has a
	// subscription with the same name.
	Create(ctx context.Context, subscription *entity.RecurringSubscription) error

	// Update persists changes to an existing subscription.
	Update(ctx context.Context, subscription *entity.RecurringSubscription) error

	// Delete removes a subscription by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a subscription by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSubscription, error)

	// FindByUser retrieves all of a user's subscriptions, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error)

	// FindActiveByUser retrieves the user's active subscriptions.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error)

	// CountByUser counts all of a user's subscriptions, active or not.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
