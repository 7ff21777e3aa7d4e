// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/persistence/model"
)

// subscriptionRepository implements the adapter.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance.
func NewSubscriptionRepository(db *gorm.DB) adapter.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create creates a new subscription in the database.
func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.RecurringSubscription) error {
	subscriptionModel := model.SubscriptionFromEntity(subscription)
	result := r.db.WithContext(ctx).Create(subscriptionModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrSubscriptionNameTaken
		}
		return result.Error
	}
	return nil
}

// Update updates an existing subscription in the database.
func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.RecurringSubscription) error {
	subscriptionModel := model.SubscriptionFromEntity(subscription)
	result := r.db.WithContext(ctx).Save(subscriptionModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrSubscriptionNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete removes a subscription from the database.
func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SubscriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSubscriptionNotFound
	}
	return nil
}

// FindByID retrieves a subscription by its ID.
func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSubscription, error) {
	var subscriptionModel model.SubscriptionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&subscriptionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubscriptionNotFound
		}
		return nil, result.Error
	}
	return subscriptionModel.ToEntity(), nil
}

// FindByUser retrieves all of a user's subscriptions, newest first.
func (r *subscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error) {
	var subscriptionModels []model.SubscriptionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subscriptionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.RecurringSubscription, len(subscriptionModels))
	for i, sm := range subscriptionModels {
		subscriptions[i] = sm.ToEntity()
	}
	return subscriptions, nil
}

// FindActiveByUser retrieves the user's active subscriptions, newest first.
func (r *subscriptionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error) {
	var subscriptionModels []model.SubscriptionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&subscriptionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.RecurringSubscription, len(subscriptionModels))
	for i, sm := range subscriptionModels {
		subscriptions[i] = sm.ToEntity()
	}
	return subscriptions, nil
}

// CountByUser counts all of a user's subscriptions.
func (r *subscriptionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
