// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
)

// SubscriptionModel represents the recurring_subscriptions table. The
// (user_id, name) pair is unique so one owner cannot hold two subscriptions
// with the same name.
type SubscriptionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_name"`
	Name          string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_subscriptions_user_name"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Category      string          `gorm:"type:varchar(20);not null"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	StartDate     time.Time       `gorm:"type:timestamp;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "recurring_subscriptions"
}

// ToEntity converts a SubscriptionModel to a domain RecurringSubscription entity.
func (m *SubscriptionModel) ToEntity() *entity.RecurringSubscription {
	return &entity.RecurringSubscription{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Amount:        m.Amount,
		PaymentMethod: entity.TransactionPaymentMethod(m.PaymentMethod),
		Category:      entity.TransactionCategory(m.Category),
		IsActive:      m.IsActive,
		StartDate:     m.StartDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SubscriptionFromEntity creates a SubscriptionModel from a domain entity.
func SubscriptionFromEntity(subscription *entity.RecurringSubscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:            subscription.ID,
		UserID:        subscription.UserID,
		Name:          subscription.Name,
		Amount:        subscription.Amount,
		PaymentMethod: string(subscription.PaymentMethod),
		Category:      string(subscription.Category),
		IsActive:      subscription.IsActive,
		StartDate:     subscription.StartDate,
		CreatedAt:     subscription.CreatedAt,
		UpdatedAt:     subscription.UpdatedAt,
	}
}
