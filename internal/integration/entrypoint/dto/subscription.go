// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finwise/backend/internal/domain/entity"
)

// CreateSubscriptionRequest represents the create subscription request body.
// StartDate is a "2006-01-02" string and defaults to today when empty.
type CreateSubscriptionRequest struct {
	Name          string  `json:"name" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method"`
	StartDate     string  `json:"start_date"`
}

// UpdateSubscriptionRequest represents the patch subscription request body.
// Absent fields are left unchanged.
type UpdateSubscriptionRequest struct {
	Name          *string  `json:"name"`
	Amount        *float64 `json:"amount"`
	PaymentMethod *string  `json:"payment_method"`
}

// SubscriptionResponse represents a recurring subscription in API responses.
type SubscriptionResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	IsActive      bool    `json:"is_active"`
	StartDate     string  `json:"start_date"`
}

// SubscriptionListResponse represents the user's subscriptions and the
// monthly total of the active ones.
type SubscriptionListResponse struct {
	Subscriptions      []SubscriptionResponse `json:"subscriptions"`
	ActiveMonthlyTotal float64                `json:"active_monthly_total"`
}

// ToSubscriptionResponse converts a subscription entity to its response DTO.
func ToSubscriptionResponse(subscription *entity.RecurringSubscription) SubscriptionResponse {
	amount, _ := subscription.Amount.Float64()
	return SubscriptionResponse{
		ID:            subscription.ID.String(),
		Name:          subscription.Name,
		Amount:        amount,
		PaymentMethod: string(subscription.PaymentMethod),
		IsActive:      subscription.IsActive,
		StartDate:     subscription.StartDate.Format("2006-01-02"),
	}
}
