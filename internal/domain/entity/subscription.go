// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringSubscription represents a recurring monthly obligation, such as a
// streaming service. It is independent of the transaction ledger: a
// subscription is never materialized as a Transaction row, only folded into
// expense totals while active.
type RecurringSubscription struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Amount        decimal.Decimal // Fixed monthly expense, positive magnitude
	PaymentMethod TransactionPaymentMethod
	Category      TransactionCategory
	IsActive      bool
	StartDate     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRecurringSubscription creates a new RecurringSubscription entity.
// Subscriptions default to the OTHER category and start active.
func NewRecurringSubscription(
	userID uuid.UUID,
	name string,
	amount decimal.Decimal,
	paymentMethod TransactionPaymentMethod,
	startDate time.Time,
) *RecurringSubscription {
	now := time.Now().UTC()

	return &RecurringSubscription{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Category:      TransactionCategoryOther,
		IsActive:      true,
		StartDate:     startDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
