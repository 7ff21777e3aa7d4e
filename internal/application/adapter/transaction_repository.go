// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
)

// DateRange bounds a ledger query. A nil Start means "everything up to End";
// a nil End means "everything from Start".
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// TransactionRepository defines the interface for ledger persistence operations.
type TransactionRepository interface {
	// Upsert creates the transaction or updates it if it already exists.
	Upsert(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// Delete soft-deletes a transaction by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByUserAndRange retrieves a user's transactions within a date range,
	// ordered by date descending.
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, dateRange DateRange) ([]*entity.Transaction, error)

	// SumAmount returns the sum of amounts for one transaction type within a
	// date range. Returns zero when no rows match.
	SumAmount(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, dateRange DateRange) (decimal.Decimal, error)

	// CountByUserAndRange counts a user's transactions within a date range.
	CountByUserAndRange(ctx context.Context, userID uuid.UUID, dateRange DateRange) (int64, error)
}
