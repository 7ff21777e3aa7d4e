// Package dashboard contains the monthly aggregation use case.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
)

// Window bounds a ledger query. Start is inclusive and may be zero for an
// unbounded lower end; End is exclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Repository defines the read operations the aggregator issues against the
// ledger and subscription stores. All methods are pure reads.
type Repository interface {
	// SumAmount returns the sum of amounts for one transaction type within
	// the window. Returns zero when no rows match.
	SumAmount(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, window Window) (decimal.Decimal, error)

	// GroupExpensesByCategory returns per-category EXPENSE sums within the
	// window, largest first.
	GroupExpensesByCategory(ctx context.Context, userID uuid.UUID, window Window) ([]CategorySum, error)

	// FindRecentTransactions returns up to limit transactions within the
	// window, ordered by date descending.
	FindRecentTransactions(ctx context.Context, userID uuid.UUID, window Window, limit int) ([]*entity.Transaction, error)

	// FindActiveSubscriptions returns the user's active subscriptions.
	FindActiveSubscriptions(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error)
}

// CategorySum is a raw per-category aggregate from the ledger store.
type CategorySum struct {
	Category entity.TransactionCategory
	Total    decimal.Decimal
}
