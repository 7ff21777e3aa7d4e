package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing a month's ledger.
// Month and Year select one calendar month; Month is 1 to 12.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Month  time.Month
	Year   int
}

// ListTransactionsUseCase lists a user's transactions for one month, newest
// first.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the month's transactions ordered by date descending.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) ([]*entity.Transaction, error) {
	monthStart := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	transactions, err := uc.transactionRepo.FindByUserAndRange(ctx, input.UserID, adapter.DateRange{
		Start: &monthStart,
		End:   &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
