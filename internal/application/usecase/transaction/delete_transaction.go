package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// DeleteTransactionUseCase soft-deletes a ledger entry.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute deletes the transaction after checking ownership.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, userID, transactionID uuid.UUID) error {
	existing, err := uc.transactionRepo.FindByID(ctx, transactionID)
	if err != nil || existing == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if existing.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if err := uc.transactionRepo.Delete(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
