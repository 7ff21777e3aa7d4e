// Package transaction contains ledger write and query use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// basicPlanMonthlyTransactionLimit caps how many transactions a basic-plan
// user can create per calendar month. Updates to existing rows do not count.
const basicPlanMonthlyTransactionLimit = 10

// UpsertTransactionInput represents the input for creating or updating a
// transaction. A nil TransactionID means create.
type UpsertTransactionInput struct {
	UserID        uuid.UUID
	TransactionID *uuid.UUID
	Name          string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Category      entity.TransactionCategory
	PaymentMethod entity.TransactionPaymentMethod
	Date          time.Time
}

// UpsertTransactionUseCase writes a ledger entry, enforcing field validation
// and the basic-plan monthly creation limit.
type UpsertTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	planService     adapter.PlanService
}

// NewUpsertTransactionUseCase creates a new UpsertTransactionUseCase instance.
func NewUpsertTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	planService adapter.PlanService,
) *UpsertTransactionUseCase {
	return &UpsertTransactionUseCase{
		transactionRepo: transactionRepo,
		planService:     planService,
	}
}

// Execute validates and persists the transaction. Existing rows must belong
// to the caller; new rows are counted against the caller's monthly quota.
func (uc *UpsertTransactionUseCase) Execute(ctx context.Context, input UpsertTransactionInput) (*entity.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.TransactionID != nil {
		return uc.update(ctx, input)
	}
	return uc.create(ctx, input)
}

func (uc *UpsertTransactionUseCase) create(ctx context.Context, input UpsertTransactionInput) (*entity.Transaction, error) {
	allowed, err := uc.canAdd(ctx, input.UserID, input.Date)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionLimitReached,
			fmt.Sprintf("the basic plan allows up to %d transactions per month", basicPlanMonthlyTransactionLimit),
			domainerror.ErrTransactionLimitReached,
		)
	}

	created := entity.NewTransaction(
		input.UserID,
		input.Name,
		input.Amount,
		input.Type,
		input.Category,
		input.PaymentMethod,
		input.Date,
	)
	if err := uc.transactionRepo.Upsert(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

func (uc *UpsertTransactionUseCase) update(ctx context.Context, input UpsertTransactionInput) (*entity.Transaction, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, *input.TransactionID)
	if err != nil || existing == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if existing.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	existing.Name = input.Name
	existing.Amount = input.Amount
	existing.Type = input.Type
	existing.Category = input.Category
	existing.PaymentMethod = input.PaymentMethod
	existing.Date = input.Date
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Upsert(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return existing, nil
}

func (uc *UpsertTransactionUseCase) canAdd(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	tier, err := uc.planService.ResolveTier(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve plan tier: %w", err)
	}
	if tier == entity.PlanTierPremium {
		return true, nil
	}

	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	count, err := uc.transactionRepo.CountByUserAndRange(ctx, userID, adapter.DateRange{
		Start: &monthStart,
		End:   &monthEnd,
	})
	if err != nil {
		return false, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count < basicPlanMonthlyTransactionLimit, nil
}

func validateInput(input UpsertTransactionInput) error {
	if input.Name == "" || !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction requires a name and a positive amount",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !entity.IsValidTransactionType(input.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			fmt.Sprintf("unknown transaction type %q", input.Type),
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !entity.IsValidTransactionCategory(input.Category) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionCategory,
			fmt.Sprintf("unknown transaction category %q", input.Category),
			domainerror.ErrInvalidTransactionCategory,
		)
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("unknown payment method %q", input.PaymentMethod),
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	if input.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction date is required",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}
