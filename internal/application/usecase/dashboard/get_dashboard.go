// Package dashboard contains the monthly aggregation use case.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// GetDashboardInput represents the input for computing a dashboard snapshot.
// Month is a two-digit month string, Year a four-digit year string.
type GetDashboardInput struct {
	UserID uuid.UUID
	Month  string
	Year   string
}

// ExpensePerCategory is one slice of the month's expense breakdown. The
// percentage denominator is the subscription-folded expense total, so the
// entries of a month with active subscriptions sum to less than 100.
type ExpensePerCategory struct {
	Category          entity.TransactionCategory
	TotalAmount       decimal.Decimal
	PercentageOfTotal int64
}

// Snapshot is the immutable result of one dashboard computation.
type Snapshot struct {
	Month string
	Year  string

	// Balance is accumulated deposits minus accumulated expenses minus
	// accumulated investments, floored at zero.
	Balance decimal.Decimal

	// Current-month totals. ExpensesTotal includes the active-subscription fold.
	DepositsTotal    decimal.Decimal
	InvestmentsTotal decimal.Decimal
	ExpensesTotal    decimal.Decimal

	// AccumulatedInvestments sums every INVESTMENT transaction up to and
	// including the requested month.
	AccumulatedInvestments decimal.Decimal

	// SubscriptionsTotal sums active subscription amounts, month independent.
	SubscriptionsTotal decimal.Decimal

	// TypesPercentage holds the rounded share of each transaction type in the
	// month's total movement. Entries are rounded independently and are not
	// guaranteed to sum to exactly 100.
	TypesPercentage map[entity.TransactionType]int64

	TotalExpensePerCategory []ExpensePerCategory
	LastTransactions        []*entity.Transaction
	Subscriptions           []*entity.RecurringSubscription
}

// GetDashboardUseCase computes a consistent monthly snapshot of accumulated
// and current-month financial figures, folding active recurring subscriptions
// into the expense totals.
type GetDashboardUseCase struct {
	repo Repository
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(repo Repository) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		repo: repo,
	}
}

// Execute computes the snapshot for the given user and month. The aggregation
// is all-or-nothing: any store failure propagates and no partial snapshot is
// returned.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*Snapshot, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardUnauthorized,
			"unauthorized",
			domainerror.ErrUnauthorizedDashboard,
		)
	}

	accumulated, current, err := MonthWindows(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	var (
		subscriptions []*entity.RecurringSubscription

		accDeposits    decimal.Decimal
		accInvestments decimal.Decimal
		accExpenses    decimal.Decimal

		depositsTotal    decimal.Decimal
		investmentsTotal decimal.Decimal
		expensesTotal    decimal.Decimal

		expensesPerCategory []CategorySum
		lastTransactions    []*entity.Transaction
	)

	// The sub-queries only depend on each other in the final arithmetic, so
	// they fan out concurrently against the store.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		subscriptions, err = uc.repo.FindActiveSubscriptions(gctx, input.UserID)
		return err
	})
	g.Go(func() (err error) {
		accDeposits, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeDeposit, accumulated)
		return err
	})
	g.Go(func() (err error) {
		accInvestments, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeInvestment, accumulated)
		return err
	})
	g.Go(func() (err error) {
		accExpenses, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeExpense, accumulated)
		return err
	})
	g.Go(func() (err error) {
		depositsTotal, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeDeposit, current)
		return err
	})
	g.Go(func() (err error) {
		investmentsTotal, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeInvestment, current)
		return err
	})
	g.Go(func() (err error) {
		expensesTotal, err = uc.repo.SumAmount(gctx, input.UserID, entity.TransactionTypeExpense, current)
		return err
	})
	g.Go(func() (err error) {
		expensesPerCategory, err = uc.repo.GroupExpensesByCategory(gctx, input.UserID, current)
		return err
	})
	g.Go(func() (err error) {
		lastTransactions, err = uc.repo.FindRecentTransactions(gctx, input.UserID, current, lastTransactionsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}

	// Active subscriptions count as a fixed expense of every month, both in
	// the accumulated and the current totals. They are never amortized by
	// elapsed months or bounded by their start date.
	subscriptionsTotal := decimal.Zero
	for _, subscription := range subscriptions {
		subscriptionsTotal = subscriptionsTotal.Add(subscription.Amount)
	}

	accExpenses = accExpenses.Add(subscriptionsTotal)
	expensesTotal = expensesTotal.Add(subscriptionsTotal)

	// A negative balance is not meaningful on the summary, so it floors at zero.
	balance := accDeposits.Sub(accExpenses).Sub(accInvestments)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	transactionsTotal := depositsTotal.Add(investmentsTotal).Add(expensesTotal)

	typesPercentage := map[entity.TransactionType]int64{
		entity.TransactionTypeDeposit:    roundedShare(depositsTotal, transactionsTotal),
		entity.TransactionTypeExpense:    roundedShare(expensesTotal, transactionsTotal),
		entity.TransactionTypeInvestment: roundedShare(investmentsTotal, transactionsTotal),
	}

	totalExpensePerCategory := make([]ExpensePerCategory, 0, len(expensesPerCategory))
	for _, categorySum := range expensesPerCategory {
		totalExpensePerCategory = append(totalExpensePerCategory, ExpensePerCategory{
			Category:          categorySum.Category,
			TotalAmount:       categorySum.Total,
			PercentageOfTotal: roundedShare(categorySum.Total, expensesTotal),
		})
	}

	return &Snapshot{
		Month:                   input.Month,
		Year:                    input.Year,
		Balance:                 balance,
		DepositsTotal:           depositsTotal,
		InvestmentsTotal:        investmentsTotal,
		ExpensesTotal:           expensesTotal,
		AccumulatedInvestments:  accInvestments,
		SubscriptionsTotal:      subscriptionsTotal,
		TypesPercentage:         typesPercentage,
		TotalExpensePerCategory: totalExpensePerCategory,
		LastTransactions:        lastTransactions,
		Subscriptions:           subscriptions,
	}, nil
}

// roundedShare returns part/total as a half-up rounded integer percentage.
// A zero total yields 0, never a division error.
func roundedShare(part, total decimal.Decimal) int64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart()
}
