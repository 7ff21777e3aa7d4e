package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/application/usecase/dashboard"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.TransactionModel{},
		&model.SubscriptionModel{},
		&model.InvestmentCategoryModel{},
		&model.InvestmentAllocationModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTransaction(t *testing.T, repo adapter.TransactionRepository, userID uuid.UUID, amount string, txnType entity.TransactionType, category entity.TransactionCategory, date time.Time) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(userID, "seed", decimal.RequireFromString(amount), txnType, category, entity.PaymentMethodPix, date)
	if err := repo.Upsert(context.Background(), txn); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return txn
}

func TestTransactionRepositoryRangeSemantics(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	userID := uuid.New()

	// One row just inside each edge of March and one just outside.
	feb := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	marchFirst := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	marchLast := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	aprilFirst := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, repo, userID, "1", entity.TransactionTypeExpense, entity.TransactionCategoryFood, feb)
	seedTransaction(t, repo, userID, "10", entity.TransactionTypeExpense, entity.TransactionCategoryFood, marchFirst)
	seedTransaction(t, repo, userID, "100", entity.TransactionTypeExpense, entity.TransactionCategoryFood, marchLast)
	seedTransaction(t, repo, userID, "1000", entity.TransactionTypeExpense, entity.TransactionCategoryFood, aprilFirst)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	// Start inclusive, End exclusive: only the two March rows.
	sum, err := repo.SumAmount(context.Background(), userID, entity.TransactionTypeExpense, adapter.DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(decimal.RequireFromString("110")) {
		t.Errorf("March sum = %s, want 110", sum)
	}

	// Unbounded start reaches back to February.
	sum, err = repo.SumAmount(context.Background(), userID, entity.TransactionTypeExpense, adapter.DateRange{End: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(decimal.RequireFromString("111")) {
		t.Errorf("accumulated sum = %s, want 111", sum)
	}

	count, err := repo.CountByUserAndRange(context.Background(), userID, adapter.DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestTransactionRepositorySumIsZeroForEmptyLedger(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	sum, err := repo.SumAmount(context.Background(), uuid.New(), entity.TransactionTypeDeposit, adapter.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.IsZero() {
		t.Errorf("sum = %s, want 0", sum)
	}
}

func TestTransactionRepositoryUpsertReplacesByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	txn := seedTransaction(t, repo, userID, "50", entity.TransactionTypeExpense, entity.TransactionCategoryFood, date)

	txn.Amount = decimal.RequireFromString("75")
	txn.Name = "updated"
	if err := repo.Upsert(context.Background(), txn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), txn.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "updated" || !found.Amount.Equal(decimal.RequireFromString("75")) {
		t.Errorf("row was not replaced: name=%q amount=%s", found.Name, found.Amount)
	}

	var count int64
	db.Model(&model.TransactionModel{}).Where("user_id = ?", userID).Count(&count)
	if count != 1 {
		t.Errorf("count = %d, want 1 (upsert must not duplicate)", count)
	}
}

func TestTransactionRepositorySoftDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	txn := seedTransaction(t, repo, userID, "50", entity.TransactionTypeExpense, entity.TransactionCategoryFood, date)

	if err := repo.Delete(context.Background(), txn.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound after delete, got %v", err)
	}

	// Deleted rows stop counting toward sums.
	sum, err := repo.SumAmount(context.Background(), userID, entity.TransactionTypeExpense, adapter.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.IsZero() {
		t.Errorf("sum = %s, want 0 after soft delete", sum)
	}

	// The row is still physically present.
	var total int64
	db.Unscoped().Model(&model.TransactionModel{}).Where("id = ?", txn.ID).Count(&total)
	if total != 1 {
		t.Error("soft-deleted row should remain in the table")
	}
}

func TestDashboardRepositoryGroupExpensesByCategory(t *testing.T) {
	db := openTestDB(t)
	ledger := NewTransactionRepository(db)
	repo := NewDashboardRepository(db)
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, ledger, userID, "30", entity.TransactionTypeExpense, entity.TransactionCategoryFood, date)
	seedTransaction(t, ledger, userID, "70", entity.TransactionTypeExpense, entity.TransactionCategoryFood, date)
	seedTransaction(t, ledger, userID, "200", entity.TransactionTypeExpense, entity.TransactionCategoryHousing, date)
	// Deposits never show up in the expense breakdown.
	seedTransaction(t, ledger, userID, "999", entity.TransactionTypeDeposit, entity.TransactionCategorySalary, date)

	window := dashboard.Window{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	sums, err := repo.GroupExpensesByCategory(context.Background(), userID, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len(sums) = %d, want 2", len(sums))
	}
	if sums[0].Category != entity.TransactionCategoryHousing || !sums[0].Total.Equal(decimal.RequireFromString("200")) {
		t.Errorf("first slice = %s/%s, want HOUSING/200", sums[0].Category, sums[0].Total)
	}
	if sums[1].Category != entity.TransactionCategoryFood || !sums[1].Total.Equal(decimal.RequireFromString("100")) {
		t.Errorf("second slice = %s/%s, want FOOD/100", sums[1].Category, sums[1].Total)
	}
}

func TestDashboardRepositoryFindRecentTransactionsLimit(t *testing.T) {
	db := openTestDB(t)
	ledger := NewTransactionRepository(db)
	repo := NewDashboardRepository(db)
	userID := uuid.New()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		seedTransaction(t, ledger, userID, "10", entity.TransactionTypeExpense, entity.TransactionCategoryFood, base.AddDate(0, 0, i))
	}

	window := dashboard.Window{
		Start: base,
		End:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	recent, err := repo.FindRecentTransactions(context.Background(), userID, window, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 15 {
		t.Fatalf("len(recent) = %d, want 15", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Date.After(recent[i-1].Date) {
			t.Fatal("transactions are not ordered newest first")
		}
	}
}

func TestSubscriptionRepositoryUniqueName(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubscriptionRepository(db)
	userID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := entity.NewRecurringSubscription(userID, "Netflix", decimal.RequireFromString("19.90"), entity.PaymentMethodCreditCard, start)
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := entity.NewRecurringSubscription(userID, "Netflix", decimal.RequireFromString("29.90"), entity.PaymentMethodCreditCard, start)
	if err := repo.Create(context.Background(), dup); !errors.Is(err, domainerror.ErrSubscriptionNameTaken) {
		t.Errorf("expected ErrSubscriptionNameTaken, got %v", err)
	}

	// Another owner can reuse the name.
	other := entity.NewRecurringSubscription(uuid.New(), "Netflix", decimal.RequireFromString("19.90"), entity.PaymentMethodCreditCard, start)
	if err := repo.Create(context.Background(), other); err != nil {
		t.Errorf("other user should be able to reuse the name: %v", err)
	}
}

func TestSubscriptionRepositoryFindActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubscriptionRepository(db)
	userID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	active := entity.NewRecurringSubscription(userID, "Netflix", decimal.RequireFromString("20"), entity.PaymentMethodCreditCard, start)
	paused := entity.NewRecurringSubscription(userID, "Gym", decimal.RequireFromString("90"), entity.PaymentMethodPix, start)
	paused.IsActive = false

	for _, s := range []*entity.RecurringSubscription{active, paused} {
		if err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	found, err := repo.FindActiveByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Netflix" {
		t.Errorf("active = %+v, want only Netflix", found)
	}

	count, err := repo.CountByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (paused still counts)", count)
	}
}

func TestAllocationRepositoryUpsertAndSum(t *testing.T) {
	db := openTestDB(t)
	categories := NewInvestmentCategoryRepository(db)
	repo := NewAllocationRepository(db)
	userID := uuid.New()

	catA := entity.NewInvestmentCategory(userID, "Renda Fixa", entity.InvestmentTypeFixedIncome, "", "#22C55E")
	catB := entity.NewInvestmentCategory(userID, "Ações", entity.InvestmentTypeStocks, "", "#EF4444")
	for _, c := range []*entity.InvestmentCategory{catA, catB} {
		if err := categories.Create(context.Background(), c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	allocA := entity.NewInvestmentAllocation(userID, catA.ID, decimal.RequireFromString("400"), decimal.RequireFromString("40"), nil)
	allocB := entity.NewInvestmentAllocation(userID, catB.ID, decimal.RequireFromString("600"), decimal.RequireFromString("60"), nil)
	for _, a := range []*entity.InvestmentAllocation{allocA, allocB} {
		if err := repo.Upsert(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// A second upsert for the same (user, category) replaces, never duplicates.
	rewrite := entity.NewInvestmentAllocation(userID, catA.ID, decimal.RequireFromString("300"), decimal.RequireFromString("30"), nil)
	if err := repo.Upsert(context.Background(), rewrite); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := repo.SumByUser(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("900")) {
		t.Errorf("total = %s, want 900", total)
	}

	excluded, err := repo.SumByUser(context.Background(), userID, &catA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !excluded.Equal(decimal.RequireFromString("600")) {
		t.Errorf("sum excluding A = %s, want 600", excluded)
	}
}

func TestAllocationRepositoryTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	categories := NewInvestmentCategoryRepository(db)
	repo := NewAllocationRepository(db)
	userID := uuid.New()

	category := entity.NewInvestmentCategory(userID, "Cripto", entity.InvestmentTypeCrypto, "", "#F59E0B")
	if err := categories.Create(context.Background(), category); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boom := errors.New("boom")
	err := repo.InTransaction(context.Background(), func(tx adapter.AllocationRepository, _ adapter.TransactionRepository) error {
		allocation := entity.NewInvestmentAllocation(userID, category.ID, decimal.RequireFromString("100"), decimal.RequireFromString("10"), nil)
		if err := tx.Upsert(context.Background(), allocation); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	total, err := repo.SumByUser(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("total = %s, want 0 after rollback", total)
	}
}

func TestAllocationRepositoryTransactionLedgerView(t *testing.T) {
	db := openTestDB(t)
	ledger := NewTransactionRepository(db)
	repo := NewAllocationRepository(db)
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, ledger, userID, "400", entity.TransactionTypeInvestment, entity.TransactionCategoryOther, date)
	seedTransaction(t, ledger, userID, "600", entity.TransactionTypeInvestment, entity.TransactionCategoryOther, date)
	seedTransaction(t, ledger, userID, "999", entity.TransactionTypeExpense, entity.TransactionCategoryFood, date)

	err := repo.InTransaction(context.Background(), func(_ adapter.AllocationRepository, txLedger adapter.TransactionRepository) error {
		sum, err := txLedger.SumAmount(context.Background(), userID, entity.TransactionTypeInvestment, adapter.DateRange{})
		if err != nil {
			return err
		}
		if !sum.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("invested total inside transaction = %s, want 1000", sum)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsSerializationFailure(t *testing.T) {
	conflict := &pq.Error{Code: serializationFailureCode}
	if !isSerializationFailure(conflict) {
		t.Error("serialization conflict not recognized")
	}
	if !isSerializationFailure(fmt.Errorf("tx failed: %w", conflict)) {
		t.Error("wrapped serialization conflict not recognized")
	}
	if isSerializationFailure(&pq.Error{Code: uniqueViolationCode}) {
		t.Error("unique violation must not be treated as retryable")
	}
	if isSerializationFailure(nil) {
		t.Error("nil is not a serialization failure")
	}
}

func TestInvestmentCategoryDeleteRemovesAllocation(t *testing.T) {
	db := openTestDB(t)
	categories := NewInvestmentCategoryRepository(db)
	allocations := NewAllocationRepository(db)
	userID := uuid.New()

	category := entity.NewInvestmentCategory(userID, "Renda Fixa", entity.InvestmentTypeFixedIncome, "", "#22C55E")
	if err := categories.Create(context.Background(), category); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	allocation := entity.NewInvestmentAllocation(userID, category.ID, decimal.RequireFromString("100"), decimal.RequireFromString("10"), nil)
	if err := allocations.Upsert(context.Background(), allocation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := categories.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := allocations.SumByUser(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("total = %s, want 0 after category delete", total)
	}
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	first := entity.NewUser("ana@example.com", "hash")
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := entity.NewUser("ana@example.com", "other")
	if err := repo.Create(context.Background(), dup); !errors.Is(err, domainerror.ErrEmailAlreadyRegistered) {
		t.Errorf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestUserRepositoryUpdatePlan(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	user := entity.NewUser("ana@example.com", "hash")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpdatePlan(context.Background(), user.ID, entity.PlanTierPremium); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Plan != entity.PlanTierPremium {
		t.Errorf("Plan = %q, want premium", found.Plan)
	}
	if err := repo.UpdatePlan(context.Background(), uuid.New(), entity.PlanTierBasic); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}
