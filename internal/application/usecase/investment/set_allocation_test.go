package investment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// fakeLedger serves a fixed all-time investment total. Only SumAmount is
// exercised by the allocation use cases.
type fakeLedger struct {
	adapter.TransactionRepository
	totalInvested decimal.Decimal
	onSum         func()
}

func (f *fakeLedger) SumAmount(_ context.Context, _ uuid.UUID, _ entity.TransactionType, _ adapter.DateRange) (decimal.Decimal, error) {
	if f.onSum != nil {
		f.onSum()
	}
	return f.totalInvested, nil
}

type fakeCategoryRepo struct {
	adapter.InvestmentCategoryRepository
	categories map[uuid.UUID]*entity.InvestmentCategory
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.InvestmentCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, domainerror.ErrInvestmentCategoryNotFound
	}
	return category, nil
}

type allocationKey struct {
	userID     uuid.UUID
	categoryID uuid.UUID
}

type fakeAllocationRepo struct {
	allocations map[allocationKey]*entity.InvestmentAllocation
	ledger      *fakeLedger
	inTx        bool
}

func newFakeAllocationRepo(ledger *fakeLedger) *fakeAllocationRepo {
	return &fakeAllocationRepo{
		allocations: make(map[allocationKey]*entity.InvestmentAllocation),
		ledger:      ledger,
	}
}

func (f *fakeAllocationRepo) InTransaction(_ context.Context, fn func(allocations adapter.AllocationRepository, ledger adapter.TransactionRepository) error) error {
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f, f.ledger)
}

func (f *fakeAllocationRepo) Upsert(_ context.Context, allocation *entity.InvestmentAllocation) error {
	key := allocationKey{allocation.UserID, allocation.CategoryID}
	if existing, ok := f.allocations[key]; ok {
		existing.Amount = allocation.Amount
		existing.Percentage = allocation.Percentage
		existing.TargetPercentage = allocation.TargetPercentage
		return nil
	}
	f.allocations[key] = allocation
	return nil
}

func (f *fakeAllocationRepo) Delete(_ context.Context, userID, categoryID uuid.UUID) error {
	key := allocationKey{userID, categoryID}
	if _, ok := f.allocations[key]; !ok {
		return domainerror.ErrAllocationNotFound
	}
	delete(f.allocations, key)
	return nil
}

func (f *fakeAllocationRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.InvestmentAllocation, error) {
	var result []*entity.InvestmentAllocation
	for key, allocation := range f.allocations {
		if key.userID == userID {
			result = append(result, allocation)
		}
	}
	return result, nil
}

func (f *fakeAllocationRepo) SumByUser(_ context.Context, userID uuid.UUID, excludeCategoryID *uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, allocation := range f.allocations {
		if key.userID != userID {
			continue
		}
		if excludeCategoryID != nil && key.categoryID == *excludeCategoryID {
			continue
		}
		total = total.Add(allocation.Amount)
	}
	return total, nil
}

func (f *fakeAllocationRepo) UpdatePercentage(_ context.Context, allocationID uuid.UUID, percentage decimal.Decimal) error {
	for _, allocation := range f.allocations {
		if allocation.ID == allocationID {
			allocation.Percentage = percentage
			return nil
		}
	}
	return domainerror.ErrAllocationNotFound
}

func (f *fakeAllocationRepo) get(userID, categoryID uuid.UUID) *entity.InvestmentAllocation {
	return f.allocations[allocationKey{userID, categoryID}]
}

type allocationFixture struct {
	userID     uuid.UUID
	categoryA  uuid.UUID
	categoryB  uuid.UUID
	ledger     *fakeLedger
	categories *fakeCategoryRepo
	repo       *fakeAllocationRepo
	set        *SetAllocationUseCase
	del        *DeleteAllocationUseCase
	limits     *GetLimitsUseCase
}

func newAllocationFixture(totalInvested string) *allocationFixture {
	userID := uuid.New()
	catA := entity.NewInvestmentCategory(userID, "Fixed Income", entity.InvestmentTypeFixedIncome, "", "#22C55E")
	catB := entity.NewInvestmentCategory(userID, "Stocks", entity.InvestmentTypeStocks, "", "#EF4444")

	ledger := &fakeLedger{totalInvested: dec(totalInvested)}
	categories := &fakeCategoryRepo{categories: map[uuid.UUID]*entity.InvestmentCategory{
		catA.ID: catA,
		catB.ID: catB,
	}}
	repo := newFakeAllocationRepo(ledger)

	return &allocationFixture{
		userID:     userID,
		categoryA:  catA.ID,
		categoryB:  catB.ID,
		ledger:     ledger,
		categories: categories,
		repo:       repo,
		set:        NewSetAllocationUseCase(categories, repo),
		del:        NewDeleteAllocationUseCase(repo),
		limits:     NewGetLimitsUseCase(repo, ledger),
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func (fx *allocationFixture) setAllocation(t *testing.T, categoryID uuid.UUID, amount string) error {
	t.Helper()
	return fx.set.Execute(context.Background(), SetAllocationInput{
		UserID:     fx.userID,
		CategoryID: categoryID,
		Amount:     dec(amount),
	})
}

func TestSetAllocationEnforcesCapacity(t *testing.T) {
	fx := newAllocationFixture("1000")

	if err := fx.setAllocation(t, fx.categoryA, "400"); err != nil {
		t.Fatalf("allocating 400 of 1000 must succeed: %v", err)
	}

	// 400 + 700 > 1000 is rejected with the exact computed limit.
	err := fx.setAllocation(t, fx.categoryB, "700")
	var limitErr *domainerror.AllocationLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected AllocationLimitError, got %v", err)
	}
	if !limitErr.MaxAllowed.Equal(dec("600")) {
		t.Errorf("MaxAllowed = %s, want 600", limitErr.MaxAllowed)
	}
	if !limitErr.TotalInvested.Equal(dec("1000")) {
		t.Errorf("TotalInvested = %s, want 1000", limitErr.TotalInvested)
	}

	// 400 + 600 = 1000 exactly fills the pool.
	if err := fx.setAllocation(t, fx.categoryB, "600"); err != nil {
		t.Fatalf("allocating up to the limit must succeed: %v", err)
	}

	limits, err := fx.limits.Execute(context.Background(), GetLimitsInput{UserID: fx.userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limits.TotalAllocated.Equal(dec("1000")) {
		t.Errorf("TotalAllocated = %s, want 1000", limits.TotalAllocated)
	}
	if !limits.AvailableToAllocate.IsZero() {
		t.Errorf("AvailableToAllocate = %s, want 0", limits.AvailableToAllocate)
	}
}

func TestSetAllocationReadsInvestedTotalInsideTransaction(t *testing.T) {
	// The invested total must come from the same transaction as the capacity
	// check and the upsert; a total read before the transaction opens lets two
	// writers pass the check against the same pre-write figures.
	fx := newAllocationFixture("1000")
	fx.ledger.onSum = func() {
		if !fx.repo.inTx {
			t.Error("invested total was read outside the allocation transaction")
		}
	}

	if err := fx.setAllocation(t, fx.categoryA, "400"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.del.Execute(context.Background(), fx.userID, fx.categoryA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetAllocationRecomputesAllPercentages(t *testing.T) {
	fx := newAllocationFixture("1000")

	if err := fx.setAllocation(t, fx.categoryA, "400"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.setAllocation(t, fx.categoryB, "600"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fx.repo.get(fx.userID, fx.categoryA).Percentage; !got.Equal(dec("40")) {
		t.Errorf("category A percentage = %s, want 40", got)
	}
	if got := fx.repo.get(fx.userID, fx.categoryB).Percentage; !got.Equal(dec("60")) {
		t.Errorf("category B percentage = %s, want 60", got)
	}
}

func TestSetAllocationRejectsZeroInvestments(t *testing.T) {
	fx := newAllocationFixture("0")

	err := fx.setAllocation(t, fx.categoryA, "100")
	if !errors.Is(err, domainerror.ErrNoInvestmentsToAllocate) {
		t.Errorf("expected ErrNoInvestmentsToAllocate, got %v", err)
	}
}

func TestSetAllocationRejectsForeignCategory(t *testing.T) {
	fx := newAllocationFixture("1000")
	foreign := entity.NewInvestmentCategory(uuid.New(), "Other user", entity.InvestmentTypeCustom, "", "#000000")
	fx.categories.categories[foreign.ID] = foreign

	err := fx.setAllocation(t, foreign.ID, "100")
	if !errors.Is(err, domainerror.ErrInvestmentCategoryNotFound) {
		t.Errorf("expected ErrInvestmentCategoryNotFound, got %v", err)
	}
}

func TestSetAllocationRejectsInactiveCategory(t *testing.T) {
	fx := newAllocationFixture("1000")
	fx.categories.categories[fx.categoryA].IsActive = false

	err := fx.setAllocation(t, fx.categoryA, "100")
	if !errors.Is(err, domainerror.ErrInvestmentCategoryNotFound) {
		t.Errorf("expected ErrInvestmentCategoryNotFound, got %v", err)
	}
}

func TestSetAllocationAllowsEditingOwnCategory(t *testing.T) {
	// Rewriting the only allocation up to the full total must not count the
	// category's own current amount against itself.
	fx := newAllocationFixture("1000")

	if err := fx.setAllocation(t, fx.categoryA, "800"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.setAllocation(t, fx.categoryA, "1000"); err != nil {
		t.Fatalf("raising own allocation to the limit must succeed: %v", err)
	}
}

func TestDeleteAllocationRecomputesRemaining(t *testing.T) {
	fx := newAllocationFixture("1000")

	if err := fx.setAllocation(t, fx.categoryA, "400"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.setAllocation(t, fx.categoryB, "600"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fx.del.Execute(context.Background(), fx.userID, fx.categoryB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.repo.get(fx.userID, fx.categoryB) != nil {
		t.Error("allocation B should be gone")
	}
	// A keeps 400 of 1000: the recompute pass runs against the unchanged total.
	if got := fx.repo.get(fx.userID, fx.categoryA).Percentage; !got.Equal(dec("40")) {
		t.Errorf("category A percentage = %s, want 40", got)
	}
}

func TestGetLimitsExcludesCategoryForEdits(t *testing.T) {
	fx := newAllocationFixture("1000")

	if err := fx.setAllocation(t, fx.categoryA, "400"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.setAllocation(t, fx.categoryB, "100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limits, err := fx.limits.Execute(context.Background(), GetLimitsInput{
		UserID:            fx.userID,
		ExcludeCategoryID: &fx.categoryA,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limits.TotalAllocated.Equal(dec("100")) {
		t.Errorf("TotalAllocated = %s, want 100", limits.TotalAllocated)
	}
	if !limits.AvailableToAllocate.Equal(dec("900")) {
		t.Errorf("AvailableToAllocate = %s, want 900", limits.AvailableToAllocate)
	}
}

func TestGetLimitsZeroInvestments(t *testing.T) {
	fx := newAllocationFixture("0")

	limits, err := fx.limits.Execute(context.Background(), GetLimitsInput{UserID: fx.userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limits.AllocationPercentage.IsZero() {
		t.Errorf("AllocationPercentage = %s, want 0", limits.AllocationPercentage)
	}
}
