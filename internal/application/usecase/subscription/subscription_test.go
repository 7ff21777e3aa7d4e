package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

type fakeSubscriptionRepo struct {
	subscriptions map[uuid.UUID]*entity.RecurringSubscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscriptions: make(map[uuid.UUID]*entity.RecurringSubscription)}
}

func (f *fakeSubscriptionRepo) nameTaken(userID uuid.UUID, name string, exceptID uuid.UUID) bool {
	for _, s := range f.subscriptions {
		if s.UserID == userID && s.Name == name && s.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, subscription *entity.RecurringSubscription) error {
	if f.nameTaken(subscription.UserID, subscription.Name, subscription.ID) {
		return domainerror.ErrSubscriptionNameTaken
	}
	f.subscriptions[subscription.ID] = subscription
	return nil
}

func (f *fakeSubscriptionRepo) Update(_ context.Context, subscription *entity.RecurringSubscription) error {
	if f.nameTaken(subscription.UserID, subscription.Name, subscription.ID) {
		return domainerror.ErrSubscriptionNameTaken
	}
	f.subscriptions[subscription.ID] = subscription
	return nil
}

func (f *fakeSubscriptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.subscriptions, id)
	return nil
}

func (f *fakeSubscriptionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringSubscription, error) {
	subscription, ok := f.subscriptions[id]
	if !ok {
		return nil, domainerror.ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (f *fakeSubscriptionRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error) {
	var result []*entity.RecurringSubscription
	for _, s := range f.subscriptions {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSubscriptionRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error) {
	all, _ := f.FindByUser(ctx, userID)
	var result []*entity.RecurringSubscription
	for _, s := range all {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSubscriptionRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	all, _ := f.FindByUser(ctx, userID)
	return int64(len(all)), nil
}

type fakePlanService struct {
	tier entity.PlanTier
}

func (f *fakePlanService) ResolveTier(_ context.Context, _ uuid.UUID) (entity.PlanTier, error) {
	return f.tier, nil
}

func (f *fakePlanService) Invalidate(_ context.Context, _ uuid.UUID) error {
	return nil
}

func createInput(userID uuid.UUID, name, amount string) CreateSubscriptionInput {
	return CreateSubscriptionInput{
		UserID:        userID,
		Name:          name,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: entity.PaymentMethodCreditCard,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateSubscriptionBasicPlanLimit(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	uc := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})
	userID := uuid.New()

	for i, name := range []string{"Netflix", "Spotify", "iCloud"} {
		if _, err := uc.Execute(context.Background(), createInput(userID, name, "19.90")); err != nil {
			t.Fatalf("subscription %d should be allowed: %v", i+1, err)
		}
	}

	_, err := uc.Execute(context.Background(), createInput(userID, "HBO", "29.90"))
	if !errors.Is(err, domainerror.ErrSubscriptionLimitReached) {
		t.Errorf("expected ErrSubscriptionLimitReached, got %v", err)
	}
}

func TestCreateSubscriptionPremiumHasNoLimit(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	uc := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierPremium})
	userID := uuid.New()

	for _, name := range []string{"Netflix", "Spotify", "iCloud", "HBO", "Gym"} {
		if _, err := uc.Execute(context.Background(), createInput(userID, name, "19.90")); err != nil {
			t.Fatalf("premium user hit a limit on %q: %v", name, err)
		}
	}
}

func TestCreateSubscriptionDuplicateName(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	uc := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})
	userID := uuid.New()

	if _, err := uc.Execute(context.Background(), createInput(userID, "Netflix", "19.90")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := uc.Execute(context.Background(), createInput(userID, "Netflix", "29.90"))
	if !errors.Is(err, domainerror.ErrSubscriptionNameTaken) {
		t.Errorf("expected ErrSubscriptionNameTaken, got %v", err)
	}

	// A different user can reuse the name.
	if _, err := uc.Execute(context.Background(), createInput(uuid.New(), "Netflix", "19.90")); err != nil {
		t.Errorf("other user should be able to reuse the name: %v", err)
	}
}

func TestCreateSubscriptionRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	uc := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})

	_, err := uc.Execute(context.Background(), createInput(uuid.New(), "Netflix", "0"))
	if !errors.Is(err, domainerror.ErrInvalidSubscriptionAmount) {
		t.Errorf("expected ErrInvalidSubscriptionAmount, got %v", err)
	}
}

func TestToggleSubscription(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	create := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})
	toggle := NewToggleSubscriptionUseCase(repo)
	userID := uuid.New()

	created, err := create.Execute(context.Background(), createInput(userID, "Netflix", "19.90"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.IsActive {
		t.Fatal("new subscriptions must start active")
	}

	toggled, err := toggle.Execute(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled.IsActive {
		t.Error("toggle should have paused the subscription")
	}

	// Other users cannot touch it.
	if _, err := toggle.Execute(context.Background(), uuid.New(), created.ID); !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound for foreign user, got %v", err)
	}
}

func TestUpdateSubscriptionPatchesFields(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	create := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})
	update := NewUpdateSubscriptionUseCase(repo)
	userID := uuid.New()

	created, err := create.Execute(context.Background(), createInput(userID, "Netflix", "19.90"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newAmount := decimal.RequireFromString("25.90")
	updated, err := update.Execute(context.Background(), UpdateSubscriptionInput{
		UserID:         userID,
		SubscriptionID: created.ID,
		Amount:         &newAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Amount.Equal(newAmount) {
		t.Errorf("Amount = %s, want 25.90", updated.Amount)
	}
	if updated.Name != "Netflix" {
		t.Errorf("Name changed unexpectedly: %q", updated.Name)
	}
}

func TestDeleteSubscription(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	create := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierBasic})
	del := NewDeleteSubscriptionUseCase(repo)
	userID := uuid.New()

	created, err := create.Execute(context.Background(), createInput(userID, "Netflix", "19.90"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := del.Execute(context.Background(), uuid.New(), created.ID); !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound for foreign user, got %v", err)
	}
	if err := del.Execute(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
		t.Error("subscription should be gone")
	}
}

func TestListSubscriptionsActiveTotal(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	create := NewCreateSubscriptionUseCase(repo, &fakePlanService{tier: entity.PlanTierPremium})
	toggle := NewToggleSubscriptionUseCase(repo)
	list := NewListSubscriptionsUseCase(repo)
	userID := uuid.New()

	a, _ := create.Execute(context.Background(), createInput(userID, "Netflix", "20"))
	if _, err := create.Execute(context.Background(), createInput(userID, "Spotify", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := toggle.Execute(context.Background(), userID, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := list.Execute(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Subscriptions) != 2 {
		t.Errorf("len(Subscriptions) = %d, want 2", len(out.Subscriptions))
	}
	if !out.ActiveMonthlyTotal.Equal(decimal.RequireFromString("10")) {
		t.Errorf("ActiveMonthlyTotal = %s, want 10 (paused Netflix excluded)", out.ActiveMonthlyTotal)
	}
}
