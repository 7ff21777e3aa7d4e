package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePlan(_ context.Context, id uuid.UUID, plan entity.PlanTier) error {
	for _, user := range f.users {
		if user.ID == id {
			user.Plan = plan
			return nil
		}
	}
	return domainerror.ErrUserNotFound
}

type recordingPlanService struct {
	invalidated []uuid.UUID
}

func (r *recordingPlanService) ResolveTier(_ context.Context, _ uuid.UUID) (entity.PlanTier, error) {
	return entity.PlanTierBasic, nil
}

func (r *recordingPlanService) Invalidate(_ context.Context, userID uuid.UUID) error {
	r.invalidated = append(r.invalidated, userID)
	return nil
}

func TestApplyPlanChangeUpgrades(t *testing.T) {
	user := entity.NewUser("ana@example.com", "hash")
	repo := &fakeUserRepo{users: map[string]*entity.User{user.Email: user}}
	plans := &recordingPlanService{}
	uc := NewApplyPlanChangeUseCase(repo, plans)

	err := uc.Execute(context.Background(), ApplyPlanChangeInput{
		Email: "Ana@Example.com",
		Plan:  entity.PlanTierPremium,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Plan != entity.PlanTierPremium {
		t.Errorf("Plan = %q, want premium", user.Plan)
	}
	if len(plans.invalidated) != 1 || plans.invalidated[0] != user.ID {
		t.Errorf("cached tier was not invalidated for %s", user.ID)
	}
}

func TestApplyPlanChangeRedeliveryIsNoOp(t *testing.T) {
	user := entity.NewUser("ana@example.com", "hash")
	user.Plan = entity.PlanTierPremium
	repo := &fakeUserRepo{users: map[string]*entity.User{user.Email: user}}
	plans := &recordingPlanService{}
	uc := NewApplyPlanChangeUseCase(repo, plans)

	err := uc.Execute(context.Background(), ApplyPlanChangeInput{
		Email: "ana@example.com",
		Plan:  entity.PlanTierPremium,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans.invalidated) != 0 {
		t.Error("redelivered event should not invalidate the cache")
	}
}

func TestApplyPlanChangeUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewApplyPlanChangeUseCase(repo, &recordingPlanService{})

	err := uc.Execute(context.Background(), ApplyPlanChangeInput{
		Email: "ghost@example.com",
		Plan:  entity.PlanTierPremium,
	})
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestApplyPlanChangeRejectsUnknownTier(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewApplyPlanChangeUseCase(repo, &recordingPlanService{})

	err := uc.Execute(context.Background(), ApplyPlanChangeInput{
		Email: "ana@example.com",
		Plan:  "enterprise",
	})
	if err == nil {
		t.Error("expected an error for an unknown tier")
	}
}
