package adapters

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// countingUserRepo tracks how often the store is hit.
type countingUserRepo struct {
	user  *entity.User
	reads int
}

func (c *countingUserRepo) Create(_ context.Context, _ *entity.User) error {
	return nil
}

func (c *countingUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	c.reads++
	if c.user == nil || c.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return c.user, nil
}

func (c *countingUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (c *countingUserRepo) UpdatePlan(_ context.Context, _ uuid.UUID, plan entity.PlanTier) error {
	c.user.Plan = plan
	return nil
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)
	return redis.NewClient(&redis.Options{Addr: mini.Addr()})
}

func TestPlanServiceCachesTier(t *testing.T) {
	user := entity.NewUser("ana@example.com", "hash")
	repo := &countingUserRepo{user: user}
	service := NewPlanService(repo, newTestRedis(t))

	for i := 0; i < 3; i++ {
		tier, err := service.ResolveTier(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tier != entity.PlanTierBasic {
			t.Errorf("tier = %q, want basic", tier)
		}
	}
	if repo.reads != 1 {
		t.Errorf("store reads = %d, want 1 (tier should be cached)", repo.reads)
	}
}

func TestPlanServiceInvalidateDropsCache(t *testing.T) {
	user := entity.NewUser("ana@example.com", "hash")
	repo := &countingUserRepo{user: user}
	service := NewPlanService(repo, newTestRedis(t))

	if _, err := service.ResolveTier(context.Background(), user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The plan changes and the cache is invalidated; the next read must see
	// the new tier.
	user.Plan = entity.PlanTierPremium
	if err := service.Invalidate(context.Background(), user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tier, err := service.ResolveTier(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != entity.PlanTierPremium {
		t.Errorf("tier = %q, want premium after invalidation", tier)
	}
	if repo.reads != 2 {
		t.Errorf("store reads = %d, want 2", repo.reads)
	}
}

func TestPlanServiceUnknownUser(t *testing.T) {
	service := NewPlanService(&countingUserRepo{}, newTestRedis(t))

	if _, err := service.ResolveTier(context.Background(), uuid.New()); err == nil {
		t.Error("expected an error for an unknown user")
	}
}
