// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
)

// planTierTTL bounds how stale a cached tier can get if an invalidation is
// ever lost.
const planTierTTL = 15 * time.Minute

// planService implements adapter.PlanService with a Redis read-through cache
// in front of the user store. The tier is read on nearly every request, so
// it does not hit the database each time.
type planService struct {
	userRepo adapter.UserRepository
	redis    *redis.Client
}

// NewPlanService creates a new plan service instance.
func NewPlanService(userRepo adapter.UserRepository, redisClient *redis.Client) adapter.PlanService {
	return &planService{
		userRepo: userRepo,
		redis:    redisClient,
	}
}

func planTierKey(userID uuid.UUID) string {
	return "plan_tier:" + userID.String()
}

// ResolveTier returns the user's current plan tier, from cache when possible.
// A cache outage degrades to a database read, never to an error.
func (s *planService) ResolveTier(ctx context.Context, userID uuid.UUID) (entity.PlanTier, error) {
	// A miss and a cache outage both fall through to the store.
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, planTierKey(userID)).Result()
		if err == nil && cached != "" {
			return entity.PlanTier(cached), nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve plan tier: %w", err)
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, planTierKey(userID), string(user.Plan), planTierTTL).Err()
	}
	return user.Plan, nil
}

// Invalidate drops the cached tier for the user.
func (s *planService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, planTierKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan tier cache: %w", err)
	}
	return nil
}
