// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
)

// InvestmentCategoryRepository defines persistence for investment categories.
type InvestmentCategoryRepository interface {
	// Create creates a new category. Returns
	// domainerror.ErrInvestmentCategoryNameTaken when the owner already has a
	// category with the same name.
	Create(ctx context.Context, category *entity.InvestmentCategory) error

	// Update persists changes to an existing category.
	Update(ctx context.Context, category *entity.InvestmentCategory) error

	// Delete removes a category and its allocation, if any.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.InvestmentCategory, error)

	// FindActiveByUser retrieves the user's active categories, oldest first.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InvestmentCategory, error)
}

// AllocationRepository defines persistence for investment allocations.
//
// InTransaction serializes an allocation read-then-write sequence inside one
// store transaction so the capacity invariant holds under concurrent writers.
type AllocationRepository interface {
	// InTransaction runs fn against transactional views of the allocation
	// repository and the ledger, serialized against concurrent allocation
	// writers. Any error from fn rolls the transaction back.
	InTransaction(ctx context.Context, fn func(allocations AllocationRepository, ledger TransactionRepository) error) error

	// Upsert creates or replaces the allocation keyed by (user, category).
	Upsert(ctx context.Context, allocation *entity.InvestmentAllocation) error

	// Delete removes the allocation keyed by (user, category). Returns
	// domainerror.ErrAllocationNotFound when no row exists.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error

	// FindByUser retrieves all of a user's allocations, largest amount first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InvestmentAllocation, error)

	// SumByUser returns the sum of allocation amounts for the user, optionally
	// excluding one category. Returns zero when no rows match.
	SumByUser(ctx context.Context, userID uuid.UUID, excludeCategoryID *uuid.UUID) (decimal.Decimal, error)

	// UpdatePercentage rewrites the stored percentage of one allocation.
	UpdatePercentage(ctx context.Context, allocationID uuid.UUID, percentage decimal.Decimal) error
}
