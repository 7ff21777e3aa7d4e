// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
	"github.com/finwise/backend/internal/integration/persistence/model"
)

// investmentCategoryRepository implements adapter.InvestmentCategoryRepository.
type investmentCategoryRepository struct {
	db *gorm.DB
}

// NewInvestmentCategoryRepository creates a new investment category repository instance.
func NewInvestmentCategoryRepository(db *gorm.DB) adapter.InvestmentCategoryRepository {
	return &investmentCategoryRepository{
		db: db,
	}
}

// Create creates a new investment category in the database.
func (r *investmentCategoryRepository) Create(ctx context.Context, category *entity.InvestmentCategory) error {
	categoryModel := model.InvestmentCategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrInvestmentCategoryNameTaken
		}
		return result.Error
	}
	return nil
}

// Update updates an existing investment category in the database.
func (r *investmentCategoryRepository) Update(ctx context.Context, category *entity.InvestmentCategory) error {
	categoryModel := model.InvestmentCategoryFromEntity(category)
	result := r.db.WithContext(ctx).Save(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrInvestmentCategoryNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete removes a category and its allocation in one transaction.
func (r *investmentCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.InvestmentAllocationModel{}, "category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.InvestmentCategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInvestmentCategoryNotFound
		}
		return nil
	})
}

// FindByID retrieves an investment category by its ID.
func (r *investmentCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.InvestmentCategory, error) {
	var categoryModel model.InvestmentCategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvestmentCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindActiveByUser retrieves the user's active categories, oldest first.
func (r *investmentCategoryRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InvestmentCategory, error) {
	var categoryModels []model.InvestmentCategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.InvestmentCategory, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// allocationRepository implements the adapter.AllocationRepository interface.
type allocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates a new allocation repository instance.
func NewAllocationRepository(db *gorm.DB) adapter.AllocationRepository {
	return &allocationRepository{
		db: db,
	}
}

// serializationRetries bounds how often a conflicting allocation write is
// retried before the failure is returned.
const serializationRetries = 3

// InTransaction runs fn against transactional views of the allocation
// repository and the ledger. On postgres the transaction runs at serializable
// isolation and retries on serialization conflicts, so two concurrent writers
// cannot both pass the capacity check against the same pre-write totals.
// SQLite transactions are serializable already and its driver rejects
// explicit isolation levels, so no options are set there.
func (r *allocationRepository) InTransaction(ctx context.Context, fn func(allocations adapter.AllocationRepository, ledger adapter.TransactionRepository) error) error {
	var opts []*sql.TxOptions
	if r.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	var err error
	for attempt := 0; attempt <= serializationRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&allocationRepository{db: tx}, &transactionRepository{db: tx})
		}, opts...)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// Upsert creates or replaces the allocation keyed by (user, category).
func (r *allocationRepository) Upsert(ctx context.Context, allocation *entity.InvestmentAllocation) error {
	allocationModel := model.InvestmentAllocationFromEntity(allocation)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"amount", "percentage", "target_percentage", "updated_at",
			}),
		}).
		Create(allocationModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes the allocation keyed by (user, category).
func (r *allocationRepository) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&model.InvestmentAllocationModel{}, "user_id = ? AND category_id = ?", userID, categoryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAllocationNotFound
	}
	return nil
}

// FindByUser retrieves all of a user's allocations, largest amount first.
func (r *allocationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InvestmentAllocation, error) {
	var allocationModels []model.InvestmentAllocationModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("amount DESC").
		Find(&allocationModels)
	if result.Error != nil {
		return nil, result.Error
	}

	allocations := make([]*entity.InvestmentAllocation, len(allocationModels))
	for i, am := range allocationModels {
		allocations[i] = am.ToEntity()
	}
	return allocations, nil
}

// SumByUser returns the sum of allocation amounts for the user, optionally
// excluding one category.
func (r *allocationRepository) SumByUser(ctx context.Context, userID uuid.UUID, excludeCategoryID *uuid.UUID) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&model.InvestmentAllocationModel{}).
		Where("user_id = ?", userID)
	if excludeCategoryID != nil {
		query = query.Where("category_id != ?", *excludeCategoryID)
	}
	err := query.
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&sumResult).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sumResult.Total, nil
}

// UpdatePercentage rewrites the stored percentage of one allocation.
func (r *allocationRepository) UpdatePercentage(ctx context.Context, allocationID uuid.UUID, percentage decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.InvestmentAllocationModel{}).
		Where("id = ?", allocationID).
		Update("percentage", percentage)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAllocationNotFound
	}
	return nil
}
