// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
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

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Upsert creates the transaction or replaces it by primary key.
func (r *transactionRepository) Upsert(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// rangeQuery applies the half-open date range: Start inclusive, End exclusive.
func rangeQuery(query *gorm.DB, dateRange adapter.DateRange) *gorm.DB {
	if dateRange.Start != nil {
		query = query.Where("date >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where("date < ?", *dateRange.End)
	}
	return query
}

// FindByUserAndRange retrieves a user's transactions within a date range.
func (r *transactionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, dateRange adapter.DateRange) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	result := rangeQuery(query, dateRange).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// SumAmount returns the amount sum for one transaction type within a range.
func (r *transactionRepository) SumAmount(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, dateRange adapter.DateRange) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(transactionType))
	err := rangeQuery(query, dateRange).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&sumResult).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sumResult.Total, nil
}

// CountByUserAndRange counts a user's transactions within a date range.
func (r *transactionRepository) CountByUserAndRange(ctx context.Context, userID uuid.UUID, dateRange adapter.DateRange) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID)
	result := rangeQuery(query, dateRange).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
