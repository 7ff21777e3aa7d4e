// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finwise/backend/internal/application/usecase/dashboard"
	"github.com/finwise/backend/internal/domain/entity"
	"github.com/finwise/backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.Repository interface over the
// transactions and recurring_subscriptions tables.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &dashboardRepository{
		db: db,
	}
}

// windowQuery applies the aggregation window: Start inclusive (zero means
// unbounded), End exclusive.
func windowQuery(query *gorm.DB, window dashboard.Window) *gorm.DB {
	if !window.Start.IsZero() {
		query = query.Where("date >= ?", window.Start)
	}
	if !window.End.IsZero() {
		query = query.Where("date < ?", window.End)
	}
	return query
}

// SumAmount returns the amount sum for one transaction type within the window.
func (r *dashboardRepository) SumAmount(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, window dashboard.Window) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(transactionType))
	err := windowQuery(query, window).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&sumResult).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sumResult.Total, nil
}

// GroupExpensesByCategory returns per-category EXPENSE sums within the window,
// largest first.
func (r *dashboardRepository) GroupExpensesByCategory(ctx context.Context, userID uuid.UUID, window dashboard.Window) ([]dashboard.CategorySum, error) {
	var rows []struct {
		Category string          `gorm:"column:category"`
		Total    decimal.Decimal `gorm:"column:total"`
	}
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(entity.TransactionTypeExpense))
	err := windowQuery(query, window).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make([]dashboard.CategorySum, len(rows))
	for i, row := range rows {
		sums[i] = dashboard.CategorySum{
			Category: entity.TransactionCategory(row.Category),
			Total:    row.Total,
		}
	}
	return sums, nil
}

// FindRecentTransactions returns up to limit transactions within the window,
// newest first.
func (r *dashboardRepository) FindRecentTransactions(ctx context.Context, userID uuid.UUID, window dashboard.Window, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	result := windowQuery(query, window).
		Order("date DESC, created_at DESC").
		Limit(limit).
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

// FindActiveSubscriptions returns the user's active subscriptions.
func (r *dashboardRepository) FindActiveSubscriptions(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSubscription, error) {
	var subscriptionModels []model.SubscriptionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&subscriptionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.RecurringSubscription, len(subscriptionModels))
	for i, sm := range subscriptionModels {
		subscriptions[i] = sm.ToEntity()
	}
	return subscriptions, nil
}
