// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwise/backend/internal/domain/entity"
)

// InvestmentAllocationModel represents the investment_allocations table. One
// row per (user_id, category_id) pair; deleting the category removes the row
// through the foreign key.
type InvestmentAllocationModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_user_category"`
	CategoryID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_user_category"`
	Amount           decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Percentage       decimal.Decimal  `gorm:"type:decimal(8,4);not null"`
	TargetPercentage *decimal.Decimal `gorm:"type:decimal(8,4)"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`

	Category *InvestmentCategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the InvestmentAllocationModel.
func (InvestmentAllocationModel) TableName() string {
	return "investment_allocations"
}

// ToEntity converts an InvestmentAllocationModel to a domain entity.
func (m *InvestmentAllocationModel) ToEntity() *entity.InvestmentAllocation {
	return &entity.InvestmentAllocation{
		ID:               m.ID,
		UserID:           m.UserID,
		CategoryID:       m.CategoryID,
		Amount:           m.Amount,
		Percentage:       m.Percentage,
		TargetPercentage: m.TargetPercentage,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// InvestmentAllocationFromEntity creates an InvestmentAllocationModel from a
// domain entity.
func InvestmentAllocationFromEntity(allocation *entity.InvestmentAllocation) *InvestmentAllocationModel {
	return &InvestmentAllocationModel{
		ID:               allocation.ID,
		UserID:           allocation.UserID,
		CategoryID:       allocation.CategoryID,
		Amount:           allocation.Amount,
		Percentage:       allocation.Percentage,
		TargetPercentage: allocation.TargetPercentage,
		CreatedAt:        allocation.CreatedAt,
		UpdatedAt:        allocation.UpdatedAt,
	}
}
