// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/domain/entity"
)

// InvestmentCategoryModel represents the investment_categories table. The
// (user_id, name) pair is unique per owner.
type InvestmentCategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_investment_categories_user_name"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_investment_categories_user_name"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(7);not null"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the InvestmentCategoryModel.
func (InvestmentCategoryModel) TableName() string {
	return "investment_categories"
}

// ToEntity converts an InvestmentCategoryModel to a domain entity.
func (m *InvestmentCategoryModel) ToEntity() *entity.InvestmentCategory {
	return &entity.InvestmentCategory{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        entity.InvestmentCategoryType(m.Type),
		Description: m.Description,
		Color:       m.Color,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InvestmentCategoryFromEntity creates an InvestmentCategoryModel from a
// domain entity.
func InvestmentCategoryFromEntity(category *entity.InvestmentCategory) *InvestmentCategoryModel {
	return &InvestmentCategoryModel{
		ID:          category.ID,
		UserID:      category.UserID,
		Name:        category.Name,
		Type:        string(category.Type),
		Description: category.Description,
		Color:       category.Color,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
