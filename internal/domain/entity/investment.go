// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentCategoryType is the closed set of investment bucket types.
type InvestmentCategoryType string

const (
	InvestmentTypeFixedIncome   InvestmentCategoryType = "FIXED_INCOME"
	InvestmentTypeRealEstate    InvestmentCategoryType = "REAL_ESTATE"
	InvestmentTypeStocks        InvestmentCategoryType = "STOCKS"
	InvestmentTypeCrypto        InvestmentCategoryType = "CRYPTO"
	InvestmentTypeEmergencyFund InvestmentCategoryType = "EMERGENCY_FUND"
	InvestmentTypeCustom        InvestmentCategoryType = "CUSTOM"
)

// InvestmentCategory is a user-defined bucket for classifying investment
// holdings. Name is unique per owner.
type InvestmentCategory struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Type        InvestmentCategoryType
	Description string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvestmentCategory creates a new InvestmentCategory entity.
func NewInvestmentCategory(
	userID uuid.UUID,
	name string,
	categoryType InvestmentCategoryType,
	description string,
	color string,
) *InvestmentCategory {
	now := time.Now().UTC()

	return &InvestmentCategory{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Description: description,
		Color:       color,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsValidInvestmentCategoryType reports whether t is one of the known types.
func IsValidInvestmentCategoryType(t InvestmentCategoryType) bool {
	switch t {
	case InvestmentTypeFixedIncome,
		InvestmentTypeRealEstate,
		InvestmentTypeStocks,
		InvestmentTypeCrypto,
		InvestmentTypeEmergencyFund,
		InvestmentTypeCustom:
		return true
	}
	return false
}

// InvestmentAllocation assigns an amount and a percentage of the owner's
// total real investments to one InvestmentCategory. The (UserID, CategoryID)
// pair is unique. Percentage is derived and recomputed on every allocation
// write for the owner, never stored stale.
type InvestmentAllocation struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CategoryID       uuid.UUID
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TargetPercentage *decimal.Decimal // Optional user goal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewInvestmentAllocation creates a new InvestmentAllocation entity.
func NewInvestmentAllocation(
	userID uuid.UUID,
	categoryID uuid.UUID,
	amount decimal.Decimal,
	percentage decimal.Decimal,
	targetPercentage *decimal.Decimal,
) *InvestmentAllocation {
	now := time.Now().UTC()

	return &InvestmentAllocation{
		ID:               uuid.New(),
		UserID:           userID,
		CategoryID:       categoryID,
		Amount:           amount,
		Percentage:       percentage,
		TargetPercentage: targetPercentage,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
