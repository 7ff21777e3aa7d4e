// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category updates. Nil fields
// are left unchanged.
type UpdateCategoryInput struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Name        *string
	Type        *entity.InvestmentCategoryType
	Description *string
	Color       *string
	IsActive    *bool
}

// UpdateCategoryUseCase handles investment category updates.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.InvestmentCategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.InvestmentCategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute applies the changes after checking ownership.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*entity.InvestmentCategory, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category == nil || category.UserID != input.UserID {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvestmentCategoryNotFound,
			"investment category not found",
			domainerror.ErrInvestmentCategoryNotFound,
		)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Type != nil {
		if !entity.IsValidInvestmentCategoryType(*input.Type) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvalidInvestmentCategoryType,
				"invalid investment category type",
				domainerror.ErrInvalidInvestmentCategoryType,
			)
		}
		category.Type = *input.Type
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Color != nil {
		if !hexColorPattern.MatchString(*input.Color) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvalidInvestmentCategoryType,
				"color must be a #RRGGBB hex value",
				nil,
			)
		}
		category.Color = *input.Color
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrInvestmentCategoryNameTaken) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvestmentCategoryNameTaken,
				"an investment category with this name already exists",
				domainerror.ErrInvestmentCategoryNameTaken,
			)
		}
		return nil, fmt.Errorf("failed to update investment category: %w", err)
	}

	return category, nil
}
