// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// defaultCategoryColor is applied when the caller does not pick one.
const defaultCategoryColor = "#9600FF"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID      uuid.UUID
	Name        string
	Type        entity.InvestmentCategoryType
	Description string
	Color       string // Optional, "#RRGGBB"
}

// CreateCategoryUseCase handles investment category creation.
type CreateCategoryUseCase struct {
	categoryRepo adapter.InvestmentCategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.InvestmentCategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute validates and creates the category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*entity.InvestmentCategory, error) {
	if !entity.IsValidInvestmentCategoryType(input.Type) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidInvestmentCategoryType,
			"invalid investment category type",
			domainerror.ErrInvalidInvestmentCategoryType,
		)
	}

	color := input.Color
	if color == "" {
		color = defaultCategoryColor
	}
	if !hexColorPattern.MatchString(color) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidInvestmentCategoryType,
			"color must be a #RRGGBB hex value",
			nil,
		)
	}

	category := entity.NewInvestmentCategory(input.UserID, input.Name, input.Type, input.Description, color)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrInvestmentCategoryNameTaken) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvestmentCategoryNameTaken,
				"an investment category with this name already exists",
				domainerror.ErrInvestmentCategoryNameTaken,
			)
		}
		return nil, fmt.Errorf("failed to create investment category: %w", err)
	}

	return category, nil
}
