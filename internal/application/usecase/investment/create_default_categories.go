// Package investment contains investment category and allocation use cases.
package investment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// defaultCategories seeds a fresh investment page with the standard buckets.
var defaultCategories = []struct {
	Name  string
	Type  entity.InvestmentCategoryType
	Color string
}{
	{Name: "Renda Fixa", Type: entity.InvestmentTypeFixedIncome, Color: "#22C55E"},
	{Name: "Fundos Imobiliários", Type: entity.InvestmentTypeRealEstate, Color: "#3B82F6"},
	{Name: "Ações", Type: entity.InvestmentTypeStocks, Color: "#EF4444"},
	{Name: "Cripto", Type: entity.InvestmentTypeCrypto, Color: "#F59E0B"},
	{Name: "Reserva de Emergência", Type: entity.InvestmentTypeEmergencyFund, Color: "#8B5CF6"},
}

// CreateDefaultCategoriesUseCase seeds the standard category set for a user.
type CreateDefaultCategoriesUseCase struct {
	categoryRepo adapter.InvestmentCategoryRepository
}

// NewCreateDefaultCategoriesUseCase creates a new CreateDefaultCategoriesUseCase instance.
func NewCreateDefaultCategoriesUseCase(categoryRepo adapter.InvestmentCategoryRepository) *CreateDefaultCategoriesUseCase {
	return &CreateDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute creates the default categories, skipping names the user already has.
func (uc *CreateDefaultCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.InvestmentCategory, error) {
	created := make([]*entity.InvestmentCategory, 0, len(defaultCategories))

	for _, preset := range defaultCategories {
		category := entity.NewInvestmentCategory(userID, preset.Name, preset.Type, "", preset.Color)
		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			if errors.Is(err, domainerror.ErrInvestmentCategoryNameTaken) {
				continue
			}
			return nil, fmt.Errorf("failed to create default category %q: %w", preset.Name, err)
		}
		created = append(created, category)
	}

	return created, nil
}
