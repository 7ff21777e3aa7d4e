// Package report contains the premium monthly report use case.
package report

import (
	"context"
	"fmt"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/application/usecase/dashboard"
	"github.com/finwise/backend/internal/application/usecase/investment"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// GenerateReportInput represents the input for generating a monthly report.
type GenerateReportInput struct {
	Dashboard dashboard.GetDashboardInput
}

// GenerateReportUseCase produces a natural-language report over the monthly
// dashboard figures. The feature is premium-only.
type GenerateReportUseCase struct {
	dashboardUC *dashboard.GetDashboardUseCase
	planService adapter.PlanService
	aiService   adapter.AIReportService
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(
	dashboardUC *dashboard.GetDashboardUseCase,
	planService adapter.PlanService,
	aiService adapter.AIReportService,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		dashboardUC: dashboardUC,
		planService: planService,
		aiService:   aiService,
	}
}

// Execute checks the plan tier, computes the month's snapshot and hands the
// formatted figures to the report service.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (string, error) {
	tier, err := uc.planService.ResolveTier(ctx, input.Dashboard.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve plan tier: %w", err)
	}
	if tier != entity.PlanTierPremium {
		return "", domainerror.NewAuthError(
			domainerror.ErrCodePremiumRequired,
			"monthly reports require the premium plan",
			domainerror.ErrPremiumRequired,
		)
	}
	if !uc.aiService.IsAvailable() {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError,
			"report service is not configured",
			nil,
		)
	}

	snapshot, err := uc.dashboardUC.Execute(ctx, input.Dashboard)
	if err != nil {
		return "", err
	}

	expensesPerCategory := make(map[string]string, len(snapshot.TotalExpensePerCategory))
	for _, slice := range snapshot.TotalExpensePerCategory {
		expensesPerCategory[string(slice.Category)] = investment.FormatBRL(slice.TotalAmount)
	}

	text, err := uc.aiService.GenerateReport(ctx, &adapter.ReportRequest{
		Month:               snapshot.Month,
		Year:                snapshot.Year,
		Balance:             investment.FormatBRL(snapshot.Balance),
		DepositsTotal:       investment.FormatBRL(snapshot.DepositsTotal),
		ExpensesTotal:       investment.FormatBRL(snapshot.ExpensesTotal),
		InvestmentsTotal:    investment.FormatBRL(snapshot.InvestmentsTotal),
		SubscriptionsTotal:  investment.FormatBRL(snapshot.SubscriptionsTotal),
		ExpensesPerCategory: expensesPerCategory,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	return text, nil
}
