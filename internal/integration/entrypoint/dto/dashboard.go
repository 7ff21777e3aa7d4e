// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finwise/backend/internal/application/usecase/dashboard"
)

// ExpensePerCategoryResponse is one slice of the month's expense breakdown.
type ExpensePerCategoryResponse struct {
	Category          string  `json:"category"`
	TotalAmount       float64 `json:"total_amount"`
	PercentageOfTotal int64   `json:"percentage_of_total"`
}

// DashboardResponse represents the monthly dashboard snapshot.
type DashboardResponse struct {
	Month string `json:"month"`
	Year  string `json:"year"`

	Balance                float64 `json:"balance"`
	DepositsTotal          float64 `json:"deposits_total"`
	InvestmentsTotal       float64 `json:"investments_total"`
	ExpensesTotal          float64 `json:"expenses_total"`
	AccumulatedInvestments float64 `json:"accumulated_investments"`
	SubscriptionsTotal     float64 `json:"subscriptions_total"`

	TypesPercentage         map[string]int64             `json:"types_percentage"`
	TotalExpensePerCategory []ExpensePerCategoryResponse `json:"total_expense_per_category"`
	LastTransactions        []TransactionResponse        `json:"last_transactions"`
	Subscriptions           []SubscriptionResponse       `json:"subscriptions"`
}

// ToDashboardResponse converts a dashboard snapshot to its response DTO.
func ToDashboardResponse(snapshot *dashboard.Snapshot) DashboardResponse {
	balance, _ := snapshot.Balance.Float64()
	deposits, _ := snapshot.DepositsTotal.Float64()
	investments, _ := snapshot.InvestmentsTotal.Float64()
	expenses, _ := snapshot.ExpensesTotal.Float64()
	accumulated, _ := snapshot.AccumulatedInvestments.Float64()
	subscriptionsTotal, _ := snapshot.SubscriptionsTotal.Float64()

	typesPercentage := make(map[string]int64, len(snapshot.TypesPercentage))
	for transactionType, share := range snapshot.TypesPercentage {
		typesPercentage[string(transactionType)] = share
	}

	perCategory := make([]ExpensePerCategoryResponse, len(snapshot.TotalExpensePerCategory))
	for i, categoryShare := range snapshot.TotalExpensePerCategory {
		total, _ := categoryShare.TotalAmount.Float64()
		perCategory[i] = ExpensePerCategoryResponse{
			Category:          string(categoryShare.Category),
			TotalAmount:       total,
			PercentageOfTotal: categoryShare.PercentageOfTotal,
		}
	}

	lastTransactions := make([]TransactionResponse, len(snapshot.LastTransactions))
	for i, transaction := range snapshot.LastTransactions {
		lastTransactions[i] = ToTransactionResponse(transaction)
	}

	subscriptions := make([]SubscriptionResponse, len(snapshot.Subscriptions))
	for i, subscription := range snapshot.Subscriptions {
		subscriptions[i] = ToSubscriptionResponse(subscription)
	}

	return DashboardResponse{
		Month:                   snapshot.Month,
		Year:                    snapshot.Year,
		Balance:                 balance,
		DepositsTotal:           deposits,
		InvestmentsTotal:        investments,
		ExpensesTotal:           expenses,
		AccumulatedInvestments:  accumulated,
		SubscriptionsTotal:      subscriptionsTotal,
		TypesPercentage:         typesPercentage,
		TotalExpensePerCategory: perCategory,
		LastTransactions:        lastTransactions,
		Subscriptions:           subscriptions,
	}
}
