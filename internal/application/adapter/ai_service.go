// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// ReportRequest carries the aggregated figures a report is generated from.
// Amounts are pre-formatted strings so the adapter stays decimal-agnostic.
type ReportRequest struct {
	Month               string
	Year                string
	Balance             string
	DepositsTotal       string
	ExpensesTotal       string
	InvestmentsTotal    string
	SubscriptionsTotal  string
	ExpensesPerCategory map[string]string
}

// AIReportService generates a natural-language monthly financial report.
type AIReportService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// GenerateReport produces a report from the monthly figures.
	GenerateReport(ctx context.Context, request *ReportRequest) (string, error)
}
