// Package dashboard contains the monthly aggregation use case.
package dashboard

import (
	"strconv"
	"time"

	domainerror "github.com/finwise/backend/internal/domain/error"
)

// lastTransactionsLimit caps how many recent transactions a snapshot carries.
const lastTransactionsLimit = 15

// MonthWindows derives the two query windows for a requested month.
//
// The accumulated window covers every date up to and including the last
// calendar day of (year, month); the current window covers the month itself.
// Both are expressed with an exclusive End at midnight UTC of the first day
// of the following month, so timestamps anywhere within the last day count.
func MonthWindows(month, year string) (accumulated, current Window, err error) {
	m, convErr := strconv.Atoi(month)
	if len(month) != 2 || convErr != nil || m < 1 || m > 12 {
		return Window{}, Window{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonth,
			"month must be a two-digit value between 01 and 12",
			domainerror.ErrInvalidMonth,
		)
	}

	y, convErr := strconv.Atoi(year)
	if len(year) != 4 || convErr != nil {
		return Window{}, Window{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidYear,
			"year must be a four-digit value",
			domainerror.ErrInvalidYear,
		)
	}

	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	current = Window{Start: start, End: end}
	accumulated = Window{End: end}
	return accumulated, current, nil
}
