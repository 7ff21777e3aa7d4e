// Package error defines domain-specific errors for the Finwise application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrUnauthorizedDashboard is returned when no user identity was resolved.
	ErrUnauthorizedDashboard = errors.New("unauthorized")

	// ErrInvalidMonth is returned when the month is not a valid MM string.
	ErrInvalidMonth = errors.New("month must be a two-digit value between 01 and 12")

	// ErrInvalidYear is returned when the year is not a valid YYYY string.
	ErrInvalidYear = errors.New("year must be a four-digit value")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Authorization errors (00XXXX)
	ErrCodeDashboardUnauthorized DashboardErrorCode = "DSH-000001"

	// Validation errors (01XXXX)
	ErrCodeInvalidMonth DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidYear  DashboardErrorCode = "DSH-010002"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
